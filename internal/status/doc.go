// Package status collects the state of the Config Store for guictl status
// and the read-only status API.
package status
