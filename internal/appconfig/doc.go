// Package appconfig is a typed view of the GUI's config.json, used by guictl
// to report on and validate a user's configuration. The bootstrap never
// parses the file; to it the configuration is opaque bytes.
package appconfig
