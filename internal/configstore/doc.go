// Package configstore manages the persisted configuration file of the GUI.
//
// The bootstrap only ever calls Seed, which creates the file from the
// shipped template when, and only when, nothing exists at the path. Inspect
// and Reset serve the guictl operator tool.
package configstore
