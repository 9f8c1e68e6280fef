// Package journal keeps a history of container starts in a small SQLite
// database next to the configuration file.
//
// Each start is inserted with [Journal.Record] before the hand-off. The
// journal is diagnostic only: the launcher logs journal failures as
// warnings and never aborts startup because of them. guictl reads the
// history back with [Journal.Recent].
package journal
