// Package logging provides the leveled status-line logger used by the
// container bootstrap and guictl.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//
// The log level is configured via the LOG_LEVEL environment variable, or
// forced to debug with DEBUG=true. Output goes to stdout as plain lines;
// nothing downstream parses them.
package logging
