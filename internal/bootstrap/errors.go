package bootstrap

import (
	"errors"
	"fmt"
)

// Exit codes returned by the launcher when startup is aborted.
const (
	ExitConfigError     = 1
	ExitFilesystemFault = 2
	ExitLaunchFault     = 3
)

var (
	ErrConfigIsDir        = errors.New("config path is occupied by a directory")
	ErrEntryPointMissing  = errors.New("application entry point not found")
	ErrEntryPointIsDir    = errors.New("application entry point is a directory")
	ErrInterpreterMissing = errors.New("interpreter not found on PATH")
)

// FilesystemError is a fault preparing the Config Store: a directory that
// cannot be created, a template that cannot be read, or a Config Store that
// cannot be written or read back.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem fault: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// LaunchError is a fault handing control to the application entry point.
type LaunchError struct {
	Op   string
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch fault: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitCode maps a startup error to the process exit code. Errors that are
// neither filesystem nor launch faults count as configuration errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var fsErr *FilesystemError
	if errors.As(err, &fsErr) {
		return ExitFilesystemFault
	}

	var launchErr *LaunchError
	if errors.As(err, &launchErr) {
		return ExitLaunchFault
	}

	return ExitConfigError
}
