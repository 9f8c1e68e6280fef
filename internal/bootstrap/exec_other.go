//go:build !unix

package bootstrap

import (
	"errors"
	"runtime"
)

// Launch is unsupported where the process image cannot be replaced.
func (ExecLauncher) Launch(inv Invocation) error {
	return errors.New("process replacement is not supported on " + runtime.GOOS)
}
