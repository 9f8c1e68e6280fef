//go:build unix

package bootstrap

import (
	"fmt"
	"os"
	"syscall"
)

// Launch changes into inv.Dir and calls execve(2). It returns only on failure.
func (ExecLauncher) Launch(inv Invocation) error {
	if err := os.Chdir(inv.Dir); err != nil {
		return fmt.Errorf("failed to change directory: %w", err)
	}
	if err := syscall.Exec(inv.Path, inv.Args, inv.Env); err != nil {
		return fmt.Errorf("execve: %w", err)
	}
	return nil
}
