package bootstrap

// Invocation describes how the application entry point is started.
type Invocation struct {
	// Path is the program to execute: the entry point itself, or the
	// interpreter when one is configured.
	Path string
	// Args is the full argv, including argv[0].
	Args []string
	// Dir is the working directory of the new process.
	Dir string
	// Env is the environment passed to execve.
	Env []string
}

// Launcher transfers control to the application. A successful Launch in
// production never returns.
type Launcher interface {
	Launch(inv Invocation) error
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(inv Invocation) error

func (f LauncherFunc) Launch(inv Invocation) error { return f(inv) }

// ExecLauncher replaces the current process image with the application,
// so the application inherits the launcher's PID and becomes the
// foreground process seen by the supervisor.
type ExecLauncher struct{}
