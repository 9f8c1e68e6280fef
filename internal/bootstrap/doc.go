/*
Package bootstrap implements the container start sequence of the GUI: make
sure the persisted configuration exists, then replace the launcher process
with the application.

# Sequence

[Sequencer.EnsureConfigInitialized] checks the Config Store path. When a file
is present nothing else happens; the template is not even opened. When it is
absent the config and log directories are created and the template bytes are
seeded with an atomic create-if-absent, so a file that appears concurrently
is never overwritten.

[Sequencer.LaunchApplication] runs in two steps. [Sequencer.PrepareLaunch]
re-asserts the executable bits on the entry point and builds the
[Invocation]; [Sequencer.Exec] hands it to the [Launcher]. Callers that record
the outcome before handing off call the two steps themselves. In production
the launcher is [ExecLauncher], which execs the entry point (or the
configured interpreter) with the install directory as its working directory
and no extra arguments.

# Errors

Failures are fatal and typed: [*FilesystemError] for anything preparing the
Config Store and [*LaunchError] for anything handing off. [ExitCode] maps
them to the process exit status (2 and 3; 1 for configuration errors).

# State

	uninitialized --seed--> initialized   (terminal, persisted on the volume)
*/
package bootstrap
