package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"ffmpeg-gui/internal/configstore"
	"ffmpeg-gui/internal/filesystem"
	"ffmpeg-gui/internal/logging"
)

// State is the persisted initialization state of the Config Store.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	default:
		return "unknown"
	}
}

// Options configures a Sequencer. All paths are explicit so tests can point
// the sequencer at a temporary directory.
type Options struct {
	ConfigPath   string
	TemplatePath string
	// LogDir is created alongside the Config Store on first run. Optional.
	LogDir string

	AppDir     string
	EntryPoint string
	// Interpreter, when set, is resolved on PATH and runs EntryPoint.
	Interpreter string

	// Env is the environment of the application. Defaults to os.Environ().
	Env      []string
	Launcher Launcher
	Retry    filesystem.RetryConfig
}

// Result describes what EnsureConfigInitialized found and did.
type Result struct {
	// State is the state found before initialization ran.
	State               State
	Seeded              bool
	ConfigPath          string
	TemplateFingerprint string
	Duration            time.Duration
}

// Sequencer guarantees the Config Store exists and then hands off to the
// application entry point.
type Sequencer struct {
	opts  Options
	store *configstore.Store
}

// New creates a Sequencer. A nil Launcher defaults to ExecLauncher and a
// zero Retry to filesystem.DefaultRetryConfig().
func New(opts Options) *Sequencer {
	if opts.Launcher == nil {
		opts.Launcher = ExecLauncher{}
	}
	if opts.Retry == (filesystem.RetryConfig{}) {
		opts.Retry = filesystem.DefaultRetryConfig()
	}
	return &Sequencer{
		opts:  opts,
		store: &configstore.Store{Path: opts.ConfigPath, Retry: opts.Retry},
	}
}

// EntryPointPath returns the entry point resolved against AppDir.
func (s *Sequencer) EntryPointPath() string {
	if filepath.IsAbs(s.opts.EntryPoint) {
		return s.opts.EntryPoint
	}
	return filepath.Join(s.opts.AppDir, s.opts.EntryPoint)
}

// EnsureConfigInitialized seeds the Config Store from the template if it is
// absent. An existing Config Store is left untouched and the template is not
// read. Every failure is a *FilesystemError.
func (s *Sequencer) EnsureConfigInitialized() (Result, error) {
	start := time.Now()
	path := s.opts.ConfigPath
	result := Result{ConfigPath: path}

	exists, info, err := filesystem.Exists(path, s.opts.Retry)
	if err != nil {
		return result, &FilesystemError{Op: "stat", Path: path, Err: err}
	}
	if exists {
		if info.IsDir() {
			return result, &FilesystemError{Op: "stat", Path: path, Err: ErrConfigIsDir}
		}
		result.State = StateInitialized
		result.Duration = time.Since(start)
		logging.Debug("Config store present at %s (%d bytes), template not consulted", path, info.Size())
		return result, nil
	}

	result.State = StateUninitialized
	logging.Info("No configuration at %s, seeding from %s", path, s.opts.TemplatePath)

	for _, dir := range []string{filepath.Dir(path), s.opts.LogDir} {
		if dir == "" {
			continue
		}
		err := filesystem.Observe("mkdir", dir, func() error {
			return os.MkdirAll(dir, 0o755)
		})
		if err != nil {
			return result, &FilesystemError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	tmpl, err := os.ReadFile(s.opts.TemplatePath)
	if err != nil {
		return result, &FilesystemError{Op: "read template", Path: s.opts.TemplatePath, Err: err}
	}
	result.TemplateFingerprint = configstore.Fingerprint(tmpl)

	seeded, err := s.store.SeedBytes(tmpl)
	if err != nil {
		return result, &FilesystemError{Op: "seed", Path: path, Err: err}
	}
	result.Seeded = seeded
	if !seeded {
		logging.Warn("Config store at %s appeared while seeding; keeping existing file", path)
	}

	f, err := filesystem.OpenWithRetry(path, s.opts.Retry)
	if err != nil {
		return result, &FilesystemError{Op: "verify", Path: path, Err: err}
	}
	f.Close()

	result.Duration = time.Since(start)
	return result, nil
}

// Invocation builds the process invocation for the entry point without
// touching the filesystem, other than resolving the interpreter.
func (s *Sequencer) Invocation() (Invocation, error) {
	entry := s.EntryPointPath()
	env := s.opts.Env
	if env == nil {
		env = os.Environ()
	}

	if s.opts.Interpreter == "" {
		return Invocation{Path: entry, Args: []string{entry}, Dir: s.opts.AppDir, Env: env}, nil
	}

	interp, err := exec.LookPath(s.opts.Interpreter)
	if err != nil {
		return Invocation{}, &LaunchError{
			Op:   "lookpath",
			Path: s.opts.Interpreter,
			Err:  fmt.Errorf("%w: %v", ErrInterpreterMissing, err),
		}
	}
	return Invocation{Path: interp, Args: []string{interp, entry}, Dir: s.opts.AppDir, Env: env}, nil
}

// PrepareLaunch re-asserts the executable bits on the entry point and
// builds its invocation. Every failure is a *LaunchError.
func (s *Sequencer) PrepareLaunch() (Invocation, error) {
	entry := s.EntryPointPath()

	info, err := filesystem.StatWithRetry(entry, s.opts.Retry)
	if errors.Is(err, fs.ErrNotExist) {
		return Invocation{}, &LaunchError{Op: "stat", Path: entry, Err: ErrEntryPointMissing}
	}
	if err != nil {
		return Invocation{}, &LaunchError{Op: "stat", Path: entry, Err: err}
	}
	if info.IsDir() {
		return Invocation{}, &LaunchError{Op: "stat", Path: entry, Err: ErrEntryPointIsDir}
	}

	mode := info.Mode().Perm()
	if mode&0o111 != 0o111 {
		err := filesystem.Observe("chmod", entry, func() error {
			return os.Chmod(entry, mode|0o111)
		})
		if err != nil {
			return Invocation{}, &LaunchError{Op: "chmod", Path: entry, Err: err}
		}
		logging.Debug("Marked %s executable (%v -> %v)", entry, mode, mode|0o111)
	}

	return s.Invocation()
}

// Exec transfers control to inv. With ExecLauncher it returns only on
// failure.
func (s *Sequencer) Exec(inv Invocation) error {
	logging.Info("Handing off to %v in %s", inv.Args, inv.Dir)
	if err := s.opts.Launcher.Launch(inv); err != nil {
		return &LaunchError{Op: "exec", Path: inv.Path, Err: err}
	}
	return nil
}

// LaunchApplication is PrepareLaunch followed by Exec. Every failure is a
// *LaunchError.
func (s *Sequencer) LaunchApplication() error {
	inv, err := s.PrepareLaunch()
	if err != nil {
		return err
	}
	return s.Exec(inv)
}
