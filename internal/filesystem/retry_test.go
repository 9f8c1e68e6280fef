package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"
)

// recordingObserver captures observer calls for assertions.
type recordingObserver struct {
	mu         sync.Mutex
	operations []string
	attempts   int
	successes  int
	failures   int
	stale      int
	durations  int
	opErrors   int
}

func (r *recordingObserver) ObserveOperation(volume, operation string, _ float64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = append(r.operations, volume+"/"+operation)
	if err != nil {
		r.opErrors++
	}
}

func (r *recordingObserver) ObserveRetryAttempt(_, _ string) { r.mu.Lock(); r.attempts++; r.mu.Unlock() }
func (r *recordingObserver) ObserveRetrySuccess(_, _ string) { r.mu.Lock(); r.successes++; r.mu.Unlock() }
func (r *recordingObserver) ObserveRetryFailure(_, _ string) { r.mu.Lock(); r.failures++; r.mu.Unlock() }
func (r *recordingObserver) ObserveStaleError(_, _ string)   { r.mu.Lock(); r.stale++; r.mu.Unlock() }
func (r *recordingObserver) ObserveRetryDuration(_, _ string, _ float64) {
	r.mu.Lock()
	r.durations++
	r.mu.Unlock()
}

func withObserver(t *testing.T) *recordingObserver {
	t.Helper()
	original := defaultObserver
	t.Cleanup(func() { defaultObserver = original })
	rec := &recordingObserver{}
	SetObserver(rec)
	return rec
}

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", config.MaxRetries)
	}
	if config.InitialBackoff != 50*time.Millisecond {
		t.Errorf("InitialBackoff = %v, want 50ms", config.InitialBackoff)
	}
	if config.MaxBackoff != 500*time.Millisecond {
		t.Errorf("MaxBackoff = %v, want 500ms", config.MaxBackoff)
	}
	if config.VolumeResolver != nil {
		t.Error("VolumeResolver should be nil by default")
	}
}

func TestIsNFSStaleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "ESTALE error", err: syscall.ESTALE, want: true},
		{name: "wrapped ESTALE", err: &os.PathError{Op: "stat", Path: "/config", Err: syscall.ESTALE}, want: true},
		{name: "ENOENT error", err: syscall.ENOENT, want: false},
		{name: "generic error", err: os.ErrNotExist, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNFSStaleError(tt.err); got != tt.want {
				t.Errorf("isNFSStaleError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVolumeResolver_Resolve(t *testing.T) {
	vr := NewVolumeResolver(map[string]string{
		"config": "/config/ffmpeg-gui",
		"app":    "/app",
	})

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "config root", path: "/config/ffmpeg-gui", want: "config"},
		{name: "config file", path: "/config/ffmpeg-gui/config.json", want: "config"},
		{name: "config logs", path: "/config/ffmpeg-gui/logs/ffmpeg_gui_20250101.log", want: "config"},
		{name: "sibling app config", path: "/config/other-app/config.json", want: "unknown"},
		{name: "app template", path: "/app/config.json.template", want: "app"},
		{name: "app prefix is not a match", path: "/apple/x", want: "unknown"},
		{name: "root", path: "/", want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vr.Resolve(tt.path); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestVolumeResolver_LongestPrefixWins(t *testing.T) {
	vr := NewVolumeResolver(map[string]string{
		"config": "/config",
		"logs":   "/config/ffmpeg-gui/logs",
	})

	if got := vr.Resolve("/config/ffmpeg-gui/logs/a.log"); got != "logs" {
		t.Errorf("Resolve() = %q, want logs", got)
	}
	if got := vr.Resolve("/config/ffmpeg-gui/config.json"); got != "config" {
		t.Errorf("Resolve() = %q, want config", got)
	}
}

func TestVolumeResolver_NilResolver(t *testing.T) {
	var vr *VolumeResolver
	if got := vr.Resolve("/config/x"); got != "unknown" {
		t.Errorf("nil resolver Resolve() = %q, want %q", got, "unknown")
	}
}

func TestRetryConfig_ResolveVolume_UsesConfigResolver(t *testing.T) {
	original := defaultResolver
	defer func() { defaultResolver = original }()

	SetDefaultVolumeResolver(NewVolumeResolver(map[string]string{"default": "/config"}))

	config := fastRetryConfig()
	config.VolumeResolver = NewVolumeResolver(map[string]string{"override": "/config"})

	if got := config.resolveVolume("/config/config.json"); got != "override" {
		t.Errorf("resolveVolume() = %q, want override", got)
	}
}

func TestStatWithRetry_Success(t *testing.T) {
	rec := withObserver(t)
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(testFile, []byte("{}"), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	info, err := StatWithRetry(testFile, fastRetryConfig())
	if err != nil {
		t.Fatalf("StatWithRetry() error = %v, want nil", err)
	}
	if info.Size() != 2 {
		t.Errorf("FileInfo.Size() = %d, want 2", info.Size())
	}
	if rec.attempts != 0 || rec.stale != 0 {
		t.Errorf("unexpected retries: attempts=%d stale=%d", rec.attempts, rec.stale)
	}
	if rec.durations != 1 {
		t.Errorf("durations recorded = %d, want 1", rec.durations)
	}
}

func TestStatWithRetry_NotExistFailsFast(t *testing.T) {
	rec := withObserver(t)
	missing := filepath.Join(t.TempDir(), "missing.json")

	_, err := StatWithRetry(missing, fastRetryConfig())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("StatWithRetry() error = %v, want ErrNotExist", err)
	}
	if rec.attempts != 0 {
		t.Errorf("non-ESTALE errors must not be retried, attempts=%d", rec.attempts)
	}
}

func TestWithRetry_RecoversFromStaleHandle(t *testing.T) {
	rec := withObserver(t)
	calls := 0

	got, err := withRetry("stat", "/config/config.json", fastRetryConfig(), func() (string, error) {
		calls++
		if calls < 3 {
			return "", &os.PathError{Op: "stat", Path: "/config/config.json", Err: syscall.ESTALE}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("withRetry() error = %v", err)
	}
	if got != "ok" {
		t.Errorf("withRetry() = %q, want ok", got)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if rec.stale != 2 || rec.attempts != 2 || rec.successes != 1 {
		t.Errorf("observer stale=%d attempts=%d successes=%d, want 2/2/1", rec.stale, rec.attempts, rec.successes)
	}
}

func TestWithRetry_GivesUpAfterMaxRetries(t *testing.T) {
	rec := withObserver(t)
	calls := 0
	config := fastRetryConfig()

	_, err := withRetry("open", "/config/config.json", config, func() (int, error) {
		calls++
		return 0, syscall.ESTALE
	})
	if !errors.Is(err, syscall.ESTALE) {
		t.Fatalf("withRetry() error = %v, want ESTALE", err)
	}
	if calls != config.MaxRetries+1 {
		t.Errorf("calls = %d, want %d", calls, config.MaxRetries+1)
	}
	if rec.failures != 1 {
		t.Errorf("failures = %d, want 1", rec.failures)
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	present := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(present, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	ok, info, err := Exists(present, fastRetryConfig())
	if err != nil || !ok || info == nil {
		t.Errorf("Exists(present) = (%v, %v, %v), want (true, info, nil)", ok, info, err)
	}

	ok, info, err = Exists(filepath.Join(tmpDir, "absent.json"), fastRetryConfig())
	if err != nil || ok || info != nil {
		t.Errorf("Exists(absent) = (%v, %v, %v), want (false, nil, nil)", ok, info, err)
	}

	// A path beneath a regular file fails with ENOTDIR, which is not "absent".
	ok, _, err = Exists(filepath.Join(present, "nested"), fastRetryConfig())
	if ok || err == nil {
		t.Errorf("Exists(under file) = (%v, %v), want (false, error)", ok, err)
	}
}

func TestObserveRecordsOperation(t *testing.T) {
	rec := withObserver(t)
	original := defaultResolver
	t.Cleanup(func() { defaultResolver = original })

	tmpDir := t.TempDir()
	SetDefaultVolumeResolver(NewVolumeResolver(map[string]string{"config": tmpDir}))

	wantErr := errors.New("boom")
	err := Observe("mkdir", filepath.Join(tmpDir, "logs"), func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("Observe() error = %v, want %v", err, wantErr)
	}
	if len(rec.operations) != 1 || rec.operations[0] != "config/mkdir" {
		t.Errorf("operations = %v, want [config/mkdir]", rec.operations)
	}
	if rec.opErrors != 1 {
		t.Errorf("opErrors = %d, want 1", rec.opErrors)
	}
}
