package configstore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const templateJSON = `{"video_codecs":{},"max_concurrent_tasks":2}`

func writeTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json.template")
	if err := os.WriteFile(path, []byte(templateJSON), 0o444); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// tempFiles returns leftover seed temp files in dir.
func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "."+FileName+".tmp-*"))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

func TestSeedCreatesFromTemplate(t *testing.T) {
	tmpl := writeTemplate(t)
	dir := t.TempDir()
	store := New(filepath.Join(dir, FileName))

	created, err := store.Seed(tmpl)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if !created {
		t.Error("Seed() created = false, want true")
	}
	if got := readFile(t, store.Path); got != templateJSON {
		t.Errorf("content = %q, want %q", got, templateJSON)
	}

	info, err := os.Stat(store.Path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}
	if left := tempFiles(t, dir); len(left) != 0 {
		t.Errorf("temp files left behind: %v", left)
	}
}

func TestSeedKeepsExistingFile(t *testing.T) {
	tmpl := writeTemplate(t)
	dir := t.TempDir()
	store := New(filepath.Join(dir, FileName))

	custom := `{"quality":"custom"}`
	if err := os.WriteFile(store.Path, []byte(custom), 0o600); err != nil {
		t.Fatal(err)
	}

	created, err := store.Seed(tmpl)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if created {
		t.Error("Seed() created = true for an existing file")
	}
	if got := readFile(t, store.Path); got != custom {
		t.Errorf("content = %q, want %q", got, custom)
	}
	if left := tempFiles(t, dir); len(left) != 0 {
		t.Errorf("temp files left behind: %v", left)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	tmpl := writeTemplate(t)
	store := New(filepath.Join(t.TempDir(), FileName))

	first, err := store.Seed(tmpl)
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Seed(tmpl)
	if err != nil {
		t.Fatal(err)
	}
	if !first || second {
		t.Errorf("created = (%v, %v), want (true, false)", first, second)
	}
	if got := readFile(t, store.Path); got != templateJSON {
		t.Errorf("content = %q, want %q", got, templateJSON)
	}
}

func TestSeedConcurrentWritersCreateOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	const writers = 8
	var wg sync.WaitGroup
	results := make([]bool, writers)
	errs := make([]error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = New(path).SeedBytes([]byte(strings.Repeat("x", i+1)))
		}(i)
	}
	wg.Wait()

	winner := -1
	for i := 0; i < writers; i++ {
		if errs[i] != nil {
			t.Fatalf("writer %d error = %v", i, errs[i])
		}
		if results[i] {
			if winner >= 0 {
				t.Fatalf("writers %d and %d both created the file", winner, i)
			}
			winner = i
		}
	}
	if winner < 0 {
		t.Fatal("no writer created the file")
	}
	if got := readFile(t, path); got != strings.Repeat("x", winner+1) {
		t.Errorf("content = %q, want the winner's bytes", got)
	}
}

func TestSeedMissingTemplate(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), FileName))

	_, err := store.Seed(filepath.Join(t.TempDir(), "missing.template"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Seed() error = %v, want ErrNotExist", err)
	}
	if _, err := os.Stat(store.Path); !os.IsNotExist(err) {
		t.Error("Config Store should not exist after a failed seed")
	}
}

func TestSeedMissingDirectory(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "absent", FileName))

	if _, err := store.SeedBytes([]byte("{}")); err == nil {
		t.Fatal("SeedBytes() error = nil, want error for a missing directory")
	}
}

func TestCreateExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	created, err := createExclusive(path, []byte("first"))
	if err != nil || !created {
		t.Fatalf("createExclusive() = (%v, %v), want (true, nil)", created, err)
	}
	created, err = createExclusive(path, []byte("second"))
	if err != nil || created {
		t.Fatalf("createExclusive() = (%v, %v), want (false, nil)", created, err)
	}
	if got := readFile(t, path); got != "first" {
		t.Errorf("content = %q, want first", got)
	}
}

func TestInspect(t *testing.T) {
	tmpl := writeTemplate(t)
	store := New(filepath.Join(t.TempDir(), FileName))

	info, err := store.Inspect()
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if info.Exists || info.Fingerprint != "" {
		t.Errorf("Inspect() on absent file = %+v", info)
	}

	if _, err := store.Seed(tmpl); err != nil {
		t.Fatal(err)
	}

	info, err = store.Inspect()
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if !info.Exists {
		t.Fatal("Inspect() Exists = false after seeding")
	}
	if info.Size != int64(len(templateJSON)) {
		t.Errorf("Size = %d, want %d", info.Size, len(templateJSON))
	}
	if info.Fingerprint != Fingerprint([]byte(templateJSON)) {
		t.Errorf("Fingerprint = %s, want %s", info.Fingerprint, Fingerprint([]byte(templateJSON)))
	}
	if info.ModTime.IsZero() {
		t.Error("ModTime should be set")
	}

	tmplInfo, err := InspectTemplate(tmpl)
	if err != nil {
		t.Fatal(err)
	}
	if !info.Pristine(tmplInfo) {
		t.Error("freshly seeded store should be pristine")
	}

	if err := os.WriteFile(store.Path, []byte(`{"quality":"custom"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	info, err = store.Inspect()
	if err != nil {
		t.Fatal(err)
	}
	if info.Pristine(tmplInfo) {
		t.Error("edited store should be customized")
	}
}

func TestInspectDirectory(t *testing.T) {
	dir := t.TempDir()
	store := New(filepath.Join(dir, FileName))
	if err := os.Mkdir(store.Path, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Inspect(); !errors.Is(err, ErrIsDirectory) {
		t.Errorf("Inspect() error = %v, want ErrIsDirectory", err)
	}
}

func TestFingerprint(t *testing.T) {
	// BLAKE2b-256 of the empty input.
	const empty = "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"
	if got := Fingerprint(nil); got != empty {
		t.Errorf("Fingerprint(nil) = %s, want %s", got, empty)
	}
	if Fingerprint([]byte("a")) == Fingerprint([]byte("b")) {
		t.Error("different inputs produced the same fingerprint")
	}
}

func TestResetWithBackup(t *testing.T) {
	tmpl := writeTemplate(t)
	dir := t.TempDir()
	store := New(filepath.Join(dir, FileName))

	custom := `{"quality":"custom"}`
	if err := os.WriteFile(store.Path, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	backup, err := store.Reset(tmpl, true)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if !strings.HasPrefix(filepath.Base(backup), FileName+".bak-") {
		t.Errorf("backup path = %q, want config.json.bak-<timestamp>", backup)
	}
	if got := readFile(t, backup); got != custom {
		t.Errorf("backup content = %q, want %q", got, custom)
	}
	if got := readFile(t, store.Path); got != templateJSON {
		t.Errorf("content after reset = %q, want template", got)
	}
	if left := tempFiles(t, dir); len(left) != 0 {
		t.Errorf("temp files left behind: %v", left)
	}
}

func TestResetWithoutBackup(t *testing.T) {
	tmpl := writeTemplate(t)
	dir := t.TempDir()
	store := New(filepath.Join(dir, FileName))

	if err := os.WriteFile(store.Path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	backup, err := store.Reset(tmpl, false)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if backup != "" {
		t.Errorf("backup = %q, want none", backup)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, FileName+".bak-*"))
	if len(matches) != 0 {
		t.Errorf("unexpected backups: %v", matches)
	}
}

func TestResetCreatesMissingStore(t *testing.T) {
	tmpl := writeTemplate(t)
	store := New(filepath.Join(t.TempDir(), "nested", FileName))

	backup, err := store.Reset(tmpl, true)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if backup != "" {
		t.Errorf("backup = %q, want none when nothing existed", backup)
	}
	if got := readFile(t, store.Path); got != templateJSON {
		t.Errorf("content = %q, want template", got)
	}
}
