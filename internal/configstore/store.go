package configstore

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"ffmpeg-gui/internal/filesystem"

	"golang.org/x/crypto/blake2b"
)

// FileName is the name of the Config Store within its directory.
const FileName = "config.json"

// backupTimeFormat is appended to backup file names: config.json.bak-20250102-150405
const backupTimeFormat = "20060102-150405"

const fileMode os.FileMode = 0o644

// ErrIsDirectory is returned when a directory occupies the Config Store path.
var ErrIsDirectory = errors.New("config path is a directory")

// Store is the single persisted configuration file.
type Store struct {
	Path  string
	Retry filesystem.RetryConfig
}

// New returns a Store for path using the default NFS retry settings.
func New(path string) *Store {
	return &Store{Path: path, Retry: filesystem.DefaultRetryConfig()}
}

// Info describes the state of a file on disk.
type Info struct {
	Path        string    `json:"path" yaml:"path"`
	Exists      bool      `json:"exists" yaml:"exists"`
	Size        int64     `json:"size" yaml:"size"`
	ModTime     time.Time `json:"modTime,omitempty" yaml:"modTime,omitempty"`
	Fingerprint string    `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// Inspect reports whether the Config Store exists and, if so, its size,
// modification time and fingerprint. Absence is not an error.
func (s *Store) Inspect() (Info, error) {
	return inspect(s.Path, s.Retry)
}

// InspectTemplate reports the same information for a template file.
func InspectTemplate(path string) (Info, error) {
	return inspect(path, filesystem.DefaultRetryConfig())
}

func inspect(path string, retry filesystem.RetryConfig) (Info, error) {
	info := Info{Path: path}

	ok, fi, err := filesystem.Exists(path, retry)
	if err != nil {
		return info, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !ok {
		return info, nil
	}
	if fi.IsDir() {
		return info, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}

	sum, err := fingerprintFile(path, retry)
	if err != nil {
		return info, err
	}

	info.Exists = true
	info.Size = fi.Size()
	info.ModTime = fi.ModTime()
	info.Fingerprint = sum
	return info, nil
}

// Fingerprint returns the hex BLAKE2b-256 digest of data.
func Fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func fingerprintFile(path string, retry filesystem.RetryConfig) (string, error) {
	f, err := filesystem.OpenWithRetry(path, retry)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create hash: %w", err)
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Seed creates the Config Store from the template if no file exists at the
// Config Store path. It reports whether this call created the file. An
// existing file is never modified, including one that appears while the
// template is being copied.
func (s *Store) Seed(templatePath string) (bool, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return false, fmt.Errorf("failed to read template %s: %w", templatePath, err)
	}
	return s.SeedBytes(data)
}

// SeedBytes is Seed with the template contents already in memory.
func (s *Store) SeedBytes(data []byte) (bool, error) {
	dir := filepath.Dir(s.Path)

	tmp, err := writeTemp(dir, data)
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp)

	err = filesystem.Observe("link", s.Path, func() error {
		return os.Link(tmp, s.Path)
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrExist):
		return false, nil
	case linkUnsupported(err):
		return createExclusive(s.Path, data)
	default:
		return false, fmt.Errorf("failed to link %s: %w", s.Path, err)
	}
}

// Reset replaces the Config Store with the template. With backup set, an
// existing file is first copied to config.json.bak-YYYYMMDD-HHMMSS. It
// returns the backup path, empty when no backup was taken.
func (s *Store) Reset(templatePath string, backup bool) (string, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", templatePath, err)
	}

	info, err := s.Inspect()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	var backupPath string
	if backup && info.Exists {
		backupPath = s.Path + ".bak-" + time.Now().Format(backupTimeFormat)
		current, err := os.ReadFile(s.Path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s for backup: %w", s.Path, err)
		}
		if err := os.WriteFile(backupPath, current, fileMode); err != nil {
			return "", fmt.Errorf("failed to write backup %s: %w", backupPath, err)
		}
	}

	tmp, err := writeTemp(filepath.Dir(s.Path), data)
	if err != nil {
		return backupPath, err
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		os.Remove(tmp)
		return backupPath, fmt.Errorf("failed to replace %s: %w", s.Path, err)
	}
	return backupPath, nil
}

// writeTemp writes data to a synced temp file in dir and returns its path.
func writeTemp(dir string, data []byte) (string, error) {
	var tmp string
	err := filesystem.Observe("write", dir, func() error {
		f, err := os.CreateTemp(dir, "."+FileName+".tmp-*")
		if err != nil {
			return err
		}
		tmp = f.Name()

		if _, err := f.Write(data); err != nil {
			f.Close()
			return err
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		return os.Chmod(tmp, fileMode)
	})
	if err != nil {
		if tmp != "" {
			os.Remove(tmp)
		}
		return "", fmt.Errorf("failed to write temp file in %s: %w", dir, err)
	}
	return tmp, nil
}

// createExclusive is the fallback for filesystems without hard links.
func createExclusive(path string, data []byte) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		return false, fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to close %s: %w", path, err)
	}
	return true, nil
}

func linkUnsupported(err error) bool {
	return errors.Is(err, syscall.EPERM) ||
		errors.Is(err, syscall.ENOTSUP) ||
		errors.Is(err, syscall.EOPNOTSUPP) ||
		errors.Is(err, syscall.EXDEV) ||
		errors.Is(err, syscall.EMLINK)
}

// Pristine reports whether i holds the same bytes as the template t.
func (i Info) Pristine(t Info) bool {
	return i.Exists && t.Exists && i.Fingerprint == t.Fingerprint
}
