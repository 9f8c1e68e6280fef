package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"ffmpeg-gui/internal/logging"
	"ffmpeg-gui/internal/metrics"
)

// Default timeout for journal operations
const defaultTimeout = 5 * time.Second

// Boot is one container start.
type Boot struct {
	ID                  int64         `json:"id" yaml:"id"`
	StartedAt           time.Time     `json:"startedAt" yaml:"startedAt"`
	State               string        `json:"state" yaml:"state"`
	Seeded              bool          `json:"seeded" yaml:"seeded"`
	ConfigPath          string        `json:"configPath" yaml:"configPath"`
	TemplateFingerprint string        `json:"templateFingerprint,omitempty" yaml:"templateFingerprint,omitempty"`
	Duration            time.Duration `json:"duration" yaml:"duration"`
	Outcome             string        `json:"outcome" yaml:"outcome"`
	Error               string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Journal records container starts in a SQLite database on the config volume.
type Journal struct {
	db   *sql.DB
	path string
}

// Open opens or creates the journal at path. The parent directory must exist.
func Open(ctx context.Context, path string) (*Journal, error) {
	// The config volume is often NFS, where WAL's shared memory index does
	// not work; stay on the rollback journal.
	connStr := fmt.Sprintf("%s?_journal_mode=DELETE&_synchronous=FULL&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close journal after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}

	db.SetMaxOpenConns(1)

	j := &Journal{db: db, path: path}
	if err := j.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close journal after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	logging.Debug("Journal opened at %s", path)
	return j, nil
}

func (j *Journal) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS boots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at INTEGER NOT NULL,
		state TEXT NOT NULL,
		seeded INTEGER NOT NULL DEFAULT 0,
		config_path TEXT NOT NULL,
		template_fingerprint TEXT,
		duration_ns INTEGER NOT NULL DEFAULT 0,
		outcome TEXT NOT NULL,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_boots_started_at ON boots(started_at);
	`

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := j.db.ExecContext(ctx, schema)
	return err
}

// Path returns the database file path.
func (j *Journal) Path() string {
	return j.path
}

// Record inserts b and returns its row ID.
func (j *Journal) Record(ctx context.Context, b Boot) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := j.db.ExecContext(ctx, `
		INSERT INTO boots (started_at, state, seeded, config_path, template_fingerprint, duration_ns, outcome, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.StartedAt.UnixNano(), b.State, b.Seeded, b.ConfigPath,
		nullString(b.TemplateFingerprint), int64(b.Duration), b.Outcome, nullString(b.Error),
	)
	if err != nil {
		metrics.JournalWritesTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("failed to record boot: %w", err)
	}
	metrics.JournalWritesTotal.WithLabelValues("success").Inc()

	return res.LastInsertId()
}

// ErrBootNotFound is returned by UpdateOutcome for an unknown ID.
var ErrBootNotFound = errors.New("boot record not found")

// UpdateOutcome sets the final outcome of a recorded boot.
func (j *Journal) UpdateOutcome(ctx context.Context, id int64, outcome string, duration time.Duration, bootErr error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var errText string
	if bootErr != nil {
		errText = bootErr.Error()
	}

	res, err := j.db.ExecContext(ctx,
		`UPDATE boots SET outcome = ?, duration_ns = ?, error = ? WHERE id = ?`,
		outcome, int64(duration), nullString(errText), id,
	)
	if err != nil {
		metrics.JournalWritesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to update boot %d: %w", id, err)
	}
	metrics.JournalWritesTotal.WithLabelValues("success").Inc()

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("boot %d: %w", id, ErrBootNotFound)
	}
	return nil
}

// Recent returns up to limit boots, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Boot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, started_at, state, seeded, config_path, template_fingerprint, duration_ns, outcome, error
		FROM boots
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query boots: %w", err)
	}
	defer rows.Close()

	var boots []Boot
	for rows.Next() {
		var (
			b           Boot
			startedAt   int64
			durationNs  int64
			fingerprint sql.NullString
			errText     sql.NullString
		)
		if err := rows.Scan(&b.ID, &startedAt, &b.State, &b.Seeded, &b.ConfigPath,
			&fingerprint, &durationNs, &b.Outcome, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan boot: %w", err)
		}
		b.StartedAt = time.Unix(0, startedAt)
		b.Duration = time.Duration(durationNs)
		b.TemplateFingerprint = fingerprint.String
		b.Error = errText.String
		boots = append(boots, b)
	}

	return boots, rows.Err()
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
