package status

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ffmpeg-gui/internal/configstore"
	"ffmpeg-gui/internal/journal"
)

const shippedTemplate = "../../assets/config.json.template"

type fakeBoots struct {
	boots []journal.Boot
	err   error
	limit int
}

func (f *fakeBoots) Recent(_ context.Context, limit int) ([]journal.Boot, error) {
	f.limit = limit
	return f.boots, f.err
}

func source(t *testing.T) (Source, string) {
	t.Helper()
	tmpl, err := filepath.Abs(shippedTemplate)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), configstore.FileName)
	return Source{Store: configstore.New(path), TemplatePath: tmpl}, path
}

func TestCollectUninitialized(t *testing.T) {
	src, _ := source(t)

	r, err := Collect(context.Background(), src)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if r.State != "uninitialized" || r.Ready() {
		t.Errorf("report = %+v, want uninitialized and not ready", r)
	}
	if !r.Template.Exists {
		t.Error("template should be inspected")
	}
}

func TestCollectPristine(t *testing.T) {
	src, _ := source(t)
	if _, err := src.Store.Seed(src.TemplatePath); err != nil {
		t.Fatal(err)
	}

	r, err := Collect(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if r.State != "initialized" || !r.Ready() {
		t.Errorf("report = %+v, want initialized and ready", r)
	}
	if r.Customized {
		t.Error("seeded config should not be customized")
	}
	if len(r.Issues) != 0 {
		t.Errorf("Issues = %v, want none", r.Issues)
	}
}

func TestCollectCustomizedUnparsable(t *testing.T) {
	src, path := source(t)
	if err := os.WriteFile(path, []byte(`{"quality":`), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Collect(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Customized {
		t.Error("edited config should be customized")
	}
	if r.Parsed || r.ParseError == "" || r.Ready() {
		t.Errorf("report = %+v, want parse error and not ready", r)
	}
}

func TestCollectValidationIssues(t *testing.T) {
	src, path := source(t)
	if err := os.WriteFile(path, []byte(`{"quality":"custom"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Collect(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Ready() {
		t.Error("a parsable document is ready even with issues")
	}
	if len(r.Issues) == 0 {
		t.Error("expected validation issues for a document without codecs")
	}
}

func TestCollectBoots(t *testing.T) {
	src, _ := source(t)
	boots := &fakeBoots{boots: []journal.Boot{{ID: 1, StartedAt: time.Now(), Outcome: "launching"}}}
	src.Boots = boots

	r, err := Collect(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Boots) != 1 {
		t.Errorf("Boots = %v", r.Boots)
	}
	if boots.limit != 10 {
		t.Errorf("default limit = %d, want 10", boots.limit)
	}

	src.Boots = &fakeBoots{err: errors.New("database is locked")}
	r, err = Collect(context.Background(), src)
	if err != nil {
		t.Fatalf("journal errors must not fail Collect: %v", err)
	}
	if r.JournalError == "" {
		t.Error("JournalError should be set")
	}
}

func TestCollectDirectoryAtConfigPath(t *testing.T) {
	src, path := source(t)
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := Collect(context.Background(), src); !errors.Is(err, configstore.ErrIsDirectory) {
		t.Errorf("Collect() error = %v, want ErrIsDirectory", err)
	}
}
