//go:build unix

package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExecLauncher_BadDirectory(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	inv := Invocation{
		Path: "/bin/true",
		Args: []string{"/bin/true"},
		Dir:  filepath.Join(t.TempDir(), "missing"),
	}
	if err := (ExecLauncher{}).Launch(inv); err == nil {
		t.Fatal("Launch() error = nil for a missing working directory")
	}

	after, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if after != wd {
		t.Errorf("working directory changed to %q after a failed launch", after)
	}
}

func TestLauncherFunc(t *testing.T) {
	var got Invocation
	l := LauncherFunc(func(inv Invocation) error {
		got = inv
		return nil
	})

	if err := l.Launch(Invocation{Path: "/app/run"}); err != nil {
		t.Fatal(err)
	}
	if got.Path != "/app/run" {
		t.Errorf("Path = %q, want /app/run", got.Path)
	}
}
