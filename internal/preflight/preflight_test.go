package preflight

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"organize/internal/config"
)

func TestCheckSource(t *testing.T) {
	dir := t.TempDir()
	if result := CheckSource("Source", dir); !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}

	result := CheckSource("Source", filepath.Join(dir, "nope"))
	if result.Passed || !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("expected missing-dir failure, got %+v", result)
	}

	f := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckSource("Source", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDestination(t *testing.T) {
	dir := t.TempDir()
	if result := CheckDestination("Destination", dir, false); !result.Passed {
		t.Fatalf("expected pass for existing dir, got: %s", result.Detail)
	}

	missing := filepath.Join(dir, "a", "b")
	result := CheckDestination("Destination", missing, false)
	if !result.Passed || !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("expected creatable destination, got %+v", result)
	}

	f := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDestination("Destination", f, false); result.Passed {
		t.Fatal("expected failure when destination is a file")
	}
	if result := CheckDestination("Destination", filepath.Join(f, "sub"), true); result.Passed {
		t.Fatal("expected failure when a parent is a file")
	}
}

func TestCheckDestinationReadOnly(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "ro")
	if err := os.Mkdir(locked, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	if result := CheckDestination("Destination", locked, false); result.Passed {
		t.Fatal("expected failure for read-only destination")
	}
	if result := CheckDestination("Destination", locked, true); !result.Passed {
		t.Fatalf("dry run should accept a read-only destination, got %s", result.Detail)
	}
}

func TestRunAllAndErr(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.Source = t.TempDir()
	cfg.Paths.Dest = filepath.Join(cfg.Paths.Source, "sorted")

	results := RunAll(&cfg)
	if len(results) != 3 {
		t.Fatalf("expected source, destination and overlap results, got %+v", results)
	}
	if err := Err(results); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}

	cfg.Paths.Source = filepath.Join(cfg.Paths.Source, "missing")
	err := Err(RunAll(&cfg))
	if err == nil || !strings.Contains(err.Error(), "Source:") {
		t.Fatalf("expected source failure, got %v", err)
	}
}

func TestCheckOverlap(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "data")
	if _, ok := CheckOverlap(base, filepath.Join(string(filepath.Separator), "other")); ok {
		t.Fatal("disjoint trees should not report overlap")
	}
	for _, dest := range []string{base, filepath.Join(base, "sorted"), string(filepath.Separator)} {
		if r, ok := CheckOverlap(base, dest); !ok || !r.Passed {
			t.Fatalf("expected passing overlap note for dest %q, got %+v", dest, r)
		}
	}
}
