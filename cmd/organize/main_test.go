package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"organize/internal/filetime"
	"organize/internal/layout"
	"organize/internal/testsupport"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// isolate keeps the user's config files out of the run.
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("ORGANIZE_LOG_LEVEL", "")
	t.Setenv("ORGANIZE_LOG_FORMAT", "")
	t.Chdir(t.TempDir())
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func dateOf(t *testing.T, path string) string {
	t.Helper()
	stamp, err := filetime.Best(path)
	if err != nil {
		t.Fatalf("timestamp for %s: %v", path, err)
	}
	return layout.DateFolder(stamp.Time)
}

func TestCLICopyFromConfigFile(t *testing.T) {
	isolate(t)
	cfg := testsupport.NewConfig(t, testsupport.WithAction("copy"))
	src := filepath.Join(cfg.Paths.Source, "IMG_0001.CR3")
	testsupport.WriteFile(t, src, 2048)
	configPath := testsupport.WriteConfig(t, cfg)
	day := dateOf(t, src)

	stdout, stderr, err := runCLI(t, "--config", configPath)
	if err != nil {
		t.Fatalf("organize failed: %v\nstderr: %s", err, stderr)
	}

	target := filepath.Join(cfg.Paths.Dest, day, "RAW", "IMG_0001.CR3")
	requireContains(t, stdout, "Organizing files from: "+cfg.Paths.Source)
	requireContains(t, stdout, "Into: "+cfg.Paths.Dest)
	requireContains(t, stdout, "Action: copy")
	requireContains(t, stdout, "CR3, ARW, NEF, DNG, RAF")
	requireContains(t, stdout, "<EXT>/Originals")
	requireContains(t, stdout, "copied: "+src+" -> "+target)
	requireContains(t, stdout, "2.0 kB")
	requireContains(t, stdout, "Done.")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected copied file: %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("expected source to remain after copy: %v", err)
	}
}

func TestCLIMoveWithFlags(t *testing.T) {
	isolate(t)
	base := t.TempDir()
	source := filepath.Join(base, "in")
	dest := filepath.Join(base, "out")
	first := filepath.Join(source, "a", "clip.mp4")
	second := filepath.Join(source, "b", "clip.mp4")
	testsupport.WriteFileContent(t, first, "first")
	testsupport.WriteFileContent(t, second, "second")
	day := dateOf(t, first)
	if dateOf(t, second) != day {
		t.Skip("fixture files straddle midnight")
	}

	stdout, stderr, err := runCLI(t, "--source", source, "--dest", dest, "--action", "move")
	if err != nil {
		t.Fatalf("organize failed: %v\nstderr: %s", err, stderr)
	}
	dir := filepath.Join(dest, day, "MP4", "Originals")
	requireContains(t, stdout, "moved: "+first+" -> "+filepath.Join(dir, "clip.mp4"))
	requireContains(t, stdout, "moved: "+second+" -> "+filepath.Join(dir, "clip_1.mp4"))
	if got := testsupport.ReadFile(t, filepath.Join(dir, "clip_1.mp4")); got != "second" {
		t.Fatalf("unexpected collision copy content %q", got)
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Fatalf("expected source to be moved, stat err=%v", err)
	}
}

func TestCLIDryRunLeavesFilesAlone(t *testing.T) {
	isolate(t)
	cfg := testsupport.NewConfig(t)
	src := filepath.Join(cfg.Paths.Source, "notes")
	testsupport.WriteFileContent(t, src, "n")

	stdout, stderr, err := runCLI(t, "--source", cfg.Paths.Source, "--dest", cfg.Paths.Dest, "--dry-run")
	if err != nil {
		t.Fatalf("organize failed: %v\nstderr: %s", err, stderr)
	}
	requireContains(t, stdout, "Action: move (dry run)")
	requireContains(t, stdout, "would move: "+src)
	requireContains(t, stdout, "NO_EXTENSION")
	if _, err := os.Stat(cfg.Paths.Dest); !os.IsNotExist(err) {
		t.Fatalf("expected destination to stay absent, stat err=%v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("expected source untouched: %v", err)
	}
}

func TestCLIExcludeFlag(t *testing.T) {
	isolate(t)
	cfg := testsupport.NewConfig(t, testsupport.WithExclude("**/*.xmp"))
	keep := filepath.Join(cfg.Paths.Source, "a.jpg")
	testsupport.WriteFileContent(t, keep, "a")
	testsupport.WriteFileContent(t, filepath.Join(cfg.Paths.Source, "a.xmp"), "sidecar")
	testsupport.WriteFileContent(t, filepath.Join(cfg.Paths.Source, "cache", "b.jpg"), "b")
	configPath := testsupport.WriteConfig(t, cfg)

	stdout, stderr, err := runCLI(t, "--config", configPath, "--action", "copy", "--exclude", "cache")
	if err != nil {
		t.Fatalf("organize failed: %v\nstderr: %s", err, stderr)
	}
	requireContains(t, stdout, "Excluding: **/*.xmp, cache")
	requireContains(t, stdout, "copied: "+keep)
	if strings.Contains(stdout, "a.xmp") || strings.Contains(stdout, "b.jpg") {
		t.Fatalf("excluded files were processed:\n%s", stdout)
	}
}

func TestCLIRejectsInvalidAction(t *testing.T) {
	isolate(t)
	_, _, err := runCLI(t, "--source", t.TempDir(), "--action", "delete")
	if err == nil {
		t.Fatal("expected error for unsupported action")
	}
	requireContains(t, err.Error(), "unsupported action")
}

func TestCLIRejectsUnknownLogFormat(t *testing.T) {
	isolate(t)
	_, _, err := runCLI(t, "--source", t.TempDir(), "--dest", t.TempDir(), "--log-format", "yaml")
	if err == nil {
		t.Fatal("expected error for unsupported log format")
	}
	requireContains(t, err.Error(), "logging.format")
}

func TestCLIMissingSourceIsFatal(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "nope")
	_, _, err := runCLI(t, "--source", missing, "--dest", t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	requireContains(t, err.Error(), "does not exist")
}

func TestCLIRejectsPositionalArgs(t *testing.T) {
	isolate(t)
	if _, _, err := runCLI(t, "somewhere"); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestCLIReportsFailuresOnStderr(t *testing.T) {
	isolate(t)
	cfg := testsupport.NewConfig(t, testsupport.WithAction("copy"))
	src := filepath.Join(cfg.Paths.Source, "doc.pdf")
	testsupport.WriteFileContent(t, src, "pdf")
	day := dateOf(t, src)
	testsupport.WriteFileContent(t, filepath.Join(cfg.Paths.Dest, day, "PDF"), "blocker")
	configPath := testsupport.WriteConfig(t, cfg)

	stdout, stderr, err := runCLI(t, "--config", configPath, "--log-format", "json")
	if err != nil {
		t.Fatalf("per-file failures must not fail the run: %v", err)
	}
	requireContains(t, stderr, `"level":"error"`)
	requireContains(t, stderr, `"path":`)
	requireContains(t, stderr, `"run_id":`)
	requireContains(t, stdout, "Done.")
}

func TestConfigShowReflectsOverrides(t *testing.T) {
	isolate(t)
	stdout, _, err := runCLI(t, "config", "show", "--log-level", "debug")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	requireContains(t, stdout, "# no configuration file found")
	requireContains(t, stdout, "[organize]")
	requireContains(t, stdout, "raw_extensions")
	requireContains(t, stdout, "debug")
}

func TestConfigValidate(t *testing.T) {
	isolate(t)
	cfg := testsupport.NewConfig(t)
	configPath := testsupport.WriteConfig(t, cfg)

	stdout, _, err := runCLI(t, "config", "validate", "--config", configPath)
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	requireContains(t, stdout, "Config path: "+configPath)
	requireContains(t, stdout, cfg.Paths.Source+" (read ok)")
	requireContains(t, stdout, "will be created")
	requireContains(t, stdout, "Configuration valid")

	if _, _, err := runCLI(t, "config", "validate", "--config", filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}

	if err := os.RemoveAll(cfg.Paths.Source); err != nil {
		t.Fatal(err)
	}
	stdout, _, err = runCLI(t, "config", "validate", "--config", configPath)
	if err == nil {
		t.Fatal("expected preflight failure for missing source")
	}
	requireContains(t, stdout, "FAIL")
}

func TestCLIDestinationInsideSourceIsLeftAlone(t *testing.T) {
	isolate(t)
	cfg := testsupport.NewConfig(t, testsupport.WithDestInsideSource("sorted"))
	src := filepath.Join(cfg.Paths.Source, "clip.mov")
	testsupport.WriteFile(t, src, 64)
	configPath := testsupport.WriteConfig(t, cfg)
	day := dateOf(t, src)

	for i := 0; i < 2; i++ {
		if _, stderr, err := runCLI(t, "--config", configPath); err != nil {
			t.Fatalf("run %d failed: %v\nstderr: %s", i+1, err, stderr)
		}
	}

	target := filepath.Join(cfg.Paths.Dest, day, "MOV", "Originals", "clip.mov")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected organized file: %v", err)
	}
	nested := filepath.Join(cfg.Paths.Dest, day, "MOV", "Originals", "sorted")
	if _, err := os.Stat(nested); !os.IsNotExist(err) {
		t.Fatalf("destination tree was re-organized into itself: %v", err)
	}
}
