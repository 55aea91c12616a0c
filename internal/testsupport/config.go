package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"organize/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose source and destination are fresh
// directories under a per-test temp root.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Source = filepath.Join(base, "source")
	cfgVal.Paths.Dest = filepath.Join(base, "dest")
	if err := os.MkdirAll(cfgVal.Paths.Source, 0o755); err != nil {
		t.Fatalf("mkdir source: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAction sets the placement action.
func WithAction(action string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.Action = action
	}
}

// WithExclude sets the exclude patterns.
func WithExclude(patterns ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.Exclude = append([]string(nil), patterns...)
	}
}

// WithDestInsideSource nests the destination under the source directory.
func WithDestInsideSource(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.Dest = filepath.Join(b.cfg.Paths.Source, name)
	}
}

// WriteConfig encodes cfg as TOML into the test's temp root and returns the
// file path.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()
	path := filepath.Join(BaseDir(cfg), "organize.toml")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create config: %v", err)
	}
	defer f.Close()
	if err := cfg.Encode(f); err != nil {
		t.Fatalf("encode config: %v", err)
	}
	return path
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.Source)
}
