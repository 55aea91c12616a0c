package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"organize/internal/layout"
)

// Paths contains the source and destination roots.
type Paths struct {
	Source string `toml:"source"`
	Dest   string `toml:"dest"`
}

// Organize contains run behaviour settings.
type Organize struct {
	Action  string   `toml:"action"`
	DryRun  bool     `toml:"dry_run"`
	Exclude []string `toml:"exclude"`
}

// Rules contains the extension classification rules.
type Rules struct {
	RawExtensions   []string `toml:"raw_extensions"`
	VideoExtensions []string `toml:"video_extensions"`
	RawDir          string   `toml:"raw_dir"`
	OriginalsDir    string   `toml:"originals_dir"`
	NoExtensionDir  string   `toml:"no_extension_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for organize.
//
// Configuration sections:
//   - Paths: source and destination roots
//   - Organize: action (move/copy), dry run, exclude patterns
//   - Rules: raw/video extension sets and folder names
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Organize Organize `toml:"organize"`
	Rules    Rules    `toml:"rules"`
	Logging  Logging  `toml:"logging"`
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults are used and exists is false. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s not found", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// LayoutRules converts the rules section into classification rules.
func (c *Config) LayoutRules() layout.Rules {
	return layout.Rules{
		RawExtensions:   append([]string(nil), c.Rules.RawExtensions...),
		VideoExtensions: append([]string(nil), c.Rules.VideoExtensions...),
		RawDir:          c.Rules.RawDir,
		OriginalsDir:    c.Rules.OriginalsDir,
		NoExtensionDir:  c.Rules.NoExtensionDir,
	}
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		name, rest := pathValue[1:], ""
		for i := 0; i < len(name); i++ {
			if os.IsPathSeparator(name[i]) {
				name, rest = name[:i], name[i+1:]
				break
			}
		}
		home, err := homeDir(name)
		if err != nil {
			return "", err
		}
		pathValue = filepath.Join(home, rest)
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// homeDir returns the home directory of the named user, or of the current
// user when name is empty.
func homeDir(name string) (string, error) {
	if name == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return home, nil
	}
	u, err := user.Lookup(name)
	if err != nil {
		return "", fmt.Errorf("resolve home directory of %q: %w", name, err)
	}
	return u.HomeDir, nil
}

// Overrides carries command-line values. Nil fields leave the loaded value
// untouched; Exclude patterns are appended to the configured ones.
type Overrides struct {
	Source    *string
	Dest      *string
	Action    *string
	DryRun    *bool
	Exclude   []string
	LogLevel  *string
	LogFormat *string
}

// Apply layers overrides on top of the configuration, then re-normalizes and
// re-validates it.
func (c *Config) Apply(o Overrides) error {
	if o.Source != nil {
		c.Paths.Source = *o.Source
	}
	if o.Dest != nil {
		c.Paths.Dest = *o.Dest
	}
	if o.Action != nil {
		c.Organize.Action = *o.Action
	}
	if o.DryRun != nil {
		c.Organize.DryRun = *o.DryRun
	}
	if len(o.Exclude) > 0 {
		c.Organize.Exclude = append(c.Organize.Exclude, o.Exclude...)
	}
	if o.LogLevel != nil {
		c.Logging.Level = *o.LogLevel
	}
	if o.LogFormat != nil {
		c.Logging.Format = *o.LogFormat
	}
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}
