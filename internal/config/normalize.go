package config

import (
	"fmt"
	"os"
	"strings"

	"organize/internal/layout"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOrganize()
	c.normalizeRules()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.Source) == "" {
		c.Paths.Source = defaultSourceDir
	}
	if c.Paths.Source, err = expandPath(strings.TrimSpace(c.Paths.Source)); err != nil {
		return fmt.Errorf("paths.source: %w", err)
	}
	if strings.TrimSpace(c.Paths.Dest) == "" {
		c.Paths.Dest = defaultDestDir
	}
	if c.Paths.Dest, err = expandPath(strings.TrimSpace(c.Paths.Dest)); err != nil {
		return fmt.Errorf("paths.dest: %w", err)
	}
	return nil
}

func (c *Config) normalizeOrganize() {
	c.Organize.Action = strings.ToLower(strings.TrimSpace(c.Organize.Action))
	if c.Organize.Action == "" {
		c.Organize.Action = defaultAction
	}
	patterns := make([]string, 0, len(c.Organize.Exclude))
	for _, p := range c.Organize.Exclude {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	c.Organize.Exclude = patterns
}

func (c *Config) normalizeRules() {
	defaults := layout.DefaultRules()
	c.Rules.RawExtensions = normalizeExtensions(c.Rules.RawExtensions)
	c.Rules.VideoExtensions = normalizeExtensions(c.Rules.VideoExtensions)
	c.Rules.RawDir = strings.TrimSpace(c.Rules.RawDir)
	if c.Rules.RawDir == "" {
		c.Rules.RawDir = defaults.RawDir
	}
	c.Rules.OriginalsDir = strings.TrimSpace(c.Rules.OriginalsDir)
	if c.Rules.OriginalsDir == "" {
		c.Rules.OriginalsDir = defaults.OriginalsDir
	}
	c.Rules.NoExtensionDir = strings.TrimSpace(c.Rules.NoExtensionDir)
	if c.Rules.NoExtensionDir == "" {
		c.Rules.NoExtensionDir = defaults.NoExtensionDir
	}
}

// applyEnv lets environment variables override file values. Flags applied
// later through Apply take precedence over both.
func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv(envLogFormat); ok && strings.TrimSpace(value) != "" {
		c.Logging.Format = value
	}
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = logFormatConsole
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// normalizeExtensions uppercases, strips dots, and drops blanks and duplicates.
func normalizeExtensions(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		ext := layout.NormalizeExt(value)
		if ext == "" {
			continue
		}
		if _, exists := seen[ext]; exists {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}
