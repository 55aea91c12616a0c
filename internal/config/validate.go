package config

import (
	"errors"
	"fmt"
	"strings"

	"organize/internal/scan"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateRules(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.Source) == "" {
		return errors.New("paths.source must be set")
	}
	if strings.TrimSpace(c.Paths.Dest) == "" {
		return errors.New("paths.dest must be set")
	}
	return nil
}

func (c *Config) validateOrganize() error {
	if err := ValidateAction(c.Organize.Action); err != nil {
		return fmt.Errorf("organize.action: %w", err)
	}
	if err := scan.ValidatePatterns(c.Organize.Exclude); err != nil {
		return fmt.Errorf("organize.exclude: %w", err)
	}
	return nil
}

func (c *Config) validateRules() error {
	for key, value := range map[string]string{
		"rules.raw_dir":          c.Rules.RawDir,
		"rules.originals_dir":    c.Rules.OriginalsDir,
		"rules.no_extension_dir": c.Rules.NoExtensionDir,
	} {
		if err := validateFolderName(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	raw := make(map[string]struct{}, len(c.Rules.RawExtensions))
	for _, ext := range c.Rules.RawExtensions {
		if strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("rules.raw_extensions: %q is not a file extension", ext)
		}
		raw[ext] = struct{}{}
	}
	for _, ext := range c.Rules.VideoExtensions {
		if strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("rules.video_extensions: %q is not a file extension", ext)
		}
		if _, dup := raw[ext]; dup {
			return fmt.Errorf("rules: extension %q listed as both raw and video", ext)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case logFormatConsole, logFormatJSON:
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn, or error)", c.Logging.Level)
	}
}

// ValidateAction accepts "move" or "copy".
func ValidateAction(action string) error {
	switch action {
	case actionMove, actionCopy:
		return nil
	default:
		return fmt.Errorf("unsupported action %q (use move or copy)", action)
	}
}

func validateFolderName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New("must be set")
	case name == "." || name == "..":
		return fmt.Errorf("%q is not a folder name", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%q must be a single folder name", name)
	}
	return nil
}
