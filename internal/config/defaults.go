package config

import "organize/internal/layout"

const (
	defaultConfigPath = "~/.config/organize/config.toml"
	projectConfigName = "organize.toml"
	defaultSourceDir  = "."
	defaultDestDir    = "."
	defaultAction     = "move"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	envLogLevel       = "ORGANIZE_LOG_LEVEL"
	envLogFormat      = "ORGANIZE_LOG_FORMAT"
	actionMove        = "move"
	actionCopy        = "copy"
	logFormatConsole  = "console"
	logFormatJSON     = "json"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	rules := layout.DefaultRules()
	return Config{
		Paths: Paths{
			Source: defaultSourceDir,
			Dest:   defaultDestDir,
		},
		Organize: Organize{
			Action: defaultAction,
		},
		Rules: Rules{
			RawExtensions:   rules.RawExtensions,
			VideoExtensions: rules.VideoExtensions,
			RawDir:          rules.RawDir,
			OriginalsDir:    rules.OriginalsDir,
			NoExtensionDir:  rules.NoExtensionDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
