package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"organize/internal/config"
)

// cliFlags holds the raw flag values. Only flags the user actually set are
// layered over the configuration file.
type cliFlags struct {
	configPath string
	source     string
	dest       string
	action     string
	dryRun     bool
	exclude    []string
	logLevel   string
	logFormat  string
	noColor    bool
}

type commandContext struct {
	flags *cliFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(flags *cliFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.configPath))
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.Apply(c.overrides(cmd)); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) overrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	if flagChanged(cmd, "source") {
		o.Source = &c.flags.source
	}
	if flagChanged(cmd, "dest") {
		o.Dest = &c.flags.dest
	}
	if flagChanged(cmd, "action") {
		o.Action = &c.flags.action
	}
	if flagChanged(cmd, "dry-run") {
		o.DryRun = &c.flags.dryRun
	}
	if flagChanged(cmd, "exclude") {
		o.Exclude = c.flags.exclude
	}
	if flagChanged(cmd, "log-level") {
		o.LogLevel = &c.flags.logLevel
	}
	if flagChanged(cmd, "log-format") {
		o.LogFormat = &c.flags.logFormat
	}
	return o
}

func flagChanged(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
