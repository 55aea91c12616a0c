package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &cliFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:   "organize",
		Short: "Sort files into date and type folders",
		Long: "organize walks a source directory and copies or moves every non-hidden file into\n" +
			"<dest>/<YYYY-MM-DD>/<CATEGORY>/, renaming on collision instead of overwriting.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, ctx)
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	persistent.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	persistent.StringVar(&flags.logFormat, "log-format", "", "Log format (console or json)")
	persistent.BoolVar(&flags.noColor, "no-color", false, "Disable coloured output")

	local := rootCmd.Flags()
	local.StringVarP(&flags.source, "source", "s", "", "Directory to organize (default: current directory)")
	local.StringVarP(&flags.dest, "dest", "d", "", "Destination root (default: current directory)")
	local.StringVarP(&flags.action, "action", "a", "move", "Placement action: move or copy")
	local.BoolVarP(&flags.dryRun, "dry-run", "n", false, "Show where files would go without touching them")
	local.StringArrayVarP(&flags.exclude, "exclude", "x", nil, "Glob of source-relative paths to leave alone (repeatable)")

	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
