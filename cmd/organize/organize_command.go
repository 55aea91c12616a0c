package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"organize/internal/config"
	"organize/internal/logging"
	"organize/internal/organizer"
	"organize/internal/preflight"
)

func runOrganize(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	logger, err := logging.NewFromConfig(cfg, errOut, !ctx.flags.noColor && shouldColorize(errOut))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	runID := uuid.NewString()
	runCtx := logging.ContextWithRunID(cmd.Context(), runID)
	logger.Debug("configuration resolved",
		logging.String("config_path", ctx.configPath),
		logging.Bool("config_file_found", ctx.configSeen),
		logging.String(logging.FieldRunID, runID),
	)

	action, err := organizer.ParseAction(cfg.Organize.Action)
	if err != nil {
		return err
	}
	printer := newProgressPrinter(out, action, !ctx.flags.noColor && shouldColorize(out))
	org, err := organizer.New(organizer.Options{
		Source:  cfg.Paths.Source,
		Dest:    cfg.Paths.Dest,
		Action:  action,
		DryRun:  cfg.Organize.DryRun,
		Exclude: cfg.Organize.Exclude,
		Rules:   cfg.LayoutRules(),
	}, logger, organizer.WithObserver(printer.observe))
	if err != nil {
		return err
	}

	printBanner(out, cfg)
	if err := preflight.Err(preflight.RunAll(cfg)); err != nil {
		return err
	}

	summary, runErr := org.Run(runCtx)
	if runErr != nil && !summary.Interrupted {
		return runErr
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderSummary(summary))
	if summary.Interrupted {
		fmt.Fprintln(out, "Interrupted.")
		return runErr
	}
	fmt.Fprintln(out, "Done.")
	return nil
}

func printBanner(out io.Writer, cfg *config.Config) {
	action := cfg.Organize.Action
	if cfg.Organize.DryRun {
		action += " (dry run)"
	}
	fmt.Fprintf(out, "Organizing files from: %s\n", cfg.Paths.Source)
	fmt.Fprintf(out, "Into: %s\n", cfg.Paths.Dest)
	fmt.Fprintf(out, "Action: %s\n", action)
	if len(cfg.Organize.Exclude) > 0 {
		fmt.Fprintf(out, "Excluding: %s\n", strings.Join(cfg.Organize.Exclude, ", "))
	}
	fmt.Fprintln(out, renderRules(cfg.Rules))
	fmt.Fprintln(out)
}

func renderRules(rules config.Rules) string {
	return tableView{
		Title:   "Classification rules",
		Headers: []string{"Extensions", "Folder"},
		Rows: [][]string{
			{listOrDash(rules.RawExtensions), rules.RawDir},
			{listOrDash(rules.VideoExtensions), "<EXT>/" + rules.OriginalsDir},
			{"(none)", rules.NoExtensionDir},
			{"anything else", "<EXT>"},
		},
	}.render()
}

func renderSummary(s organizer.Summary) string {
	rows := [][]string{
		{"Files scanned", humanize.Comma(int64(s.Scanned))},
		{placedLabel(s.Action, s.DryRun), humanize.Comma(int64(s.Placed))},
		{"Already organized", humanize.Comma(int64(s.Skipped))},
		{"Ignored (hidden or excluded)", humanize.Comma(int64(s.Ignored))},
		{"Failed", humanize.Comma(int64(s.Failed))},
	}
	if s.Unreadable > 0 {
		rows = append(rows, []string{"Unreadable entries", humanize.Comma(int64(s.Unreadable))})
	}
	rows = append(rows,
		[]string{"Total size", humanize.Bytes(uint64(max(s.Bytes, 0)))},
		[]string{"Elapsed", s.Duration.Round(time.Millisecond).String()},
	)
	summary := tableView{
		Title:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignRight},
	}.render()

	counts := s.CategoryCounts()
	if len(counts) == 0 {
		return summary
	}
	categoryRows := make([][]string, 0, len(counts))
	for _, c := range counts {
		categoryRows = append(categoryRows, []string{c.Category, humanize.Comma(int64(c.Count))})
	}
	categories := tableView{
		Title:   "By category",
		Headers: []string{"Category", "Files"},
		Rows:    categoryRows,
		Aligns:  []columnAlignment{alignLeft, alignRight},
		Footer:  []string{"Total", humanize.Comma(int64(s.Placed))},
	}.render()
	return summary + "\n" + categories
}

func placedLabel(action organizer.Action, dryRun bool) string {
	switch {
	case dryRun && action == organizer.ActionCopy:
		return "Would copy"
	case dryRun:
		return "Would move"
	case action == organizer.ActionCopy:
		return "Copied"
	default:
		return "Moved"
	}
}

func listOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
