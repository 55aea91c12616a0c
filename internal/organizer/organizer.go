package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"organize/internal/filetime"
	"organize/internal/fileutil"
	"organize/internal/layout"
	"organize/internal/logging"
	"organize/internal/scan"
)

// TimestampFunc resolves the timestamp a file is dated by.
type TimestampFunc func(path string, info fs.FileInfo) filetime.Stamp

// TransferFunc places src at dst. It must fail with an error matching
// fs.ErrExist instead of replacing an existing dst.
type TransferFunc func(src, dst string) error

// Option customizes an Organizer.
type Option func(*Organizer)

// WithTimestampFunc replaces filetime.FromInfo, mainly for tests that need
// deterministic dates.
func WithTimestampFunc(fn TimestampFunc) Option {
	return func(o *Organizer) {
		if fn != nil {
			o.stamp = fn
		}
	}
}

// WithObserver registers a callback invoked after every file.
func WithObserver(fn Observer) Option {
	return func(o *Organizer) {
		o.observer = fn
	}
}

// WithTransferFunc replaces the move or copy chosen from the action.
func WithTransferFunc(fn TransferFunc) Option {
	return func(o *Organizer) {
		if fn != nil {
			o.transfer = fn
		}
	}
}

// Organizer performs a single organize run.
type Organizer struct {
	opts     Options
	logger   *slog.Logger
	stamp    TimestampFunc
	observer Observer
	transfer TransferFunc
	// planned holds targets claimed during a dry run, which never touch disk.
	planned map[string]struct{}
}

// New validates opts and returns an Organizer ready to Run.
func New(opts Options, logger *slog.Logger, options ...Option) (*Organizer, error) {
	if strings.TrimSpace(opts.Source) == "" {
		return nil, Wrap(ErrInvalidOptions, "options", "source", "source directory must be set", nil)
	}
	if strings.TrimSpace(opts.Dest) == "" {
		return nil, Wrap(ErrInvalidOptions, "options", "dest", "destination directory must be set", nil)
	}
	action, err := ParseAction(string(opts.Action))
	if err != nil {
		return nil, err
	}
	opts.Action = action
	if opts.Source, err = filepath.Abs(opts.Source); err != nil {
		return nil, Wrap(ErrInvalidOptions, "options", "source", "resolve path", err)
	}
	if opts.Dest, err = filepath.Abs(opts.Dest); err != nil {
		return nil, Wrap(ErrInvalidOptions, "options", "dest", "resolve path", err)
	}
	if err := scan.ValidatePatterns(opts.Exclude); err != nil {
		return nil, Wrap(ErrInvalidOptions, "options", "exclude", "", err)
	}

	o := &Organizer{
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "organizer"),
		stamp:   filetime.FromInfo,
		planned: make(map[string]struct{}),
	}
	if action == ActionCopy {
		o.transfer = fileutil.CopyFile
	} else {
		o.transfer = fileutil.MoveFile
	}
	for _, apply := range options {
		apply(o)
	}
	return o, nil
}

// Options returns the resolved options.
func (o *Organizer) Options() Options {
	return o.opts
}

// Run organizes every file found under the source. Per-file failures are
// reported through the Summary and the Observer; the returned error is
// reserved for problems that stop the run, including cancellation of ctx.
func (o *Organizer) Run(ctx context.Context) (summary Summary, err error) {
	started := time.Now()
	logger := logging.WithContext(ctx, o.logger)
	summary = newSummary(o.opts.Action, o.opts.DryRun)
	defer func() {
		summary.Duration = time.Since(started)
	}()

	if err := o.checkPaths(); err != nil {
		return summary, err
	}
	if err := o.resolvePaths(); err != nil {
		return summary, err
	}

	if !o.opts.DryRun {
		if err := os.MkdirAll(o.opts.Dest, 0o755); err != nil {
			return summary, Wrap(ErrInvalidOptions, "prepare", "create destination", o.opts.Dest, err)
		}
		lock, err := acquireLock(o.opts.Dest)
		if err != nil {
			return summary, err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn("failed to release destination lock", logging.Error(err))
			}
		}()
	}

	logger.Info("organize run started",
		logging.String("source", o.opts.Source),
		logging.String("dest", o.opts.Dest),
		logging.String(logging.FieldAction, string(o.opts.Action)),
		logging.Bool("dry_run", o.opts.DryRun),
	)

	walk, err := scan.Walk(o.opts.Source, scan.Options{
		Exclude:   o.opts.Exclude,
		PruneDirs: o.pruneDirs(),
	})
	if err != nil {
		return summary, Wrap(ErrInvalidSource, "scan", "walk source", o.opts.Source, err)
	}
	for _, walkErr := range walk.Errors {
		summary.Unreadable++
		logging.WarnWithContext(logger, "skipping unreadable entry", "walk_error",
			logging.Error(walkErr),
			logging.String(logging.FieldErrorHint, "check directory permissions"),
		)
	}
	for _, skipped := range walk.Skipped {
		summary.Ignored++
		logger.Debug("ignoring entry",
			logging.String(logging.FieldPath, skipped.Path),
			logging.String("reason", skipped.Reason),
		)
	}
	summary.Scanned = len(walk.Entries)

	for _, entry := range walk.Entries {
		if err := ctx.Err(); err != nil {
			summary.Interrupted = true
			logger.Warn("run interrupted; remaining files left in place",
				logging.Int("remaining", summary.Scanned-summary.Placed-summary.Skipped-summary.Failed),
			)
			return summary, err
		}
		res := o.process(entry)
		summary.add(res)
		o.report(logger, res)
	}

	logger.Info("organize run finished",
		logging.Int("placed", summary.Placed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Int64("total_bytes", summary.Bytes),
		logging.Duration("elapsed", time.Since(started)),
	)
	return summary, nil
}

// Plan classifies entry and computes its target directory. The collision-free
// file name is chosen only when the file is placed.
func (o *Organizer) Plan(entry scan.Entry) (Record, error) {
	info := entry.Info
	if info == nil {
		var err error
		if info, err = os.Stat(entry.Path); err != nil {
			return Record{}, Wrap(ErrPlacement, "plan", "stat", entry.Path, err)
		}
	}
	name := entry.Name
	if name == "" {
		name = filepath.Base(entry.Path)
	}
	stamp := o.stamp(entry.Path, info)
	if stamp.Time.IsZero() {
		return Record{}, Wrap(ErrPlacement, "plan", "timestamp", entry.Path, errors.New("no usable timestamp"))
	}
	ext := layout.NormalizeExt(layout.Extension(name))
	category := o.opts.Rules.Category(ext)
	return Record{
		Source:    entry.Path,
		RelPath:   entry.RelPath,
		Name:      name,
		Ext:       ext,
		Size:      info.Size(),
		Stamp:     stamp,
		Date:      layout.DateFolder(stamp.Time),
		Category:  category,
		TargetDir: layout.TargetDir(o.opts.Dest, stamp.Time, category),
	}, nil
}

func (o *Organizer) process(entry scan.Entry) Result {
	rec, err := o.Plan(entry)
	if err != nil {
		rec.Source = entry.Path
		rec.RelPath = entry.RelPath
		rec.Name = entry.Name
		return Result{Record: rec, Outcome: OutcomeFailed, Err: err}
	}

	if filepath.Dir(rec.Source) == rec.TargetDir {
		rec.Target = rec.Source
		return Result{Record: rec, Outcome: OutcomeSkipped, Reason: "already organized"}
	}

	base, ext := layout.SplitName(rec.Name)
	if o.opts.DryRun {
		target, err := layout.NextAvailablePath(rec.TargetDir, base, ext, o.plannedOrExists)
		if err != nil {
			return Result{Record: rec, Outcome: OutcomeFailed, Err: Wrap(ErrPlacement, "plan", "choose name", "", err)}
		}
		o.planned[target] = struct{}{}
		rec.Target = target
		return Result{Record: rec, Outcome: OutcomePlanned}
	}

	if err := os.MkdirAll(rec.TargetDir, 0o755); err != nil {
		return Result{Record: rec, Outcome: OutcomeFailed, Err: Wrap(ErrPlacement, "place", "create directory", rec.TargetDir, err)}
	}
	target, err := o.place(rec.Source, rec.TargetDir, base, ext)
	rec.Target = target
	if err != nil {
		return Result{Record: rec, Outcome: OutcomeFailed, Err: err}
	}
	return Result{Record: rec, Outcome: o.opts.Action.outcome()}
}

// place picks the first free name and transfers the file there. A name
// claimed between the lookup and the transfer starts the lookup again.
func (o *Organizer) place(src, dir, base, ext string) (string, error) {
	const maxRaces = 8
	var lastErr error
	for range maxRaces {
		target, err := layout.NextAvailablePath(dir, base, ext, nil)
		if err != nil {
			return "", Wrap(ErrPlacement, "place", "choose name", "", err)
		}
		err = o.transfer(src, target)
		if err == nil {
			return target, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return target, Wrap(ErrPlacement, "place", string(o.opts.Action), target, err)
		}
		lastErr = err
	}
	return "", Wrap(ErrPlacement, "place", string(o.opts.Action), fmt.Sprintf("names in %s kept being taken", dir), lastErr)
}

func (o *Organizer) plannedOrExists(path string) bool {
	if _, ok := o.planned[path]; ok {
		return true
	}
	return layout.PathExists(path)
}

func (o *Organizer) report(logger *slog.Logger, res Result) {
	rec := res.Record
	switch res.Outcome {
	case OutcomeFailed:
		attrs := []logging.Attr{
			logging.String(logging.FieldFile, filepath.ToSlash(rec.RelPath)),
			logging.String(logging.FieldPath, rec.Source),
			logging.Error(res.Err),
		}
		if hint := errorHint(res.Err); hint != "" {
			attrs = append(attrs, logging.String(logging.FieldErrorHint, hint))
		}
		logging.ErrorWithContext(logger, "failed to organize file", "file_failed", attrs...)
	case OutcomeSkipped:
		logger.Debug("file skipped",
			logging.String(logging.FieldFile, filepath.ToSlash(rec.RelPath)),
			logging.String("reason", res.Reason),
		)
	default:
		logger.Debug("file placed",
			logging.String(logging.FieldFile, filepath.ToSlash(rec.RelPath)),
			logging.String(logging.FieldTarget, rec.Target),
			logging.String(logging.FieldCategory, filepath.ToSlash(rec.Category)),
			logging.String("date", rec.Date),
			logging.String("date_source", string(rec.Stamp.Source)),
			logging.Int64("size_bytes", rec.Size),
		)
	}
	if o.observer != nil {
		o.observer(res)
	}
}

func (o *Organizer) checkPaths() error {
	info, err := os.Stat(o.opts.Source)
	if err != nil {
		return Wrap(ErrInvalidSource, "validate", "stat source", o.opts.Source, err)
	}
	if !info.IsDir() {
		return Wrap(ErrInvalidSource, "validate", "source", o.opts.Source+" is not a directory", nil)
	}
	info, err = os.Stat(o.opts.Dest)
	switch {
	case err == nil && !info.IsDir():
		return Wrap(ErrInvalidOptions, "validate", "dest", o.opts.Dest+" is not a directory", nil)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return Wrap(ErrInvalidOptions, "validate", "stat dest", o.opts.Dest, err)
	}
	return nil
}

// resolvePaths evaluates symlinks in the source and destination so that
// walked paths, target directories and the overlap checks share one form.
func (o *Organizer) resolvePaths() error {
	source, err := scan.Resolve(o.opts.Source)
	if err != nil {
		return Wrap(ErrInvalidSource, "validate", "resolve source", o.opts.Source, err)
	}
	dest, err := scan.Resolve(o.opts.Dest)
	if err != nil {
		return Wrap(ErrInvalidOptions, "validate", "resolve dest", o.opts.Dest, err)
	}
	o.opts.Source, o.opts.Dest = source, dest
	return nil
}

// pruneDirs keeps a destination nested inside the source out of the walk.
func (o *Organizer) pruneDirs() []string {
	if o.opts.Dest != o.opts.Source && scan.IsUnder(o.opts.Dest, o.opts.Source) {
		return []string{o.opts.Dest}
	}
	return nil
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return "check permissions on the source file and destination folder"
	case errors.Is(err, fs.ErrNotExist):
		return "the file disappeared while the run was in progress"
	default:
		return ""
	}
}
