package preflight

import (
	"errors"
	"fmt"
	"strings"

	"organize/internal/config"
	"organize/internal/scan"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the path checks for cfg.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{
		CheckSource("Source", cfg.Paths.Source),
		CheckDestination("Destination", cfg.Paths.Dest, cfg.Organize.DryRun),
	}
	if overlap, ok := CheckOverlap(cfg.Paths.Source, cfg.Paths.Dest); ok {
		results = append(results, overlap)
	}
	return results
}

// Err joins the failed results into one error, or returns nil.
func Err(results []Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r.Name+": "+r.Detail)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return errors.New("preflight failed: " + strings.Join(failed, "; "))
}

// CheckOverlap describes how nested source and destination trees are
// handled. ok is false when the trees are disjoint.
func CheckOverlap(source, dest string) (Result, bool) {
	const name = "Overlap"
	switch {
	case source == dest:
		return Result{Name: name, Passed: true, Detail: "source is the destination; files already in place are skipped"}, true
	case scan.IsUnder(dest, source):
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s is inside the source and will not be scanned", dest)}, true
	case scan.IsUnder(source, dest):
		return Result{Name: name, Passed: true, Detail: "source is inside the destination"}, true
	}
	return Result{}, false
}
