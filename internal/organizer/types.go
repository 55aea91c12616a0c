package organizer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"organize/internal/filetime"
	"organize/internal/layout"
)

// Action selects how files reach the destination.
type Action string

const (
	ActionMove Action = "move"
	ActionCopy Action = "copy"
)

// ParseAction accepts "move" or "copy" in any case.
func ParseAction(value string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(value))) {
	case ActionMove:
		return ActionMove, nil
	case ActionCopy:
		return ActionCopy, nil
	default:
		return "", Wrap(ErrInvalidOptions, "options", "action", fmt.Sprintf("unsupported action %q (use move or copy)", value), nil)
	}
}

func (a Action) outcome() Outcome {
	if a == ActionCopy {
		return OutcomeCopied
	}
	return OutcomeMoved
}

// Options configures a run. Source and Dest may be relative; they are made
// absolute by New.
type Options struct {
	Source  string
	Dest    string
	Action  Action
	DryRun  bool
	Exclude []string
	Rules   layout.Rules
}

// Record describes one source file and where it goes.
type Record struct {
	Source    string
	RelPath   string
	Name      string
	Ext       string
	Size      int64
	Stamp     filetime.Stamp
	Date      string
	Category  string
	TargetDir string
	// Target is empty until a collision-free name has been chosen.
	Target string
}

// Outcome is what happened to a file.
type Outcome string

const (
	OutcomeCopied  Outcome = "copied"
	OutcomeMoved   Outcome = "moved"
	OutcomePlanned Outcome = "planned"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Result is reported once per scanned file.
type Result struct {
	Record  Record
	Outcome Outcome
	Reason  string
	Err     error
}

// Observer receives each Result as soon as the file has been handled.
type Observer func(Result)

// CategoryCount is one row of the per-category breakdown.
type CategoryCount struct {
	Category string
	Count    int
}

// Summary aggregates a run.
type Summary struct {
	Action      Action
	DryRun      bool
	Scanned     int
	Placed      int
	Skipped     int
	Ignored     int
	Failed      int
	Unreadable  int
	Bytes       int64
	Categories  map[string]int
	Duration    time.Duration
	Interrupted bool
}

func newSummary(action Action, dryRun bool) Summary {
	return Summary{Action: action, DryRun: dryRun, Categories: make(map[string]int)}
}

func (s *Summary) add(res Result) {
	switch res.Outcome {
	case OutcomeCopied, OutcomeMoved, OutcomePlanned:
		s.Placed++
		s.Bytes += res.Record.Size
		s.Categories[filepath.ToSlash(res.Record.Category)]++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}

// CategoryCounts returns the per-category placements sorted by category.
func (s Summary) CategoryCounts() []CategoryCount {
	out := make([]CategoryCount, 0, len(s.Categories))
	for category, count := range s.Categories {
		out = append(out, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
