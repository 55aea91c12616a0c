package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"organize/internal/organizer"
)

// progressPrinter writes one line per handled file to stdout. Failures are
// reported by the logger on stderr, so they get no line here.
type progressPrinter struct {
	mu      sync.Mutex
	out     io.Writer
	action  organizer.Action
	placed  *color.Color
	planned *color.Color
	skipped *color.Color
}

func newProgressPrinter(out io.Writer, action organizer.Action, colorize bool) *progressPrinter {
	p := &progressPrinter{
		out:     out,
		action:  action,
		placed:  color.New(color.FgGreen),
		planned: color.New(color.FgCyan),
		skipped: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.placed, p.planned, p.skipped} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *progressPrinter) observe(res organizer.Result) {
	rec := res.Record
	var line string
	switch res.Outcome {
	case organizer.OutcomeCopied, organizer.OutcomeMoved:
		line = fmt.Sprintf("%s: %s -> %s", p.placed.Sprint(string(res.Outcome)), rec.Source, rec.Target)
	case organizer.OutcomePlanned:
		verb := "would " + string(p.action)
		line = fmt.Sprintf("%s: %s -> %s", p.planned.Sprint(verb), rec.Source, rec.Target)
	case organizer.OutcomeSkipped:
		line = fmt.Sprintf("%s: %s (%s)", p.skipped.Sprint("skipped"), rec.Source, res.Reason)
	default:
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, line)
}
