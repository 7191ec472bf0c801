// Package report renders search results for humans. It consumes only the
// found slots and the request parameters; everything it knows about the
// search arrives through its arguments.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/teemow/slotfinder/internal/schedule"
)

// Printer writes human-readable slot reports.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Slots renders the result of a search. Times are shown in the local zone
// of each slot's start. An empty result renders a "no slots" message with
// the search parameters so the user knows what was scanned.
func (p *Printer) Slots(slots []schedule.Interval, duration time.Duration, horizonDays int) {
	if len(slots) == 0 {
		cross := color.New(color.FgRed, color.Bold).Sprint("✗")
		fmt.Fprintf(p.out, "\n%s No common %d-minute slots found in the next %d days within working hours.\n",
			cross, int(duration.Minutes()), horizonDays)
		return
	}

	check := color.New(color.FgGreen, color.Bold).Sprint("✓")
	fmt.Fprintf(p.out, "\n%s Found %d potential slot(s) for everyone:\n", check, len(slots))
	for _, slot := range slots {
		fmt.Fprintf(p.out, " - %s from %s to %s\n",
			slot.Start.Format("Monday, Jan 2"),
			slot.Start.Format("3:04 PM"),
			slot.End.Format("3:04 PM"))
	}
}

// Searching announces the search parameters before the first query, with
// one line per attendee the way the original interactive flow did.
func (p *Printer) Searching(attendees []string, duration time.Duration) {
	fmt.Fprintf(p.out, "Searching for %d-minute slots for:\n", int(duration.Minutes()))
	for _, attendee := range attendees {
		fmt.Fprintf(p.out, " - %s\n", attendee)
	}
}

// WorkingHours reports which working-hours policy bounds the search and
// whether it came from the user's settings or the built-in default.
func (p *Printer) WorkingHours(hours schedule.WorkingHours, isDefault bool) {
	if isDefault {
		fmt.Fprintf(p.out, "No working hours configured, defaulting to %s.\n", hours)
		return
	}
	fmt.Fprintf(p.out, "Using your configured working hours: %s.\n", hours)
}
