package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teemow/slotfinder/internal/logging"
)

// Defaults for the search configuration. They are plain values passed in
// through Config so tests can run with arbitrary policies.
const (
	DefaultHorizonDays = 21
	DefaultMaxSlots    = 3
)

// BusySource supplies the combined busy intervals of all participants within
// a time window. Implementations query an external calendar service; the
// finder treats the call as a synchronous black box and performs no retries
// of its own.
//
// An error for any participant must be returned as an error for the whole
// window: slot correctness requires every participant's data.
type BusySource interface {
	BusyIntervals(ctx context.Context, timeMin, timeMax time.Time, participants []string) ([]Interval, error)
}

// BusySourceFunc adapts a function to the BusySource interface.
type BusySourceFunc func(ctx context.Context, timeMin, timeMax time.Time, participants []string) ([]Interval, error)

// BusyIntervals calls f.
func (f BusySourceFunc) BusyIntervals(ctx context.Context, timeMin, timeMax time.Time, participants []string) ([]Interval, error) {
	return f(ctx, timeMin, timeMax, participants)
}

// Config bounds a search run.
type Config struct {
	// HorizonDays is how many calendar days are scanned before giving up.
	HorizonDays int

	// MaxSlots caps the number of candidate slots returned.
	MaxSlots int
}

// DefaultConfig returns the standard search bounds: a 21-day horizon and at
// most 3 slots.
func DefaultConfig() Config {
	return Config{
		HorizonDays: DefaultHorizonDays,
		MaxSlots:    DefaultMaxSlots,
	}
}

// Request describes one search. It is immutable for the run.
type Request struct {
	// Start is the first day scanned. Only its date and location matter.
	Start time.Time

	// Participants are the calendar identifiers whose busy time must all
	// be avoided. Must be non-empty.
	Participants []string

	// Duration is the exact length of each candidate slot. Must be positive.
	Duration time.Duration
}

// Validate checks the request invariants.
func (r Request) Validate() error {
	if len(r.Participants) == 0 {
		return fmt.Errorf("at least one participant is required")
	}
	if r.Duration <= 0 {
		return fmt.Errorf("slot duration must be positive, got %s", r.Duration)
	}
	return nil
}

// Finder computes common available meeting slots for a group of
// participants within one user's working hours.
type Finder struct {
	source BusySource
	hours  WorkingHours
	cfg    Config
	logger *slog.Logger
}

// NewFinder creates a Finder. A nil logger falls back to slog.Default.
// Zero config fields are replaced with the package defaults.
func NewFinder(source BusySource, hours WorkingHours, cfg Config, logger *slog.Logger) *Finder {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = DefaultHorizonDays
	}
	if cfg.MaxSlots <= 0 {
		cfg.MaxSlots = DefaultMaxSlots
	}
	return &Finder{
		source: source,
		hours:  hours,
		cfg:    cfg,
		logger: logger,
	}
}

// Search scans days in increasing order from req.Start until the horizon is
// exhausted or MaxSlots candidate slots have been found. Non-working
// weekdays are skipped without querying busy data.
//
// Any busy-data error aborts the entire search: earlier days' slots are
// discarded and the error is returned, because a partial view of the group's
// calendars cannot produce trustworthy results.
func (f *Finder) Search(ctx context.Context, req Request) ([]Interval, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := f.hours.Validate(); err != nil {
		return nil, err
	}

	found := make([]Interval, 0, f.cfg.MaxSlots)
	for offset := 0; offset < f.cfg.HorizonDays && len(found) < f.cfg.MaxSlots; offset++ {
		day := req.Start.AddDate(0, 0, offset)
		if !f.hours.WorksOn(day.Weekday()) {
			continue
		}

		window := f.hours.Window(day)
		busy, err := f.source.BusyIntervals(ctx, window.Start, window.End, req.Participants)
		if err != nil {
			f.logger.Error("busy data unavailable, aborting search",
				logging.Operation("search"),
				slog.String("day", day.Format("2006-01-02")),
				logging.Err(err))
			return nil, fmt.Errorf("busy data for %s: %w", day.Format("2006-01-02"), err)
		}

		merged := Merge(busy)
		gaps := Gaps(merged, window.Start, window.End)
		slots := Slots(gaps, req.Duration, f.cfg.MaxSlots-len(found))
		found = append(found, slots...)

		f.logger.Debug("day scanned",
			logging.Operation("search"),
			slog.String("day", day.Format("2006-01-02")),
			slog.Int("busy", len(merged)),
			slog.Int("gaps", len(gaps)),
			slog.Int("slots", len(slots)))
	}
	return found, nil
}
