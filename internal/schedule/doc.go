// Package schedule implements the core availability computation for finding
// common meeting slots.
//
// The package is pure: it knows nothing about Google Calendar or any other
// data source. Busy intervals arrive through the BusySource interface, are
// merged into a single non-overlapping timeline per day, and the complement
// within the working-hours window is sliced into fixed-duration candidate
// slots until the configured cap is reached.
//
// Example usage:
//
//	finder := schedule.NewFinder(source, hours, schedule.DefaultConfig(), nil)
//	slots, err := finder.Search(ctx, schedule.Request{
//	    Start:        time.Now(),
//	    Participants: []string{"a@example.com", "b@example.com"},
//	    Duration:     time.Hour,
//	})
package schedule
