package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End).
// It is used for busy blocks, free gaps, and candidate slots alike.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// IsValid reports whether the interval satisfies Start < End.
func (iv Interval) IsValid() bool {
	return iv.Start.Before(iv.End)
}

// Overlaps reports whether the interval shares any time with other.
// Touching intervals (one ends exactly where the other starts) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether other lies entirely within the interval.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// Merge returns the minimal sorted sequence of non-overlapping intervals
// covering the same union of time as the input. The input may be unsorted
// and may contain overlapping or duplicate intervals from multiple
// participants; it is not modified.
//
// Exactly-touching intervals (one ends where the next starts) are merged
// into one. This boundary rule is load-bearing: it determines gap edges,
// and therefore slot edges, downstream.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]Interval, 0, len(sorted))
	cur := sorted[0]
	for _, iv := range sorted[1:] {
		if !iv.Start.After(cur.End) {
			// Overlap or touch: extend to the later end. Nested
			// intervals collapse here because the end never shrinks.
			if iv.End.After(cur.End) {
				cur.End = iv.End
			}
			continue
		}
		merged = append(merged, cur)
		cur = iv
	}
	return append(merged, cur)
}

// Gaps returns the free intervals within the window [windowStart, windowEnd)
// left uncovered by busy, which must already be merged and sorted (see Merge).
//
// The cursor never moves backwards, so busy intervals extending past either
// window edge are handled correctly: a busy block straddling windowStart
// simply pushes the cursor forward, and a fully busy window yields no gaps.
func Gaps(busy []Interval, windowStart, windowEnd time.Time) []Interval {
	var gaps []Interval
	cursor := windowStart
	for _, b := range busy {
		if b.Start.After(cursor) {
			gaps = append(gaps, Interval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(windowEnd) {
		gaps = append(gaps, Interval{Start: cursor, End: windowEnd})
	}
	return gaps
}

// Slots slices the given gaps into consecutive slots of exactly duration d,
// first-fit in gap order, stopping once limit slots have been produced.
// Slots are laid back-to-back from each gap's start; there is no alignment
// to a clock grid. A gap shorter than d yields nothing.
func Slots(gaps []Interval, d time.Duration, limit int) []Interval {
	if d <= 0 || limit <= 0 {
		return nil
	}

	var slots []Interval
	for _, gap := range gaps {
		for start := gap.Start; !start.Add(d).After(gap.End); start = start.Add(d) {
			slots = append(slots, Interval{Start: start, End: start.Add(d)})
			if len(slots) >= limit {
				return slots
			}
		}
	}
	return slots
}
