package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Clock is a time of day with minute resolution, independent of any date.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a "HH:MM" string such as "09:00" or "17:30".
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Before reports whether c is earlier in the day than other.
func (c Clock) Before(other Clock) bool {
	if c.Hour != other.Hour {
		return c.Hour < other.Hour
	}
	return c.Minute < other.Minute
}

// On returns the instant at this time of day on the given day, in the
// day's location.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// WorkingHours bounds the daily search window: a start and end time of day
// and the set of weekdays eligible for meetings. It is fetched once per run
// and treated as immutable afterwards.
type WorkingHours struct {
	Start Clock
	End   Clock
	Days  map[time.Weekday]bool
}

// DefaultWorkingHours returns the fallback policy used when the user has no
// working-hours setting: 09:00-17:00, Monday through Friday.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{
		Start: Clock{Hour: 9},
		End:   Clock{Hour: 17},
		Days: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
	}
}

// Validate checks the policy invariants. An empty weekday set is allowed;
// it simply yields zero candidate days.
func (w WorkingHours) Validate() error {
	if !w.Start.Before(w.End) {
		return fmt.Errorf("working hours start %s must be before end %s", w.Start, w.End)
	}
	return nil
}

// WorksOn reports whether the given weekday is eligible for meetings.
func (w WorkingHours) WorksOn(d time.Weekday) bool {
	return w.Days[d]
}

// Window returns the working window [start, end) on the given day.
func (w WorkingHours) Window(day time.Time) Interval {
	return Interval{Start: w.Start.On(day), End: w.End.On(day)}
}

func (w WorkingHours) String() string {
	days := make([]string, 0, len(w.Days))
	// Week order starting Monday, matching how people read working days.
	for i := 1; i <= 7; i++ {
		d := time.Weekday(i % 7)
		if w.Days[d] {
			days = append(days, d.String())
		}
	}
	return fmt.Sprintf("%s-%s %s", w.Start, w.End, strings.Join(days, ","))
}
