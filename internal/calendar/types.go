package calendar

import (
	"encoding/json"
	"fmt"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/slotfinder/internal/schedule"
)

// workingHoursSettingID is the calendar setting that stores the user's
// working hours.
const workingHoursSettingID = "workingHours"

// workingHoursValue is the JSON shape of the workingHours setting value.
type workingHoursValue struct {
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	DaysOfWeek []string `json:"daysOfWeek"`
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// parseWorkingHours converts the raw setting value into a policy. Missing
// fields fall back to the corresponding piece of the default policy, the
// same way the calendar UI treats them.
func parseWorkingHours(raw string) (schedule.WorkingHours, error) {
	def := schedule.DefaultWorkingHours()

	var value workingHoursValue
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return schedule.WorkingHours{}, fmt.Errorf("malformed workingHours setting: %w", err)
	}

	hours := def
	if value.StartTime != "" {
		start, err := schedule.ParseClock(value.StartTime)
		if err != nil {
			return schedule.WorkingHours{}, err
		}
		hours.Start = start
	}
	if value.EndTime != "" {
		end, err := schedule.ParseClock(value.EndTime)
		if err != nil {
			return schedule.WorkingHours{}, err
		}
		hours.End = end
	}
	if value.DaysOfWeek != nil {
		days := make(map[time.Weekday]bool, len(value.DaysOfWeek))
		for _, name := range value.DaysOfWeek {
			d, ok := weekdayNames[name]
			if !ok {
				return schedule.WorkingHours{}, fmt.Errorf("unknown weekday %q in workingHours setting", name)
			}
			days[d] = true
		}
		hours.Days = days
	}

	if err := hours.Validate(); err != nil {
		return schedule.WorkingHours{}, err
	}
	return hours, nil
}

// busyIntervals converts the busy periods of one calendar in a free/busy
// response into UTC-normalized intervals.
func busyIntervals(periods []*calendar.TimePeriod) ([]schedule.Interval, error) {
	var intervals []schedule.Interval
	for _, p := range periods {
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			return nil, fmt.Errorf("malformed busy start %q: %w", p.Start, err)
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			return nil, fmt.Errorf("malformed busy end %q: %w", p.End, err)
		}
		intervals = append(intervals, schedule.Interval{
			Start: start.UTC(),
			End:   end.UTC(),
		})
	}
	return intervals, nil
}
