package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBusySource records queried windows and serves canned busy intervals
// keyed by date.
type fakeBusySource struct {
	busyByDay map[string][]Interval
	errByDay  map[string]error
	queried   []string
}

func (f *fakeBusySource) BusyIntervals(_ context.Context, timeMin, _ time.Time, _ []string) ([]Interval, error) {
	day := timeMin.Format("2006-01-02")
	f.queried = append(f.queried, day)
	if err := f.errByDay[day]; err != nil {
		return nil, err
	}
	return f.busyByDay[day], nil
}

func busyOn(t *testing.T, day, start, end string) Interval {
	t.Helper()
	s, err := time.Parse("2006-01-02 15:04", day+" "+start)
	require.NoError(t, err)
	e, err := time.Parse("2006-01-02 15:04", day+" "+end)
	require.NoError(t, err)
	return Interval{Start: s.UTC(), End: e.UTC()}
}

// 2025-03-10 is a Monday; the following Saturday is 2025-03-15.
var monday = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func TestSearchFindsSlotsAcrossDays(t *testing.T) {
	source := &fakeBusySource{
		busyByDay: map[string][]Interval{
			// Monday: busy 09:00-16:30, leaves a 30min gap only.
			"2025-03-10": {busyOn(t, "2025-03-10", "09:00", "16:30")},
			// Tuesday: fully free.
			"2025-03-11": nil,
		},
	}

	finder := NewFinder(source, DefaultWorkingHours(), DefaultConfig(), nil)
	slots, err := finder.Search(context.Background(), Request{
		Start:        monday,
		Participants: []string{"a@example.com", "b@example.com"},
		Duration:     time.Hour,
	})
	require.NoError(t, err)

	// Monday contributes nothing (gap too short); Tuesday fills the cap.
	require.Len(t, slots, 3)
	assert.Equal(t, busyOn(t, "2025-03-11", "09:00", "10:00"), slots[0])
	assert.Equal(t, busyOn(t, "2025-03-11", "10:00", "11:00"), slots[1])
	assert.Equal(t, busyOn(t, "2025-03-11", "11:00", "12:00"), slots[2])

	// The cap was reached on Tuesday, so Wednesday is never queried.
	assert.Equal(t, []string{"2025-03-10", "2025-03-11"}, source.queried)
}

func TestSearchSkipsNonWorkingDaysWithoutQuerying(t *testing.T) {
	saturday := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	source := &fakeBusySource{
		errByDay: map[string]error{
			// Poisoned data on the weekend must never be touched.
			"2025-03-15": errors.New("should not be queried"),
			"2025-03-16": errors.New("should not be queried"),
		},
	}

	finder := NewFinder(source, DefaultWorkingHours(), DefaultConfig(), nil)
	slots, err := finder.Search(context.Background(), Request{
		Start:        saturday,
		Participants: []string{"a@example.com"},
		Duration:     time.Hour,
	})
	require.NoError(t, err)

	require.Len(t, slots, 3)
	// First query is Monday the 17th.
	assert.Equal(t, []string{"2025-03-17"}, source.queried)
	assert.Equal(t, busyOn(t, "2025-03-17", "09:00", "10:00"), slots[0])
}

func TestSearchAbortsOnBusyDataError(t *testing.T) {
	source := &fakeBusySource{
		busyByDay: map[string][]Interval{
			"2025-03-10": nil, // Monday free: would yield 3 slots on its own
		},
		errByDay: map[string]error{
			"2025-03-11": errors.New("calendar unreadable"),
		},
	}

	// Cap of 5 forces the search past Monday into the failing Tuesday.
	finder := NewFinder(source, DefaultWorkingHours(), Config{HorizonDays: 21, MaxSlots: 5}, nil)
	slots, err := finder.Search(context.Background(), Request{
		Start:        monday,
		Participants: []string{"a@example.com"},
		Duration:     2 * time.Hour,
	})

	require.Error(t, err)
	assert.Empty(t, slots, "earlier days' slots must be discarded on abort")
}

func TestSearchExhaustsHorizon(t *testing.T) {
	// Every working day is fully busy.
	busyByDay := make(map[string][]Interval)
	for off := 0; off < 21; off++ {
		day := monday.AddDate(0, 0, off).Format("2006-01-02")
		busyByDay[day] = []Interval{busyOn(t, day, "09:00", "17:00")}
	}
	source := &fakeBusySource{busyByDay: busyByDay}

	finder := NewFinder(source, DefaultWorkingHours(), DefaultConfig(), nil)
	slots, err := finder.Search(context.Background(), Request{
		Start:        monday,
		Participants: []string{"a@example.com"},
		Duration:     time.Hour,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)

	// 21 days starting on a Monday contain exactly 15 working days.
	assert.Len(t, source.queried, 15)
}

func TestSearchPartialResult(t *testing.T) {
	// One free hour in the whole horizon: a partial result is not an error.
	busyByDay := make(map[string][]Interval)
	for off := 0; off < 21; off++ {
		day := monday.AddDate(0, 0, off).Format("2006-01-02")
		busyByDay[day] = []Interval{busyOn(t, day, "09:00", "17:00")}
	}
	busyByDay["2025-03-12"] = []Interval{
		busyOn(t, "2025-03-12", "09:00", "12:00"),
		busyOn(t, "2025-03-12", "13:00", "17:00"),
	}
	source := &fakeBusySource{busyByDay: busyByDay}

	finder := NewFinder(source, DefaultWorkingHours(), DefaultConfig(), nil)
	slots, err := finder.Search(context.Background(), Request{
		Start:        monday,
		Participants: []string{"a@example.com"},
		Duration:     time.Hour,
	})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, busyOn(t, "2025-03-12", "12:00", "13:00"), slots[0])
}

func TestSearchEmptyWeekdaySet(t *testing.T) {
	source := &fakeBusySource{}
	hours := WorkingHours{Start: Clock{Hour: 9}, End: Clock{Hour: 17}}

	finder := NewFinder(source, hours, DefaultConfig(), nil)
	slots, err := finder.Search(context.Background(), Request{
		Start:        monday,
		Participants: []string{"a@example.com"},
		Duration:     time.Hour,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.Empty(t, source.queried)
}

func TestSearchValidatesRequest(t *testing.T) {
	finder := NewFinder(&fakeBusySource{}, DefaultWorkingHours(), DefaultConfig(), nil)

	_, err := finder.Search(context.Background(), Request{
		Start:    monday,
		Duration: time.Hour,
	})
	assert.Error(t, err, "empty participant list must be rejected")

	_, err = finder.Search(context.Background(), Request{
		Start:        monday,
		Participants: []string{"a@example.com"},
	})
	assert.Error(t, err, "non-positive duration must be rejected")
}

func TestSearchSlotsNeverOverlapBusy(t *testing.T) {
	busy := []Interval{
		busyOn(t, "2025-03-10", "09:30", "10:15"),
		busyOn(t, "2025-03-10", "11:00", "11:30"),
		busyOn(t, "2025-03-10", "14:00", "15:45"),
	}
	source := &fakeBusySource{
		busyByDay: map[string][]Interval{"2025-03-10": busy},
	}

	finder := NewFinder(source, DefaultWorkingHours(), DefaultConfig(), nil)
	slots, err := finder.Search(context.Background(), Request{
		Start:        monday,
		Participants: []string{"a@example.com"},
		Duration:     30 * time.Minute,
	})
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		assert.Equal(t, 30*time.Minute, slot.Duration())
		for _, b := range busy {
			assert.False(t, slot.Overlaps(b), "slot %s overlaps busy %s", slot, b)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 21, cfg.HorizonDays)
	assert.Equal(t, 3, cfg.MaxSlots)
}
