package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input    string
		expected Clock
		wantErr  bool
	}{
		{input: "09:00", expected: Clock{Hour: 9}},
		{input: "17:30", expected: Clock{Hour: 17, Minute: 30}},
		{input: "00:00", expected: Clock{}},
		{input: "23:59", expected: Clock{Hour: 23, Minute: 59}},
		{input: "9am", wantErr: true},
		{input: "25:00", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestClockOn(t *testing.T) {
	day := time.Date(2025, time.March, 10, 14, 37, 12, 0, time.UTC)
	got := Clock{Hour: 9, Minute: 30}.On(day)
	assert.Equal(t, time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC), got)
}

func TestDefaultWorkingHours(t *testing.T) {
	w := DefaultWorkingHours()
	require.NoError(t, w.Validate())

	assert.Equal(t, Clock{Hour: 9}, w.Start)
	assert.Equal(t, Clock{Hour: 17}, w.End)
	for _, d := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		assert.True(t, w.WorksOn(d), "%s should be a working day", d)
	}
	assert.False(t, w.WorksOn(time.Saturday))
	assert.False(t, w.WorksOn(time.Sunday))
}

func TestWorkingHoursValidate(t *testing.T) {
	w := WorkingHours{Start: Clock{Hour: 17}, End: Clock{Hour: 9}}
	assert.Error(t, w.Validate())

	w = WorkingHours{Start: Clock{Hour: 9}, End: Clock{Hour: 9}}
	assert.Error(t, w.Validate())

	// An empty weekday set is valid; it yields zero candidate days.
	w = WorkingHours{Start: Clock{Hour: 9}, End: Clock{Hour: 17}}
	assert.NoError(t, w.Validate())
}

func TestWorkingHoursWindow(t *testing.T) {
	w := DefaultWorkingHours()
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	window := w.Window(day)
	assert.Equal(t, time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2025, time.March, 10, 17, 0, 0, 0, time.UTC), window.End)
	assert.Equal(t, 8*time.Hour, window.Duration())
}

func TestWorkingHoursString(t *testing.T) {
	assert.Equal(t, "09:00-17:00 Monday,Tuesday,Wednesday,Thursday,Friday", DefaultWorkingHours().String())
}
