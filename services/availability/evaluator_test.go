package availability

import (
	"testing"
	"time"

	"matehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bangkok = time.FixedZone("ICT", 7*3600)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, bangkok)
}

func TestEvaluate_DayPolicy(t *testing.T) {
	saturday := at(2025, time.March, 15, 10, 0)
	monday := at(2025, time.March, 17, 10, 0)

	tests := []struct {
		name    string
		days    models.AvailableDays
		start   time.Time
		wantErr error
	}{
		{"weekdays rejects saturday", models.AvailableWeekdays, saturday, ErrWrongDay},
		{"weekdays admits monday", models.AvailableWeekdays, monday, nil},
		{"weekends admits saturday", models.AvailableWeekends, saturday, nil},
		{"weekends rejects monday", models.AvailableWeekends, monday, ErrWrongDay},
		{"all admits saturday", models.AvailableAll, saturday, nil},
		{"unset admits monday", "", monday, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Evaluate(Policy{Days: tt.days}, tt.start, tt.start.Add(time.Hour))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEvaluate_Window(t *testing.T) {
	p := Policy{Days: models.AvailableAll, Window: []string{"09:00", "17:00"}}

	tests := []struct {
		name       string
		start, end time.Time
		wantErr    error
	}{
		{"starts before window", at(2025, time.March, 17, 8, 59), at(2025, time.March, 17, 10, 0), ErrOutsideHours},
		{"exact window", at(2025, time.March, 17, 9, 0), at(2025, time.March, 17, 17, 0), nil},
		{"ends after window", at(2025, time.March, 17, 16, 0), at(2025, time.March, 17, 17, 1), ErrOutsideHours},
		{"starts at window end", at(2025, time.March, 17, 17, 0), at(2025, time.March, 17, 18, 0), ErrOutsideHours},
		{"ends seconds after window", at(2025, time.March, 17, 16, 0), at(2025, time.March, 17, 17, 0).Add(30 * time.Second), ErrOutsideHours},
		{"starts seconds before window", at(2025, time.March, 17, 9, 0).Add(-time.Second), at(2025, time.March, 17, 10, 0), ErrOutsideHours},
		{"half minute at window start", at(2025, time.March, 17, 9, 0), at(2025, time.March, 17, 9, 0).Add(30 * time.Second), nil},
		{"crosses midnight", at(2025, time.March, 17, 16, 0), at(2025, time.March, 18, 10, 0), ErrOutsideHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Evaluate(p, tt.start, tt.end)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEvaluate_NoWindowAdmitsAnyHour(t *testing.T) {
	err := Evaluate(Policy{Days: models.AvailableAll}, at(2025, time.March, 17, 2, 0), at(2025, time.March, 17, 4, 0))
	assert.NoError(t, err)
}

func TestEvaluate_MalformedWindow(t *testing.T) {
	start := at(2025, time.March, 17, 10, 0)
	for _, w := range [][]string{{"09:00"}, {"17:00", "09:00"}, {"9am", "17:00"}, {"09:00", "24:00"}} {
		err := Evaluate(Policy{Window: w}, start, start.Add(time.Hour))
		assert.ErrorIs(t, err, ErrInvalidPolicy, "window %v", w)
	}
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)
	assert.Equal(t, "09:30", FormatClock(m))

	_, err = ParseClock("9:30")
	assert.Error(t, err)
	_, err = ParseClock("12:60")
	assert.Error(t, err)
}
