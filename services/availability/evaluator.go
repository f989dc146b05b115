// Package availability decides whether a candidate interval fits a mate's
// declared day-of-week policy and daily time window.
package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"matehub/models"
)

var (
	ErrWrongDay      = errors.New("mate is not available on this day")
	ErrOutsideHours  = errors.New("booking is outside the mate's available hours")
	ErrInvalidPolicy = errors.New("mate availability policy is malformed")
)

// Policy is a mate's declared availability.
type Policy struct {
	Days   models.AvailableDays
	Window []string
}

// PolicyFor extracts the availability policy from a mate profile.
func PolicyFor(m *models.Mate) Policy {
	return Policy{Days: m.AvailableDays, Window: m.AvailableTime}
}

// Evaluate checks [start, end) against p. Both instants must already be in
// the civil timezone the window is expressed in.
func Evaluate(p Policy, start, end time.Time) error {
	if !dayAllowed(p.Days, start.Weekday()) {
		return fmt.Errorf("%w: %s", ErrWrongDay, start.Weekday())
	}

	from, to, declared, err := ParseWindow(p.Window)
	if err != nil {
		return err
	}
	if !declared {
		return nil
	}

	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy != ey || sm != em || sd != ed {
		return fmt.Errorf("%w: booking spans more than one day", ErrOutsideHours)
	}

	lo, hi := time.Duration(from)*time.Minute, time.Duration(to)*time.Minute
	s, e := sinceMidnight(start), sinceMidnight(end)
	if s < lo || s >= hi || e <= lo || e > hi {
		return fmt.Errorf("%w: available %s-%s", ErrOutsideHours, FormatClock(from), FormatClock(to))
	}
	return nil
}

func dayAllowed(days models.AvailableDays, wd time.Weekday) bool {
	weekend := wd == time.Saturday || wd == time.Sunday
	switch days {
	case models.AvailableWeekdays:
		return !weekend
	case models.AvailableWeekends:
		return weekend
	default:
		return true
	}
}

// ParseWindow converts a ["HH:MM","HH:MM"] window into minutes of day.
// declared is false when no window is set.
func ParseWindow(window []string) (from, to int, declared bool, err error) {
	blank := true
	for _, w := range window {
		if strings.TrimSpace(w) != "" {
			blank = false
		}
	}
	if blank {
		return 0, 0, false, nil
	}
	if len(window) != 2 {
		return 0, 0, false, fmt.Errorf("%w: window needs a start and an end", ErrInvalidPolicy)
	}
	if from, err = ParseClock(window[0]); err != nil {
		return 0, 0, false, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if to, err = ParseClock(window[1]); err != nil {
		return 0, 0, false, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if from >= to {
		return 0, 0, false, fmt.Errorf("%w: window start must be before its end", ErrInvalidPolicy)
	}
	return from, to, true, nil
}

// ParseClock parses "HH:MM" (24h) into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// sinceMidnight keeps seconds and below so 17:00:30 falls after a 17:00 window end.
func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}
