package wage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CLOCK - Wall-clock time of day (minute granularity)
// =============================================================================

// Clock is a time of day stored as minutes since midnight.
type Clock int

const minutesPerDay = 24 * 60

var sixty = decimal.NewFromInt(60)

// NewClock builds a Clock from hour and minute.
func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrInvalidClock, hour, minute)
	}
	return Clock(hour*60 + minute), nil
}

// MustClock is NewClock for literals in tests and scenarios.
func MustClock(hour, minute int) Clock {
	c, err := NewClock(hour, minute)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseClock parses "HH:MM" (00:00 through 23:59).
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return NewClock(hour, minute)
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// =============================================================================
// ELAPSED WORK HOURS
// =============================================================================

// ElapsedWorkHours returns the paid hours between start and end minus the break.
// An end at or before start is read as a shift that crosses midnight.
// The result is floored at zero.
func ElapsedWorkHours(start, end Clock, breakMinutes int) decimal.Decimal {
	span := int(end) - int(start)
	if span <= 0 {
		span += minutesPerDay
	}
	worked := span - breakMinutes
	if worked < 0 {
		worked = 0
	}
	return decimal.NewFromInt(int64(worked)).Div(sixty)
}

// ElapsedWorkHoursString parses both clock values before calling ElapsedWorkHours.
func ElapsedWorkHoursString(start, end string, breakMinutes int) (decimal.Decimal, error) {
	s, err := ParseClock(start)
	if err != nil {
		return decimal.Zero, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return decimal.Zero, err
	}
	if breakMinutes < 0 {
		return decimal.Zero, invalid("break_minutes", "must not be negative")
	}
	return ElapsedWorkHours(s, e, breakMinutes), nil
}
