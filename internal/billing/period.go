package billing

import (
	"fmt"
	"time"
)

// PeriodLayout is the time layout of a period label, e.g. "October 2025".
const PeriodLayout = "January 2006"

// Period labels one calendar month of membership records.
type Period string

// PeriodOf returns the label of the month containing t, evaluated in t's location.
func PeriodOf(t time.Time) Period {
	return Period(t.Format(PeriodLayout))
}

// ParsePeriod validates s as a period label.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(PeriodLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid period %q: want a label like %q", s, PeriodLayout)
	}
	// Reject loose forms that time.Parse tolerates, such as "October 02025".
	if t.Format(PeriodLayout) != s {
		return "", fmt.Errorf("invalid period %q: want a label like %q", s, PeriodLayout)
	}
	return Period(s), nil
}

func (p Period) String() string {
	return string(p)
}

// Start returns the first instant of the period in loc.
func (p Period) Start(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(PeriodLayout, string(p), loc)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Clock yields the current instant in a fixed location.
// The zero value uses time.Now in UTC.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// NewClock returns a wall clock for the named IANA zone.
func NewClock(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Clock{}, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return Clock{Now: time.Now, Location: loc}, nil
}

// FixedClock always reports t. Used by tests and tooling.
func FixedClock(t time.Time) Clock {
	return Clock{Now: func() time.Time { return t }, Location: t.Location()}
}

// Time returns the current instant in the clock's location.
func (c Clock) Time() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

// Current returns the current instant and the period it falls in, taken together
// so callers thread a single consistent pair through an operation.
func (c Clock) Current() (time.Time, Period) {
	now := c.Time()
	return now, PeriodOf(now)
}
