package util

import (
	"fmt"
	"time"
)

// Month identifies a calendar month as year*12 + (month-1), so that
// consecutive months differ by exactly one and comparison operators
// order chronologically.
type Month int

// NewMonth builds a Month from a year and a calendar month.
func NewMonth(year int, month time.Month) Month {
	return Month(year*12 + int(month) - 1)
}

// MonthOf truncates a time to its calendar month.
func MonthOf(t time.Time) Month {
	return NewMonth(t.Year(), t.Month())
}

// ParseMonth parses "2006-01" or a full date "2006-01-02" (the day is
// discarded). Returns an error for anything else.
func ParseMonth(s string) (Month, error) {
	if t, err := time.Parse("2006-01", s); err == nil {
		return MonthOf(t), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return MonthOf(t), nil
	}
	return 0, fmt.Errorf("invalid month %q: want YYYY-MM or YYYY-MM-DD", s)
}

// Year returns the calendar year.
func (m Month) Year() int {
	if m < 0 {
		return int(m-11) / 12
	}
	return int(m) / 12
}

// MonthOfYear returns the calendar month (January = 1).
func (m Month) MonthOfYear() time.Month {
	mm := int(m) % 12
	if mm < 0 {
		mm += 12
	}
	return time.Month(mm + 1)
}

// Add returns the month k months later (k may be negative).
func (m Month) Add(k int) Month {
	return m + Month(k)
}

// Before reports whether m is strictly earlier than o.
func (m Month) Before(o Month) bool { return m < o }

// After reports whether m is strictly later than o.
func (m Month) After(o Month) bool { return m > o }

// Time returns the first day of the month in UTC.
func (m Month) Time() time.Time {
	return time.Date(m.Year(), m.MonthOfYear(), 1, 0, 0, 0, 0, time.UTC)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year(), int(m.MonthOfYear()))
}

// MarshalJSON encodes the month as "YYYY-MM".
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON decodes "YYYY-MM" or "YYYY-MM-DD".
func (m *Month) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid month json %s", b)
	}
	parsed, err := ParseMonth(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
