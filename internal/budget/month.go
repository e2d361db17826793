// Package budget holds the domain types shared across the ledger engine: the
// calendar month key used by ledger entries and the engine's error taxonomy.
package budget

import (
	"fmt"
	"time"
)

// Month is a calendar month in "2006-01" form. The textual form orders
// lexicographically, so it is used directly as a sortable key in SQL.
type Month string

const monthLayout = "2006-01"

// ParseMonth validates a "2006-01" string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// MonthOf truncates a point in time to its calendar month.
func MonthOf(t time.Time) Month {
	return Month(t.Format(monthLayout))
}

// Time returns the first instant of the month in UTC.
func (m Month) Time() time.Time {
	t, err := time.Parse(monthLayout, string(m))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	return MonthOf(m.Time().AddDate(0, 1, 0))
}

// Prev returns the preceding calendar month.
func (m Month) Prev() Month {
	return MonthOf(m.Time().AddDate(0, -1, 0))
}

func (m Month) Before(other Month) bool { return m < other }

func (m Month) After(other Month) bool { return m > other }

// Compare returns -1, 0 or 1 ordering m against other.
func (m Month) Compare(other Month) int {
	switch {
	case m < other:
		return -1
	case m > other:
		return 1
	default:
		return 0
	}
}

func (m Month) String() string { return string(m) }
