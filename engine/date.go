package engine

import "time"

// =============================================================================
// DATE - Canonical day-granularity date
// =============================================================================

// Date is the single date representation the engine operates on.
// External representations (RFC 3339 strings, database timestamps, raw epoch
// seconds) are normalized into Date at the model boundary; the engine never
// sees anything else. The zero value means "absent".
type Date struct {
	t time.Time
}

// NewDate constructs a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf normalizes an arbitrary time.Time to day granularity in UTC.
// A zero time stays zero (absent).
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

// DateOfUnix normalizes raw epoch seconds. Zero and negative-zero inputs are
// treated as absent, matching legacy records that stored 0 for "no date".
func DateOfUnix(sec int64) Date {
	if sec == 0 {
		return Date{}
	}
	return DateOf(time.Unix(sec, 0))
}

// ParseDate parses a "YYYY-MM-DD" token. An empty token is absent, not an error.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, &DateFormatError{Input: s}
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) IsZero() bool      { return d.t.IsZero() }
func (d Date) Time() time.Time   { return d.t }

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format("2006-01-02")
}

// =============================================================================
// DATE RANGE - Closed interval [Start, End]
// =============================================================================

// DateRange is a closed date interval. An End before Start is a valid,
// empty range (nothing is contained), not an error.
type DateRange struct {
	Start Date
	End   Date
}

// IsEmpty reports whether the range contains no days.
func (r DateRange) IsEmpty() bool {
	return r.End.Before(r.Start)
}

// Contains reports whether d falls within [Start, End].
func (r DateRange) Contains(d Date) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// Overlaps reports whether two closed intervals intersect.
func (r DateRange) Overlaps(other DateRange) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.Start.BeforeOrEqual(other.End) && r.End.AfterOrEqual(other.Start)
}

func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}
