package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// RENTAL PERIOD - The core concept for delinquency calculation
// =============================================================================

// RentalPeriod identifies the calendar month a sum of money pays rent FOR,
// expressed on the wire as "YYYY-MM". Under the arrears convention, payments
// for period M are recorded in calendar month M+1.
type RentalPeriod struct {
	Year  int
	Month time.Month
}

// ParseRentalPeriod parses a "YYYY-MM" token. It fails with a
// PeriodFormatError (wrapping ErrInvalidPeriod) on a malformed token or a
// month outside 1-12. Tokens are never silently defaulted. Only canonical
// digits count: signs, spaces, and other strconv leniencies are rejected.
func ParseRentalPeriod(s string) (RentalPeriod, error) {
	if len(s) != 7 || s[4] != '-' {
		return RentalPeriod{}, &PeriodFormatError{Input: s, Reason: "want YYYY-MM"}
	}
	year, ok := parseDigits(s[:4])
	if !ok || year == 0 {
		return RentalPeriod{}, &PeriodFormatError{Input: s, Reason: "bad year"}
	}
	month, ok := parseDigits(s[5:])
	if !ok || month < 1 || month > 12 {
		return RentalPeriod{}, &PeriodFormatError{Input: s, Reason: "month outside 1-12"}
	}
	return RentalPeriod{Year: year, Month: time.Month(month)}, nil
}

// parseDigits parses a run of ASCII digits, rejecting everything else.
func parseDigits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// MustParseRentalPeriod is ParseRentalPeriod for compile-time constants.
// It panics on malformed input; use only with literals.
func MustParseRentalPeriod(s string) RentalPeriod {
	p, err := ParseRentalPeriod(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PeriodOf returns the rental period containing the given date.
func PeriodOf(d Date) RentalPeriod {
	return RentalPeriod{Year: d.Year(), Month: d.Month()}
}

func (p RentalPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

func (p RentalPeriod) IsZero() bool { return p.Year == 0 && p.Month == 0 }

// Prev returns the month immediately preceding p, rolling the year back
// from January to December of the prior year. For a target month this is
// the newest rental period whose payment is already due.
func (p RentalPeriod) Prev() RentalPeriod {
	if p.Month == time.January {
		return RentalPeriod{Year: p.Year - 1, Month: time.December}
	}
	return RentalPeriod{Year: p.Year, Month: p.Month - 1}
}

// Next returns the month immediately following p. Under the arrears
// convention this is the month a payment for p is expected to be recorded in.
func (p RentalPeriod) Next() RentalPeriod {
	if p.Month == time.December {
		return RentalPeriod{Year: p.Year + 1, Month: time.January}
	}
	return RentalPeriod{Year: p.Year, Month: p.Month + 1}
}

// Start returns the first day of the period.
func (p RentalPeriod) Start() Date {
	return NewDate(p.Year, p.Month, 1)
}

// End returns the last day of the period.
func (p RentalPeriod) End() Date {
	return p.Next().Start().AddDays(-1)
}

// Range returns the period as a closed date interval.
func (p RentalPeriod) Range() DateRange {
	return DateRange{Start: p.Start(), End: p.End()}
}

// Contains reports whether d falls within the period.
func (p RentalPeriod) Contains(d Date) bool {
	return p.Range().Contains(d)
}

// Comparison
func (p RentalPeriod) Before(other RentalPeriod) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

func (p RentalPeriod) After(other RentalPeriod) bool     { return other.Before(p) }
func (p RentalPeriod) Equal(other RentalPeriod) bool     { return p == other }
func (p RentalPeriod) BeforeOrEqual(o RentalPeriod) bool { return !p.After(o) }
func (p RentalPeriod) AfterOrEqual(o RentalPeriod) bool  { return !p.Before(o) }

// Later returns the later of two periods.
func Later(a, b RentalPeriod) RentalPeriod {
	if a.After(b) {
		return a
	}
	return b
}

// =============================================================================
// FISCAL YEAR WINDOW
// =============================================================================

// DefaultFiscalYearStart is the month the fiscal year begins on (April 1).
const DefaultFiscalYearStart = time.April

// FiscalWindow returns the fiscal year-to-date window for a target month:
// from the fiscal-year anchor (day 1 of anchorMonth) through the last day of
// the target month. A target month earlier in the calendar year than the
// anchor resolves to the anchor of the PREVIOUS calendar year.
//
// The returned range can be empty (end before start) for edge months before
// the tracked fiscal year begins; callers treat an empty window as "zero
// collected", never as an error.
func FiscalWindow(target RentalPeriod, anchorMonth time.Month) DateRange {
	year := target.Year
	if target.Month < anchorMonth {
		year--
	}
	return DateRange{
		Start: NewDate(year, anchorMonth, 1),
		End:   target.End(),
	}
}
