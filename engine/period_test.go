package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone/rent-engine/engine"
)

func TestParseRentalPeriod_Valid(t *testing.T) {
	cases := map[string]engine.RentalPeriod{
		"2025-01": {Year: 2025, Month: time.January},
		"2025-12": {Year: 2025, Month: time.December},
		"1999-06": {Year: 1999, Month: time.June},
	}
	for token, want := range cases {
		got, err := engine.ParseRentalPeriod(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got)
		assert.Equal(t, token, got.String())
	}
}

func TestParseRentalPeriod_Malformed(t *testing.T) {
	bad := []string{
		"", "2025", "2025-13", "2025-00", "25-01", "2025-1", "2025-jan", "2025/01", "2025-01-02",
		// Signed or padded numbers round-trip to a different token and
		// must be rejected, not normalized.
		"+125-01", "-125-01", " 025-01", "2025-+1", "2025- 1", "0000-05",
	}
	for _, token := range bad {
		_, err := engine.ParseRentalPeriod(token)
		require.Error(t, err, token)
		assert.ErrorIs(t, err, engine.ErrInvalidPeriod, token)
		assert.True(t, engine.IsClientError(err))
	}
}

func TestRentalPeriod_PrevRollsBackYear(t *testing.T) {
	jan := engine.MustParseRentalPeriod("2025-01")
	assert.Equal(t, engine.MustParseRentalPeriod("2024-12"), jan.Prev())
}

func TestRentalPeriod_PrevNextRoundTrip(t *testing.T) {
	// For any valid month M, Prev followed by Next equals M.
	p := engine.MustParseRentalPeriod("2023-01")
	for i := 0; i < 36; i++ {
		assert.Equal(t, p, p.Prev().Next(), p.String())
		p = p.Next()
	}
}

func TestRentalPeriod_Bounds(t *testing.T) {
	feb := engine.MustParseRentalPeriod("2024-02")
	assert.Equal(t, engine.NewDate(2024, time.February, 1), feb.Start())
	assert.Equal(t, engine.NewDate(2024, time.February, 29), feb.End()) // leap year

	dec := engine.MustParseRentalPeriod("2025-12")
	assert.Equal(t, engine.NewDate(2025, time.December, 31), dec.End())
}

func TestFiscalWindow_SameCalendarYear(t *testing.T) {
	window := engine.FiscalWindow(engine.MustParseRentalPeriod("2025-05"), engine.DefaultFiscalYearStart)
	assert.Equal(t, engine.NewDate(2025, time.April, 1), window.Start)
	assert.Equal(t, engine.NewDate(2025, time.May, 31), window.End)
	assert.False(t, window.IsEmpty())
}

func TestFiscalWindow_CrossesCalendarYearBoundary(t *testing.T) {
	window := engine.FiscalWindow(engine.MustParseRentalPeriod("2025-02"), engine.DefaultFiscalYearStart)
	assert.Equal(t, engine.NewDate(2024, time.April, 1), window.Start)
	assert.Equal(t, engine.NewDate(2025, time.February, 28), window.End)
}

func TestFiscalWindow_AnchorMonthItself(t *testing.T) {
	window := engine.FiscalWindow(engine.MustParseRentalPeriod("2025-04"), engine.DefaultFiscalYearStart)
	assert.Equal(t, engine.NewDate(2025, time.April, 1), window.Start)
	assert.Equal(t, engine.NewDate(2025, time.April, 30), window.End)
}

func TestDateRange_EmptyWindowContainsNothing(t *testing.T) {
	empty := engine.DateRange{
		Start: engine.NewDate(2025, time.April, 1),
		End:   engine.NewDate(2025, time.March, 31),
	}
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.Contains(engine.NewDate(2025, time.April, 1)))
	assert.False(t, empty.Overlaps(engine.DateRange{
		Start: engine.NewDate(2024, time.January, 1),
		End:   engine.NewDate(2026, time.January, 1),
	}))
}

func TestParseDate(t *testing.T) {
	d, err := engine.ParseDate("2025-04-01")
	require.NoError(t, err)
	assert.Equal(t, engine.NewDate(2025, time.April, 1), d)

	// Empty token means absent, not an error.
	d, err = engine.ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = engine.ParseDate("01/04/2025")
	assert.ErrorIs(t, err, engine.ErrInvalidDate)
}

func TestDateOfUnix_ZeroIsAbsent(t *testing.T) {
	assert.True(t, engine.DateOfUnix(0).IsZero())
	assert.Equal(t, engine.NewDate(2025, time.July, 1), engine.DateOfUnix(time.Date(2025, time.July, 1, 13, 30, 0, 0, time.UTC).Unix()))
}
