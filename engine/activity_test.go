package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/keystone/rent-engine/engine"
)

func testLease(start, end engine.Date) engine.Lease {
	return engine.Lease{
		ID:         "lease-1",
		UnitID:     "unit-1",
		TenantName: "Test Tenant",
		StartDate:  start,
		EndDate:    end,
		RentAmount: decimal.NewFromInt(1000),
	}
}

func TestActiveDuring_Overlap(t *testing.T) {
	june := engine.MustParseRentalPeriod("2025-06")

	cases := []struct {
		name  string
		lease engine.Lease
		want  bool
	}{
		{
			name:  "lease covers whole period",
			lease: testLease(engine.NewDate(2025, time.January, 1), engine.NewDate(2025, time.December, 31)),
			want:  true,
		},
		{
			name:  "lease starts mid-period",
			lease: testLease(engine.NewDate(2025, time.June, 15), engine.NewDate(2026, time.June, 14)),
			want:  true,
		},
		{
			name:  "lease ends mid-period",
			lease: testLease(engine.NewDate(2024, time.July, 1), engine.NewDate(2025, time.June, 10)),
			want:  true,
		},
		{
			name:  "lease entirely before period",
			lease: testLease(engine.NewDate(2024, time.January, 1), engine.NewDate(2025, time.May, 31)),
			want:  false,
		},
		{
			name:  "lease entirely after period",
			lease: testLease(engine.NewDate(2025, time.July, 1), engine.NewDate(2026, time.June, 30)),
			want:  false,
		},
		{
			name:  "single-day overlap on period end",
			lease: testLease(engine.NewDate(2025, time.June, 30), engine.NewDate(2026, time.June, 30)),
			want:  true,
		},
		{
			name:  "missing start date",
			lease: testLease(engine.Date{}, engine.NewDate(2025, time.December, 31)),
			want:  false,
		},
		{
			name:  "missing end date",
			lease: testLease(engine.NewDate(2025, time.January, 1), engine.Date{}),
			want:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.lease.ActiveDuring(june))
		})
	}
}

func TestActiveDuring_TrueIffIntervalsNotDisjoint(t *testing.T) {
	// Overlap symmetry: the predicate must agree with a raw interval
	// intersection test in both directions.
	period := engine.MustParseRentalPeriod("2025-06")
	lease := testLease(engine.NewDate(2025, time.June, 5), engine.NewDate(2025, time.June, 20))

	leaseRange := engine.DateRange{Start: lease.StartDate, End: lease.EndDate}
	assert.Equal(t, leaseRange.Overlaps(period.Range()), lease.ActiveDuring(period))
	assert.Equal(t, period.Range().Overlaps(leaseRange), lease.ActiveDuring(period))
}

func TestActiveAtMonthEnd(t *testing.T) {
	june := engine.MustParseRentalPeriod("2025-06")

	// Active across June 30.
	assert.True(t, testLease(engine.NewDate(2025, time.January, 1), engine.NewDate(2025, time.December, 31)).ActiveAtMonthEnd(june))

	// Ends June 30 exactly: still occupied at month end.
	assert.True(t, testLease(engine.NewDate(2025, time.January, 1), engine.NewDate(2025, time.June, 30)).ActiveAtMonthEnd(june))

	// Ends mid-June: overlaps the period but vacant at month end.
	midJune := testLease(engine.NewDate(2025, time.January, 1), engine.NewDate(2025, time.June, 15))
	assert.False(t, midJune.ActiveAtMonthEnd(june))
	assert.True(t, midJune.ActiveDuring(june))

	// Starts after June.
	assert.False(t, testLease(engine.NewDate(2025, time.July, 1), engine.NewDate(2026, time.June, 30)).ActiveAtMonthEnd(june))

	// Absent dates.
	assert.False(t, testLease(engine.Date{}, engine.Date{}).ActiveAtMonthEnd(june))
}
