package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/keystone/rent-engine/engine"
)

func payment(id, leaseID, period string, amount float64, typ engine.PaymentType) engine.RentPayment {
	p := engine.MustParseRentalPeriod(period)
	arrears := p.Next()
	return engine.RentPayment{
		ID:             engine.PaymentID(id),
		LeaseID:        engine.LeaseID(leaseID),
		Period:         p,
		PaymentDate:    engine.NewDate(arrears.Year, arrears.Month, 5),
		ActualRentPaid: decimal.NewFromFloat(amount),
		Type:           typ,
	}
}

func TestPaymentsForPeriod(t *testing.T) {
	payments := []engine.RentPayment{
		payment("p1", "l1", "2025-04", 1000, engine.PaymentTypeRent),
		payment("p2", "l1", "2025-04", 250, engine.PaymentTypeRent), // partial, same period
		payment("p3", "l1", "2025-05", 1000, engine.PaymentTypeRent),
		payment("p4", "l2", "2025-04", 900, engine.PaymentTypeRent),
		payment("p5", "l3", "2025-04", 800, engine.PaymentTypeRent), // outside cohort
		payment("p6", "l1", "2025-04", 5000, engine.PaymentTypeBill),
		payment("p7", "l1", "2025-04", 100, engine.PaymentTypeFee),
		payment("p8", "l2", "2025-04", 150, ""), // legacy type counts as rent
	}

	cohort := engine.NewLeaseSet("l1", "l2")
	got := paymentIDs(engine.PaymentsForPeriod(payments, cohort, engine.MustParseRentalPeriod("2025-04")))

	assert.ElementsMatch(t, []engine.PaymentID{"p1", "p2", "p4", "p8"}, got)
}

func paymentIDs(payments []engine.RentPayment) []engine.PaymentID {
	ids := make([]engine.PaymentID, len(payments))
	for i, p := range payments {
		ids[i] = p.ID
	}
	return ids
}

func TestPaymentsForPeriod_EmptyCohort(t *testing.T) {
	payments := []engine.RentPayment{payment("p1", "l1", "2025-04", 1000, engine.PaymentTypeRent)}
	assert.Empty(t, engine.PaymentsForPeriod(payments, engine.NewLeaseSet(), engine.MustParseRentalPeriod("2025-04")))
}

func TestCountsAsRent(t *testing.T) {
	assert.True(t, engine.RentPayment{Type: engine.PaymentTypeRent}.CountsAsRent())
	assert.True(t, engine.RentPayment{Type: ""}.CountsAsRent())
	assert.False(t, engine.RentPayment{Type: engine.PaymentTypeBill}.CountsAsRent())
	assert.False(t, engine.RentPayment{Type: engine.PaymentTypeFee}.CountsAsRent())
}

func TestYTDRentCollected(t *testing.T) {
	// GIVEN: payments across the April 2025 fiscal boundary plus a bill
	// WHEN: asking for YTD as of July 2025
	// THEN: only rent payments DATED within [2025-04-01, 2025-07-31] count
	payments := []engine.RentPayment{
		// Dated 2025-04-05 (for March rent): inside the window by payment date.
		payment("p1", "l1", "2025-03", 1000, engine.PaymentTypeRent),
		payment("p2", "l1", "2025-04", 1000, engine.PaymentTypeRent), // dated 2025-05-05
		payment("p3", "l1", "2025-06", 1000, engine.PaymentTypeRent), // dated 2025-07-05
		// Dated 2025-03-05: before the fiscal year start.
		payment("p4", "l1", "2025-02", 1000, engine.PaymentTypeRent),
		// Dated 2025-08-05: after the target month end.
		payment("p5", "l1", "2025-07", 1000, engine.PaymentTypeRent),
		// Non-rent type inside the window must be excluded.
		payment("p6", "l1", "2025-04", 5000, engine.PaymentTypeBill),
		// Legacy empty type inside the window counts.
		payment("p7", "l1", "2025-05", 500, ""),
		// Outside the cohort.
		payment("p8", "l9", "2025-04", 1000, engine.PaymentTypeRent),
	}

	got := engine.YTDRentCollected(payments, engine.NewLeaseSet("l1"), engine.MustParseRentalPeriod("2025-07"), engine.DefaultFiscalYearStart)
	assert.True(t, got.Equal(decimal.NewFromInt(3500)), "got %s", got)
}

func TestYTDRentCollected_PriorFiscalYearResolution(t *testing.T) {
	// A February target resolves to the fiscal year that started the
	// previous April; a payment dated in May of that year is included.
	payments := []engine.RentPayment{
		payment("p1", "l1", "2024-04", 1200, engine.PaymentTypeRent), // dated 2024-05-05
	}
	got := engine.YTDRentCollected(payments, engine.NewLeaseSet("l1"), engine.MustParseRentalPeriod("2025-02"), engine.DefaultFiscalYearStart)
	assert.True(t, got.Equal(decimal.NewFromInt(1200)), "got %s", got)
}

func TestYTDRentCollected_EmptyWindowIsZero(t *testing.T) {
	payments := []engine.RentPayment{payment("p1", "l1", "2025-04", 1000, engine.PaymentTypeRent)}
	got := engine.YTDRentCollected(payments, engine.NewLeaseSet("l1"), engine.MustParseRentalPeriod("2025-07"), time.December)
	// December anchor: window is [2024-12-01, 2025-07-31], not empty, payment dated 2025-05 counts.
	assert.True(t, got.Equal(decimal.NewFromInt(1000)), "got %s", got)

	// No payments at all.
	assert.True(t, engine.YTDRentCollected(nil, engine.NewLeaseSet("l1"), engine.MustParseRentalPeriod("2025-07"), engine.DefaultFiscalYearStart).IsZero())
}

func TestRentCollectedInMonth(t *testing.T) {
	payments := []engine.RentPayment{
		payment("p1", "l1", "2025-04", 1000, engine.PaymentTypeRent), // dated 2025-05-05
		payment("p2", "l1", "2025-05", 700, engine.PaymentTypeRent),  // dated 2025-06-05
		payment("p3", "l1", "2025-04", 5000, engine.PaymentTypeBill), // dated 2025-05-05, excluded
	}
	got := engine.RentCollectedInMonth(payments, engine.NewLeaseSet("l1"), engine.MustParseRentalPeriod("2025-05"))
	assert.True(t, got.Equal(decimal.NewFromInt(1000)), "got %s", got)
}
