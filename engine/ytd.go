package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// FISCAL YEAR-TO-DATE COLLECTION
// =============================================================================

// YTDRentCollected sums actual rent collected for a lease cohort from the
// start of the fiscal year containing the target month through the end of
// that month.
//
// Payments are selected by PAYMENT DATE, not by rental period: a payment
// recorded in April for March's rent counts toward the fiscal year
// containing April. Only rent-or-legacy payment types are summed.
//
// An empty fiscal window yields zero.
func YTDRentCollected(payments []RentPayment, cohort LeaseSet, target RentalPeriod, anchorMonth time.Month) decimal.Decimal {
	window := FiscalWindow(target, anchorMonth)
	if window.IsEmpty() {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, p := range payments {
		if !cohort.Contains(p.LeaseID) {
			continue
		}
		if !p.CountsAsRent() {
			continue
		}
		if !window.Contains(p.PaymentDate) {
			continue
		}
		total = total.Add(p.ActualRentPaid)
	}
	return total
}

// RentCollectedInMonth sums rent-or-legacy payments recorded during a single
// calendar month, regardless of which rental period they satisfy. Used by
// the monthly summary report.
func RentCollectedInMonth(payments []RentPayment, cohort LeaseSet, month RentalPeriod) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if !cohort.Contains(p.LeaseID) {
			continue
		}
		if !p.CountsAsRent() {
			continue
		}
		if !month.Contains(p.PaymentDate) {
			continue
		}
		total = total.Add(p.ActualRentPaid)
	}
	return total
}
