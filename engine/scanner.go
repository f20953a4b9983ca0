/*
scanner.go - Multi-month delinquency scan

PURPOSE:
  For each lease, walks every rental period from an effective start through
  the latest computable period and accumulates the periods whose collected
  rent fell short of the obligation.

ALGORITHM (per lease, independent of all other leases):
  1. latest  = target.Prev()   - payments for the target month itself are
               not due until the following month
  2. start   = Later(lease start period, configured historical floor)
  3. Walk month by month from start to latest, stopping early once the
     period begins after the lease's end date
  4. A period is skipped when the lease was not active during it; otherwise
     payments are matched by exact rental period AND a payment date inside
     the expected arrears month, summed, and compared against RentAmount
  5. amountDue greater than the tolerance marks the period delinquent

KNOWN LIMITATION:
  A late payment dated outside the expected arrears month does not satisfy
  its rental period here; the period is reported delinquent even though
  money was eventually collected. Matching strictly by rental-period token
  would change reported totals, so the stricter double constraint is kept.

The scan is pure and stateless: no I/O, no retained state between calls,
identical inputs produce identical output. Per-lease work reads only shared
immutable inputs, so callers may parallelize across leases if they choose.
*/
package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SCAN CONFIGURATION
// =============================================================================

// ScanConfig carries the deployment-specific knobs of the delinquency scan.
type ScanConfig struct {
	// MinTrackedPeriod is the historical floor: reliable payment records
	// only exist from a certain go-live point, so periods before it are
	// never evaluated even if the lease was active.
	MinTrackedPeriod RentalPeriod

	// Tolerance absorbs floating-point noise from legacy records. A period
	// is delinquent only when the shortfall exceeds it.
	Tolerance decimal.Decimal
}

// DefaultScanConfig returns the stock configuration: tracking from
// January 2024 with a 0.01 tolerance.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		MinTrackedPeriod: RentalPeriod{Year: 2024, Month: 1},
		Tolerance:        decimal.RequireFromString("0.01"),
	}
}

// =============================================================================
// DELINQUENCY SCANNER
// =============================================================================

// ScanDelinquencies computes the per-lease delinquency rollup for all given
// leases as of the target month. Leases with no delinquent period are
// omitted; the result holds at most one entry per lease, ordered by the
// input lease order. Unit numbers are resolved from inventory, falling back
// to UnitNumberUnavailable.
func ScanDelinquencies(leases []Lease, inventory []RentalUnit, payments []RentPayment, target RentalPeriod, cfg ScanConfig) []DelinquentUnit {
	unitNumbers := make(map[UnitID]string, len(inventory))
	for _, u := range inventory {
		unitNumbers[u.ID] = u.UnitNumber
	}

	var result []DelinquentUnit
	seen := make(map[LeaseID]struct{}, len(leases))

	for _, lease := range leases {
		// Defensive: the contract guarantees at most one entry per lease.
		if _, dup := seen[lease.ID]; dup {
			continue
		}
		seen[lease.ID] = struct{}{}

		delinquent := scanLease(lease, payments, target, cfg)
		if len(delinquent) == 0 {
			continue
		}

		sort.Slice(delinquent, func(i, j int) bool {
			return delinquent[i].Period.Before(delinquent[j].Period)
		})

		total := decimal.Zero
		for _, d := range delinquent {
			total = total.Add(d.AmountDue)
		}

		unitNumber, ok := unitNumbers[lease.UnitID]
		if !ok {
			unitNumber = UnitNumberUnavailable
		}

		result = append(result, DelinquentUnit{
			UnitID:           lease.UnitID,
			UnitNumber:       unitNumber,
			TenantName:       lease.TenantName,
			LeaseID:          lease.ID,
			RentAmount:       lease.RentAmount,
			Periods:          delinquent,
			TotalOverdue:     total,
			MonthsDelinquent: len(delinquent),
			LeaseEndDate:     lease.EndDate,
		})
	}

	return result
}

// scanLease walks the lease's rental periods and returns its delinquent
// ones, unsorted. A lease with an absent start or end date is never-active
// and yields nothing.
func scanLease(lease Lease, payments []RentPayment, target RentalPeriod, cfg ScanConfig) []DelinquentPeriod {
	if lease.StartDate.IsZero() || lease.EndDate.IsZero() {
		return nil
	}

	latest := target.Prev()
	start := Later(PeriodOf(lease.StartDate), cfg.MinTrackedPeriod)
	cohort := NewLeaseSet(lease.ID)

	var delinquent []DelinquentPeriod
	for period := start; period.BeforeOrEqual(latest); period = period.Next() {
		if period.Start().After(lease.EndDate) {
			break
		}
		if !lease.ActiveDuring(period) {
			continue
		}

		// Only payments recorded in the expected arrears month count;
		// see the package comment for the late-payment limitation.
		arrearsMonth := period.Next()
		paid := decimal.Zero
		for _, p := range PaymentsForPeriod(payments, cohort, period) {
			if !arrearsMonth.Contains(p.PaymentDate) {
				continue
			}
			paid = paid.Add(p.ActualRentPaid)
		}

		due := lease.RentAmount.Sub(paid)
		if due.GreaterThan(cfg.Tolerance) {
			delinquent = append(delinquent, DelinquentPeriod{Period: period, AmountDue: due})
		}
	}
	return delinquent
}
