/*
Package engine computes rental-period delinquency and fiscal year-to-date
collection aggregates from already-loaded lease and payment records.

KEY CONCEPTS:
  - RentalPeriod: the calendar month money pays rent FOR ("YYYY-MM")
  - Arrears convention: payments for period M are recorded in month M+1
  - Fiscal year: a 12-month window anchored on April 1 (configurable)
  - Delinquent period: an active period whose collected rent fell short of
    the lease's rent amount by more than a small tolerance

DESIGN PRINCIPLES:
  1. Purity: every function is a stateless computation over in-memory
     snapshots; identical inputs yield identical outputs.
  2. Precision: uses decimal.Decimal for money, with an explicit tolerance
     to absorb noise from legacy float-sourced records.
  3. One canonical date type: external representations are normalized into
     Date before any engine function runs.

The engine performs no I/O. Persistence, rendering, and delivery are
collaborators that call into it with materialized snapshots.
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// IDENTIFIERS
// =============================================================================

type LeaseID string
type UnitID string
type PaymentID string

// LeaseSet is a cohort of leases used to scope payment filters.
type LeaseSet map[LeaseID]struct{}

// NewLeaseSet builds a cohort from lease IDs.
func NewLeaseSet(ids ...LeaseID) LeaseSet {
	s := make(LeaseSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports cohort membership.
func (s LeaseSet) Contains(id LeaseID) bool {
	_, ok := s[id]
	return ok
}

// =============================================================================
// LEASE - Read-only input record
// =============================================================================

// Lease is a tenancy agreement for a rental unit. The engine only reads
// leases; creation and edits happen elsewhere.
type Lease struct {
	ID         LeaseID
	UnitID     UnitID
	TenantName string

	// StartDate and EndDate define the activity window. Either may be
	// absent (zero), in which case the lease is treated as never-active
	// for period-level reasoning.
	StartDate Date
	EndDate   Date

	// RentAmount is the periodic rent obligation. Non-negative.
	RentAmount decimal.Decimal

	// Active is a display flag maintained by the application. Historical
	// activity reasoning uses the date window, not this flag.
	Active bool
}

// =============================================================================
// RENT PAYMENT - Read-only input record
// =============================================================================

// PaymentType classifies what a payment is for. Only rent payments count
// toward rent-due calculations.
type PaymentType string

const (
	PaymentTypeRent PaymentType = "Rent Payment"
	PaymentTypeBill PaymentType = "Bill Payment"
	PaymentTypeFee  PaymentType = "Fee Payment"
)

// RentPayment records money collected against a lease.
type RentPayment struct {
	ID      PaymentID
	LeaseID LeaseID

	// Period is the rental period this payment satisfies, NOT the month
	// the payment was made.
	Period RentalPeriod

	// PaymentDate is when the payment was recorded. By the arrears
	// convention it falls in the month after Period.
	PaymentDate Date

	// ActualRentPaid is the amount actually collected. Non-negative.
	ActualRentPaid decimal.Decimal

	Type PaymentType
}

// CountsAsRent reports whether the payment counts toward rent-due
// calculations. Legacy records carry an empty type and are treated as rent.
func (p RentPayment) CountsAsRent() bool {
	return p.Type == PaymentTypeRent || p.Type == ""
}

// =============================================================================
// RENTAL UNIT - Display enrichment only
// =============================================================================

// RentalUnit resolves a human-readable unit label in delinquency reports.
// It plays no part in any calculation.
type RentalUnit struct {
	ID         UnitID
	UnitNumber string
}

// UnitNumberUnavailable is the label used when a lease's unit has no
// matching inventory entry.
const UnitNumberUnavailable = "N/A"

// =============================================================================
// DERIVED OUTPUT TYPES
// =============================================================================

// DelinquentPeriod is one underpaid rental period for one lease.
// AmountDue is always greater than the scan tolerance.
type DelinquentPeriod struct {
	Period    RentalPeriod
	AmountDue decimal.Decimal
}

// DelinquentUnit is the per-lease delinquency rollup. Periods are sorted
// chronologically; at most one entry exists per lease in any scan result.
type DelinquentUnit struct {
	UnitID           UnitID
	UnitNumber       string
	TenantName       string
	LeaseID          LeaseID
	RentAmount       decimal.Decimal
	Periods          []DelinquentPeriod
	TotalOverdue     decimal.Decimal
	MonthsDelinquent int
	LeaseEndDate     Date
}
