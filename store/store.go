/*
Package store defines the persistence interfaces between the application and
the database.

KEY INTERFACES:
  LeaseStore:     Lease records (create, read, edit, status toggle)
  PaymentStore:   Rent payment records (create, read, soft delete)
  InventoryStore: Rental units used for report enrichment
  Store:          All of the above

SOFT DELETE CONTRACT:
  Payments are never hard-deleted. DeletePayment moves the row into an audit
  table with the deleting actor and timestamp; list operations only ever
  return the currently-live set, which is what the engine expects.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite persistence
  - store/memory: in-memory implementation for tests
*/
package store

import (
	"context"
	"errors"

	"github.com/keystone/rent-engine/engine"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrLeaseNotFound is returned when a referenced lease doesn't exist.
	ErrLeaseNotFound = errors.New("lease not found")

	// ErrPaymentNotFound is returned when a referenced payment doesn't exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrUnitNotFound is returned when a referenced rental unit doesn't exist.
	ErrUnitNotFound = errors.New("rental unit not found")

	// ErrDuplicateID is returned when creating a record with an ID that
	// already exists.
	ErrDuplicateID = errors.New("duplicate id")
)

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLeaseNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrUnitNotFound)
}

// =============================================================================
// INTERFACES
// =============================================================================

// LeaseStore persists lease records.
type LeaseStore interface {
	SaveLease(ctx context.Context, lease engine.Lease) error
	UpdateLease(ctx context.Context, lease engine.Lease) error
	GetLease(ctx context.Context, id engine.LeaseID) (engine.Lease, error)
	ListLeases(ctx context.Context) ([]engine.Lease, error)
	SetLeaseActive(ctx context.Context, id engine.LeaseID, active bool) error
}

// PaymentStore persists rent payment records.
type PaymentStore interface {
	SavePayment(ctx context.Context, payment engine.RentPayment) error
	GetPayment(ctx context.Context, id engine.PaymentID) (engine.RentPayment, error)

	// ListPayments returns the live (non-deleted) payment set.
	ListPayments(ctx context.Context) ([]engine.RentPayment, error)
	ListPaymentsByLease(ctx context.Context, leaseID engine.LeaseID) ([]engine.RentPayment, error)

	// DeletePayment soft-deletes: the row moves to the audit trail and
	// disappears from list results.
	DeletePayment(ctx context.Context, id engine.PaymentID, deletedBy string) error
}

// InventoryStore persists the rental-unit inventory.
type InventoryStore interface {
	SaveUnit(ctx context.Context, unit engine.RentalUnit) error
	GetUnit(ctx context.Context, id engine.UnitID) (engine.RentalUnit, error)
	ListUnits(ctx context.Context) ([]engine.RentalUnit, error)
}

// Store is the full persistence surface the application wires together.
type Store interface {
	LeaseStore
	PaymentStore
	InventoryStore
}
