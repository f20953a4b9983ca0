// Package memory provides an in-memory store.Store implementation for
// testing and development.
package memory

import (
	"context"
	"sync"

	"github.com/keystone/rent-engine/engine"
	"github.com/keystone/rent-engine/store"
)

// Store keeps all records in maps guarded by a RWMutex. Soft-deleted
// payments move to a separate audit slice, mirroring the SQLite layout.
type Store struct {
	mu       sync.RWMutex
	leases   map[engine.LeaseID]engine.Lease
	order    []engine.LeaseID
	payments map[engine.PaymentID]engine.RentPayment
	deleted  []deletedPayment
	units    map[engine.UnitID]engine.RentalUnit
}

type deletedPayment struct {
	payment   engine.RentPayment
	deletedBy string
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		leases:   make(map[engine.LeaseID]engine.Lease),
		payments: make(map[engine.PaymentID]engine.RentPayment),
		units:    make(map[engine.UnitID]engine.RentalUnit),
	}
}

// =============================================================================
// LEASES
// =============================================================================

func (s *Store) SaveLease(_ context.Context, lease engine.Lease) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.leases[lease.ID]; exists {
		return store.ErrDuplicateID
	}
	s.leases[lease.ID] = lease
	s.order = append(s.order, lease.ID)
	return nil
}

func (s *Store) UpdateLease(_ context.Context, lease engine.Lease) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.leases[lease.ID]; !exists {
		return store.ErrLeaseNotFound
	}
	s.leases[lease.ID] = lease
	return nil
}

func (s *Store) GetLease(_ context.Context, id engine.LeaseID) (engine.Lease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lease, ok := s.leases[id]
	if !ok {
		return engine.Lease{}, store.ErrLeaseNotFound
	}
	return lease, nil
}

func (s *Store) ListLeases(_ context.Context) ([]engine.Lease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	leases := make([]engine.Lease, 0, len(s.order))
	for _, id := range s.order {
		leases = append(leases, s.leases[id])
	}
	return leases, nil
}

func (s *Store) SetLeaseActive(_ context.Context, id engine.LeaseID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lease, ok := s.leases[id]
	if !ok {
		return store.ErrLeaseNotFound
	}
	lease.Active = active
	s.leases[id] = lease
	return nil
}

// =============================================================================
// PAYMENTS
// =============================================================================

func (s *Store) SavePayment(_ context.Context, payment engine.RentPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.payments[payment.ID]; exists {
		return store.ErrDuplicateID
	}
	s.payments[payment.ID] = payment
	return nil
}

func (s *Store) GetPayment(_ context.Context, id engine.PaymentID) (engine.RentPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payment, ok := s.payments[id]
	if !ok {
		return engine.RentPayment{}, store.ErrPaymentNotFound
	}
	return payment, nil
}

func (s *Store) ListPayments(_ context.Context) ([]engine.RentPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payments := make([]engine.RentPayment, 0, len(s.payments))
	for _, p := range s.payments {
		payments = append(payments, p)
	}
	return payments, nil
}

func (s *Store) ListPaymentsByLease(_ context.Context, leaseID engine.LeaseID) ([]engine.RentPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var payments []engine.RentPayment
	for _, p := range s.payments {
		if p.LeaseID == leaseID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (s *Store) DeletePayment(_ context.Context, id engine.PaymentID, deletedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payment, ok := s.payments[id]
	if !ok {
		return store.ErrPaymentNotFound
	}
	delete(s.payments, id)
	s.deleted = append(s.deleted, deletedPayment{payment: payment, deletedBy: deletedBy})
	return nil
}

// DeletedCount reports the size of the audit trail. Test helper.
func (s *Store) DeletedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.deleted)
}

// =============================================================================
// RENTAL UNITS
// =============================================================================

func (s *Store) SaveUnit(_ context.Context, unit engine.RentalUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units[unit.ID] = unit
	return nil
}

func (s *Store) GetUnit(_ context.Context, id engine.UnitID) (engine.RentalUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	unit, ok := s.units[id]
	if !ok {
		return engine.RentalUnit{}, store.ErrUnitNotFound
	}
	return unit, nil
}

func (s *Store) ListUnits(_ context.Context) ([]engine.RentalUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	units := make([]engine.RentalUnit, 0, len(s.units))
	for _, u := range s.units {
		units = append(units, u)
	}
	return units, nil
}
