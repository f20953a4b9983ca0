/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

KEY TABLES:
  leases:                Lease records
  rent_payments:         Live rent payment records
  deleted_rent_payments: Audit trail for soft-deleted payments
  rental_units:          Unit inventory for report enrichment

SOFT DELETE:
  DeletePayment moves the payment row into deleted_rent_payments inside a
  database transaction (insert audit row, delete live row). Readers query
  only the live table, so the engine never sees deleted payments.

STORAGE CONVENTIONS:
  - Money is stored as TEXT and parsed with shopspring/decimal; no float
    columns, no precision drift.
  - Dates are stored as "YYYY-MM-DD" TEXT; empty string means absent.
  - Rental periods are stored as "YYYY-MM" TEXT.

WAL MODE:
  SQLite is opened with WAL for better read concurrency under a
  multi-handler HTTP server.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/keystone/rent-engine/engine"
	"github.com/keystone/rent-engine/store"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ store.Store = (*Store)(nil)

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS leases (
		id TEXT PRIMARY KEY,
		unit_id TEXT NOT NULL,
		tenant_name TEXT NOT NULL,
		lease_start_date TEXT NOT NULL DEFAULT '',
		lease_end_date TEXT NOT NULL DEFAULT '',
		rent_amount TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leases_unit ON leases(unit_id);
	CREATE INDEX IF NOT EXISTS idx_leases_active ON leases(is_active);

	CREATE TABLE IF NOT EXISTS rent_payments (
		id TEXT PRIMARY KEY,
		lease_id TEXT NOT NULL,
		rental_period TEXT NOT NULL,
		payment_date TEXT NOT NULL,
		actual_rent_paid TEXT NOT NULL,
		payment_type TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payments_lease ON rent_payments(lease_id);
	CREATE INDEX IF NOT EXISTS idx_payments_period ON rent_payments(rental_period);
	CREATE INDEX IF NOT EXISTS idx_payments_date ON rent_payments(payment_date);

	CREATE TABLE IF NOT EXISTS deleted_rent_payments (
		id TEXT PRIMARY KEY,
		lease_id TEXT NOT NULL,
		rental_period TEXT NOT NULL,
		payment_date TEXT NOT NULL,
		actual_rent_paid TEXT NOT NULL,
		payment_type TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		deleted_at TEXT NOT NULL,
		deleted_by TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS rental_units (
		id TEXT PRIMARY KEY,
		unit_number TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LEASES
// =============================================================================

func (s *Store) SaveLease(ctx context.Context, lease engine.Lease) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leases (id, unit_id, tenant_name, lease_start_date, lease_end_date, rent_amount, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(lease.ID), string(lease.UnitID), lease.TenantName,
		lease.StartDate.String(), lease.EndDate.String(),
		lease.RentAmount.String(), boolToInt(lease.Active), now, now)
	if err != nil {
		return fmt.Errorf("save lease %s: %w", lease.ID, mapConstraint(err))
	}
	return nil
}

func (s *Store) UpdateLease(ctx context.Context, lease engine.Lease) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `
		UPDATE leases
		SET unit_id = ?, tenant_name = ?, lease_start_date = ?, lease_end_date = ?, rent_amount = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		string(lease.UnitID), lease.TenantName,
		lease.StartDate.String(), lease.EndDate.String(),
		lease.RentAmount.String(), boolToInt(lease.Active), now, string(lease.ID))
	if err != nil {
		return fmt.Errorf("update lease %s: %w", lease.ID, err)
	}
	return requireRow(res, store.ErrLeaseNotFound)
}

func (s *Store) GetLease(ctx context.Context, id engine.LeaseID) (engine.Lease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, unit_id, tenant_name, lease_start_date, lease_end_date, rent_amount, is_active
		FROM leases WHERE id = ?`, string(id))
	lease, err := scanLease(row)
	if err == sql.ErrNoRows {
		return engine.Lease{}, store.ErrLeaseNotFound
	}
	return lease, err
}

func (s *Store) ListLeases(ctx context.Context) ([]engine.Lease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, unit_id, tenant_name, lease_start_date, lease_end_date, rent_amount, is_active
		FROM leases ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []engine.Lease
	for rows.Next() {
		lease, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		leases = append(leases, lease)
	}
	return leases, rows.Err()
}

func (s *Store) SetLeaseActive(ctx context.Context, id engine.LeaseID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`UPDATE leases SET is_active = ?, updated_at = ? WHERE id = ?`,
		boolToInt(active), now, string(id))
	if err != nil {
		return fmt.Errorf("set lease %s active: %w", id, err)
	}
	return requireRow(res, store.ErrLeaseNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLease(r rowScanner) (engine.Lease, error) {
	var (
		id, unitID, tenant, startStr, endStr, rentStr string
		active                                        int
	)
	if err := r.Scan(&id, &unitID, &tenant, &startStr, &endStr, &rentStr, &active); err != nil {
		return engine.Lease{}, err
	}

	start, err := engine.ParseDate(startStr)
	if err != nil {
		return engine.Lease{}, fmt.Errorf("lease %s start date: %w", id, err)
	}
	end, err := engine.ParseDate(endStr)
	if err != nil {
		return engine.Lease{}, fmt.Errorf("lease %s end date: %w", id, err)
	}
	rent, err := decimal.NewFromString(rentStr)
	if err != nil {
		return engine.Lease{}, fmt.Errorf("lease %s rent amount: %w", id, err)
	}

	return engine.Lease{
		ID:         engine.LeaseID(id),
		UnitID:     engine.UnitID(unitID),
		TenantName: tenant,
		StartDate:  start,
		EndDate:    end,
		RentAmount: rent,
		Active:     active != 0,
	}, nil
}

// =============================================================================
// PAYMENTS
// =============================================================================

func (s *Store) SavePayment(ctx context.Context, payment engine.RentPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rent_payments (id, lease_id, rental_period, payment_date, actual_rent_paid, payment_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(payment.ID), string(payment.LeaseID), payment.Period.String(),
		payment.PaymentDate.String(), payment.ActualRentPaid.String(),
		string(payment.Type), now)
	if err != nil {
		return fmt.Errorf("save payment %s: %w", payment.ID, mapConstraint(err))
	}
	return nil
}

func (s *Store) GetPayment(ctx context.Context, id engine.PaymentID) (engine.RentPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, lease_id, rental_period, payment_date, actual_rent_paid, payment_type
		FROM rent_payments WHERE id = ?`, string(id))
	payment, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return engine.RentPayment{}, store.ErrPaymentNotFound
	}
	return payment, err
}

func (s *Store) ListPayments(ctx context.Context) ([]engine.RentPayment, error) {
	return s.queryPayments(ctx, `
		SELECT id, lease_id, rental_period, payment_date, actual_rent_paid, payment_type
		FROM rent_payments ORDER BY payment_date`)
}

func (s *Store) ListPaymentsByLease(ctx context.Context, leaseID engine.LeaseID) ([]engine.RentPayment, error) {
	return s.queryPayments(ctx, `
		SELECT id, lease_id, rental_period, payment_date, actual_rent_paid, payment_type
		FROM rent_payments WHERE lease_id = ? ORDER BY payment_date`, string(leaseID))
}

func (s *Store) queryPayments(ctx context.Context, query string, args ...any) ([]engine.RentPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []engine.RentPayment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// DeletePayment moves the payment into the audit table atomically.
func (s *Store) DeletePayment(ctx context.Context, id engine.PaymentID, deletedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.ExecContext(ctx, `
		INSERT INTO deleted_rent_payments (id, lease_id, rental_period, payment_date, actual_rent_paid, payment_type, created_at, deleted_at, deleted_by)
		SELECT id, lease_id, rental_period, payment_date, actual_rent_paid, payment_type, created_at, ?, ?
		FROM rent_payments WHERE id = ?`, now, deletedBy, string(id))
	if err != nil {
		return fmt.Errorf("archive payment %s: %w", id, err)
	}
	if err := requireRow(res, store.ErrPaymentNotFound); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rent_payments WHERE id = ?`, string(id)); err != nil {
		return fmt.Errorf("delete payment %s: %w", id, err)
	}
	return tx.Commit()
}

func scanPayment(r rowScanner) (engine.RentPayment, error) {
	var id, leaseID, periodStr, dateStr, amountStr, typeStr string
	if err := r.Scan(&id, &leaseID, &periodStr, &dateStr, &amountStr, &typeStr); err != nil {
		return engine.RentPayment{}, err
	}

	period, err := engine.ParseRentalPeriod(periodStr)
	if err != nil {
		return engine.RentPayment{}, fmt.Errorf("payment %s period: %w", id, err)
	}
	date, err := engine.ParseDate(dateStr)
	if err != nil {
		return engine.RentPayment{}, fmt.Errorf("payment %s date: %w", id, err)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return engine.RentPayment{}, fmt.Errorf("payment %s amount: %w", id, err)
	}

	return engine.RentPayment{
		ID:             engine.PaymentID(id),
		LeaseID:        engine.LeaseID(leaseID),
		Period:         period,
		PaymentDate:    date,
		ActualRentPaid: amount,
		Type:           engine.PaymentType(typeStr),
	}, nil
}

// =============================================================================
// RENTAL UNITS
// =============================================================================

func (s *Store) SaveUnit(ctx context.Context, unit engine.RentalUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rental_units (id, unit_number) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET unit_number = excluded.unit_number`,
		string(unit.ID), unit.UnitNumber)
	if err != nil {
		return fmt.Errorf("save unit %s: %w", unit.ID, err)
	}
	return nil
}

func (s *Store) GetUnit(ctx context.Context, id engine.UnitID) (engine.RentalUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var unitID, number string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, unit_number FROM rental_units WHERE id = ?`, string(id)).
		Scan(&unitID, &number)
	if err == sql.ErrNoRows {
		return engine.RentalUnit{}, store.ErrUnitNotFound
	}
	if err != nil {
		return engine.RentalUnit{}, err
	}
	return engine.RentalUnit{ID: engine.UnitID(unitID), UnitNumber: number}, nil
}

func (s *Store) ListUnits(ctx context.Context) ([]engine.RentalUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, unit_number FROM rental_units ORDER BY unit_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []engine.RentalUnit
	for rows.Next() {
		var id, number string
		if err := rows.Scan(&id, &number); err != nil {
			return nil, err
		}
		units = append(units, engine.RentalUnit{ID: engine.UnitID(id), UnitNumber: number})
	}
	return units, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// mapConstraint translates a primary-key violation into the portable
// duplicate-ID sentinel. Other constraint failures pass through untouched.
func mapConstraint(err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
		return store.ErrDuplicateID
	}
	return err
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
