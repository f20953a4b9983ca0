/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the engine's domain
  model from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

CONVENTIONS:
  - Money is carried as decimal strings ("20000.00"), never floats.
  - Dates are "YYYY-MM-DD"; rental periods are "YYYY-MM".
  - Validation happens in handlers; DTOs are pure data carriers.
*/
package api

// LeaseDTO represents a lease in API responses.
type LeaseDTO struct {
	ID             string `json:"id"`
	UnitID         string `json:"unit_id"`
	TenantName     string `json:"tenant_name"`
	LeaseStartDate string `json:"lease_start_date"`
	LeaseEndDate   string `json:"lease_end_date"`
	RentAmount     string `json:"rent_amount"`
	IsActive       bool   `json:"is_active"`
}

// CreateLeaseRequest is the request to create a lease. ID is optional;
// the server assigns one when absent.
type CreateLeaseRequest struct {
	ID             string `json:"id,omitempty"`
	UnitID         string `json:"unit_id"`
	TenantName     string `json:"tenant_name"`
	LeaseStartDate string `json:"lease_start_date"`
	LeaseEndDate   string `json:"lease_end_date"`
	RentAmount     string `json:"rent_amount"`
	IsActive       *bool  `json:"is_active,omitempty"`
}

// SetLeaseStatusRequest toggles the display-level active flag.
type SetLeaseStatusRequest struct {
	Active bool `json:"active"`
}

// PaymentDTO represents a rent payment in API responses.
type PaymentDTO struct {
	ID             string `json:"id"`
	LeaseID        string `json:"lease_id"`
	RentalPeriod   string `json:"rental_period"`
	PaymentDate    string `json:"payment_date"`
	ActualRentPaid string `json:"actual_rent_paid"`
	PaymentType    string `json:"payment_type"`
}

// RecordPaymentRequest is the request to record a payment.
type RecordPaymentRequest struct {
	ID             string `json:"id,omitempty"`
	LeaseID        string `json:"lease_id"`
	RentalPeriod   string `json:"rental_period"`
	PaymentDate    string `json:"payment_date"`
	ActualRentPaid string `json:"actual_rent_paid"`
	PaymentType    string `json:"payment_type"`
}

// UnitDTO represents a rental unit.
type UnitDTO struct {
	ID         string `json:"id"`
	UnitNumber string `json:"unit_number"`
}

// CreateUnitRequest creates or renames a rental unit.
type CreateUnitRequest struct {
	ID         string `json:"id,omitempty"`
	UnitNumber string `json:"unit_number"`
}

// DelinquentPeriodDTO is one underpaid rental period.
type DelinquentPeriodDTO struct {
	Period    string `json:"period"`
	AmountDue string `json:"amount_due"`
}

// DelinquentUnitDTO is the per-lease delinquency rollup.
type DelinquentUnitDTO struct {
	UnitID                string                `json:"unit_id"`
	UnitNumber            string                `json:"unit_number"`
	TenantName            string                `json:"tenant_name"`
	LeaseID               string                `json:"lease_id"`
	LeaseRentAmount       string                `json:"lease_rent_amount"`
	DelinquentPeriods     []DelinquentPeriodDTO `json:"delinquent_periods"`
	TotalOverdueAmount    string                `json:"total_overdue_amount"`
	CountDelinquentMonths int                   `json:"count_delinquent_months"`
	LastLeaseEndDate      string                `json:"last_lease_end_date"`
}

// DelinquencyReportDTO wraps the scan result for a target month.
type DelinquencyReportDTO struct {
	Month     string              `json:"month"`
	Units     []DelinquentUnitDTO `json:"units"`
	TotalOwed string              `json:"total_owed"`
}

// YTDDTO reports fiscal year-to-date rent collected as of a target month.
type YTDDTO struct {
	Month            string `json:"month"`
	FiscalYearStart  string `json:"fiscal_year_start"`
	YTDRentCollected string `json:"ytd_rent_collected"`
}

// SummaryReportDTO is the monthly summary for dashboards and email reports.
type SummaryReportDTO struct {
	Month            string              `json:"month"`
	GeneratedAt      string              `json:"generated_at"`
	YTDRentCollected string              `json:"ytd_rent_collected"`
	RentThisMonth    string              `json:"rent_this_month"`
	NewLeases        int                 `json:"new_leases"`
	EndedLeases      int                 `json:"ended_leases"`
	OccupiedUnits    int                 `json:"occupied_units"`
	TotalUnits       int                 `json:"total_units"`
	OccupancyRate    string              `json:"occupancy_rate"`
	Delinquent       []DelinquentUnitDTO `json:"delinquent"`
	TotalOverdue     string              `json:"total_overdue"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
