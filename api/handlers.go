/*
handlers.go - HTTP API handlers for the property-management service

PURPOSE:
  Exposes lease/payment/unit management and the reporting engine via REST.
  Handlers parse and validate input, delegate to the store and the engine,
  and serialize responses.

ENDPOINTS:
  Leases:
    GET    /api/leases                 List leases
    POST   /api/leases                 Create lease
    GET    /api/leases/{id}            Get lease
    PUT    /api/leases/{id}            Update lease
    POST   /api/leases/{id}/status     Toggle active flag
    GET    /api/leases/{id}/payments   Payment history for a lease

  Payments:
    GET    /api/payments               List live payments
    POST   /api/payments               Record payment
    DELETE /api/payments/{id}          Soft-delete into the audit trail

  Units:
    GET    /api/units                  List rental units
    POST   /api/units                  Create/rename unit

  Reports:
    GET    /api/reports/delinquency?month=YYYY-MM
    GET    /api/reports/ytd?month=YYYY-MM
    GET    /api/reports/summary?month=YYYY-MM

ERROR HANDLING:
  - 400: malformed period/date tokens, bad amounts (engine.IsClientError
         and handler-level validation)
  - 404: missing lease/payment/unit (store.IsNotFound)
  - 409: duplicate IDs
  - 500: everything else
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/keystone/rent-engine/engine"
	"github.com/keystone/rent-engine/reports"
	"github.com/keystone/rent-engine/store"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   store.Store
	Reports reports.Config
	Logger  *logrus.Logger
}

// NewHandler creates a handler over the given store and report config.
func NewHandler(st store.Store, cfg reports.Config, logger *logrus.Logger) *Handler {
	return &Handler{Store: st, Reports: cfg, Logger: logger}
}

// =============================================================================
// LEASE HANDLERS
// =============================================================================

func (h *Handler) ListLeases(w http.ResponseWriter, r *http.Request) {
	leases, err := h.Store.ListLeases(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to list leases", err)
		return
	}

	dtos := make([]LeaseDTO, len(leases))
	for i, l := range leases {
		dtos[i] = leaseDTO(l)
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateLease(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	lease, err := leaseFromRequest(req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid lease", err)
		return
	}
	if lease.ID == "" {
		lease.ID = engine.LeaseID(uuid.NewString())
	}

	if err := h.Store.SaveLease(r.Context(), lease); err != nil {
		h.storeError(w, "failed to create lease", err)
		return
	}

	h.Logger.WithFields(logrus.Fields{"lease_id": lease.ID, "unit_id": lease.UnitID}).Info("lease created")
	h.writeJSON(w, http.StatusCreated, leaseDTO(lease))
}

func (h *Handler) GetLease(w http.ResponseWriter, r *http.Request) {
	lease, err := h.Store.GetLease(r.Context(), engine.LeaseID(chi.URLParam(r, "id")))
	if err != nil {
		h.storeError(w, "failed to get lease", err)
		return
	}
	h.writeJSON(w, http.StatusOK, leaseDTO(lease))
}

func (h *Handler) UpdateLease(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	lease, err := leaseFromRequest(req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid lease", err)
		return
	}
	lease.ID = engine.LeaseID(chi.URLParam(r, "id"))

	if err := h.Store.UpdateLease(r.Context(), lease); err != nil {
		h.storeError(w, "failed to update lease", err)
		return
	}
	h.writeJSON(w, http.StatusOK, leaseDTO(lease))
}

func (h *Handler) SetLeaseStatus(w http.ResponseWriter, r *http.Request) {
	var req SetLeaseStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	id := engine.LeaseID(chi.URLParam(r, "id"))
	if err := h.Store.SetLeaseActive(r.Context(), id, req.Active); err != nil {
		h.storeError(w, "failed to set lease status", err)
		return
	}

	lease, err := h.Store.GetLease(r.Context(), id)
	if err != nil {
		h.storeError(w, "failed to reload lease", err)
		return
	}
	h.writeJSON(w, http.StatusOK, leaseDTO(lease))
}

func (h *Handler) ListLeasePayments(w http.ResponseWriter, r *http.Request) {
	id := engine.LeaseID(chi.URLParam(r, "id"))
	if _, err := h.Store.GetLease(r.Context(), id); err != nil {
		h.storeError(w, "failed to get lease", err)
		return
	}

	payments, err := h.Store.ListPaymentsByLease(r.Context(), id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to list payments", err)
		return
	}
	h.writeJSON(w, http.StatusOK, paymentDTOs(payments))
}

// =============================================================================
// PAYMENT HANDLERS
// =============================================================================

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Store.ListPayments(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to list payments", err)
		return
	}
	h.writeJSON(w, http.StatusOK, paymentDTOs(payments))
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	payment, err := paymentFromRequest(req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid payment", err)
		return
	}
	if payment.ID == "" {
		payment.ID = engine.PaymentID(uuid.NewString())
	}

	// The lease must exist; payments against unknown leases would silently
	// vanish from every report.
	if _, err := h.Store.GetLease(r.Context(), payment.LeaseID); err != nil {
		h.storeError(w, "failed to resolve lease", err)
		return
	}

	if err := h.Store.SavePayment(r.Context(), payment); err != nil {
		h.storeError(w, "failed to record payment", err)
		return
	}

	h.Logger.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"lease_id":   payment.LeaseID,
		"period":     payment.Period.String(),
		"amount":     payment.ActualRentPaid.String(),
	}).Info("payment recorded")
	h.writeJSON(w, http.StatusCreated, paymentDTO(payment))
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id := engine.PaymentID(chi.URLParam(r, "id"))
	deletedBy := r.URL.Query().Get("deleted_by")

	if err := h.Store.DeletePayment(r.Context(), id, deletedBy); err != nil {
		h.storeError(w, "failed to delete payment", err)
		return
	}

	h.Logger.WithFields(logrus.Fields{"payment_id": id, "deleted_by": deletedBy}).Info("payment soft-deleted")
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// UNIT HANDLERS
// =============================================================================

func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.Store.ListUnits(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to list units", err)
		return
	}

	dtos := make([]UnitDTO, len(units))
	for i, u := range units {
		dtos[i] = UnitDTO{ID: string(u.ID), UnitNumber: u.UnitNumber}
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if req.UnitNumber == "" {
		h.writeError(w, http.StatusBadRequest, "unit_number is required", nil)
		return
	}

	unit := engine.RentalUnit{ID: engine.UnitID(req.ID), UnitNumber: req.UnitNumber}
	if unit.ID == "" {
		unit.ID = engine.UnitID(uuid.NewString())
	}

	if err := h.Store.SaveUnit(r.Context(), unit); err != nil {
		h.storeError(w, "failed to save unit", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, UnitDTO{ID: string(unit.ID), UnitNumber: unit.UnitNumber})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

func (h *Handler) DelinquencyReport(w http.ResponseWriter, r *http.Request) {
	month, ok := h.targetMonth(w, r)
	if !ok {
		return
	}

	leases, units, payments, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	result := engine.ScanDelinquencies(leases, units, payments, month, h.Reports.Scan)

	dtos := make([]DelinquentUnitDTO, len(result))
	total := decimal.Zero
	for i, d := range result {
		dtos[i] = delinquentUnitDTO(d)
		total = total.Add(d.TotalOverdue)
	}

	h.writeJSON(w, http.StatusOK, DelinquencyReportDTO{
		Month:     month.String(),
		Units:     dtos,
		TotalOwed: total.String(),
	})
}

func (h *Handler) YTDReport(w http.ResponseWriter, r *http.Request) {
	month, ok := h.targetMonth(w, r)
	if !ok {
		return
	}

	leases, _, payments, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	cohort := make(engine.LeaseSet, len(leases))
	for _, l := range leases {
		cohort[l.ID] = struct{}{}
	}

	window := engine.FiscalWindow(month, h.Reports.FiscalYearStart)
	h.writeJSON(w, http.StatusOK, YTDDTO{
		Month:            month.String(),
		FiscalYearStart:  window.Start.String(),
		YTDRentCollected: engine.YTDRentCollected(payments, cohort, month, h.Reports.FiscalYearStart).String(),
	})
}

func (h *Handler) SummaryReport(w http.ResponseWriter, r *http.Request) {
	month, ok := h.targetMonth(w, r)
	if !ok {
		return
	}

	leases, units, payments, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	report := reports.BuildMonthlyReport(leases, units, payments, month, h.Reports)
	h.writeJSON(w, http.StatusOK, summaryDTO(report))
}

// targetMonth parses the required ?month=YYYY-MM query parameter.
func (h *Handler) targetMonth(w http.ResponseWriter, r *http.Request) (engine.RentalPeriod, bool) {
	month, err := engine.ParseRentalPeriod(r.URL.Query().Get("month"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid month parameter", err)
		return engine.RentalPeriod{}, false
	}
	return month, true
}

// loadSnapshot materializes the full lease/unit/payment snapshot the engine
// computes over.
func (h *Handler) loadSnapshot(w http.ResponseWriter, r *http.Request) ([]engine.Lease, []engine.RentalUnit, []engine.RentPayment, bool) {
	ctx := r.Context()

	leases, err := h.Store.ListLeases(ctx)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to load leases", err)
		return nil, nil, nil, false
	}
	units, err := h.Store.ListUnits(ctx)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to load units", err)
		return nil, nil, nil, false
	}
	payments, err := h.Store.ListPayments(ctx)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to load payments", err)
		return nil, nil, nil, false
	}
	return leases, units, payments, true
}

// =============================================================================
// MAPPING
// =============================================================================

func leaseFromRequest(req CreateLeaseRequest) (engine.Lease, error) {
	if req.UnitID == "" {
		return engine.Lease{}, errors.New("unit_id is required")
	}
	if req.TenantName == "" {
		return engine.Lease{}, errors.New("tenant_name is required")
	}

	start, err := engine.ParseDate(req.LeaseStartDate)
	if err != nil {
		return engine.Lease{}, err
	}
	end, err := engine.ParseDate(req.LeaseEndDate)
	if err != nil {
		return engine.Lease{}, err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return engine.Lease{}, errors.New("lease_end_date precedes lease_start_date")
	}

	rent, err := decimal.NewFromString(req.RentAmount)
	if err != nil {
		return engine.Lease{}, errors.New("rent_amount must be a decimal string")
	}
	if rent.IsNegative() {
		return engine.Lease{}, errors.New("rent_amount must be non-negative")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return engine.Lease{
		ID:         engine.LeaseID(req.ID),
		UnitID:     engine.UnitID(req.UnitID),
		TenantName: req.TenantName,
		StartDate:  start,
		EndDate:    end,
		RentAmount: rent,
		Active:     active,
	}, nil
}

func paymentFromRequest(req RecordPaymentRequest) (engine.RentPayment, error) {
	if req.LeaseID == "" {
		return engine.RentPayment{}, errors.New("lease_id is required")
	}

	period, err := engine.ParseRentalPeriod(req.RentalPeriod)
	if err != nil {
		return engine.RentPayment{}, err
	}
	date, err := engine.ParseDate(req.PaymentDate)
	if err != nil {
		return engine.RentPayment{}, err
	}
	if date.IsZero() {
		return engine.RentPayment{}, errors.New("payment_date is required")
	}

	amount, err := decimal.NewFromString(req.ActualRentPaid)
	if err != nil {
		return engine.RentPayment{}, errors.New("actual_rent_paid must be a decimal string")
	}
	if amount.IsNegative() {
		return engine.RentPayment{}, errors.New("actual_rent_paid must be non-negative")
	}

	return engine.RentPayment{
		ID:             engine.PaymentID(req.ID),
		LeaseID:        engine.LeaseID(req.LeaseID),
		Period:         period,
		PaymentDate:    date,
		ActualRentPaid: amount,
		Type:           engine.PaymentType(req.PaymentType),
	}, nil
}

func leaseDTO(l engine.Lease) LeaseDTO {
	return LeaseDTO{
		ID:             string(l.ID),
		UnitID:         string(l.UnitID),
		TenantName:     l.TenantName,
		LeaseStartDate: l.StartDate.String(),
		LeaseEndDate:   l.EndDate.String(),
		RentAmount:     l.RentAmount.String(),
		IsActive:       l.Active,
	}
}

func paymentDTO(p engine.RentPayment) PaymentDTO {
	return PaymentDTO{
		ID:             string(p.ID),
		LeaseID:        string(p.LeaseID),
		RentalPeriod:   p.Period.String(),
		PaymentDate:    p.PaymentDate.String(),
		ActualRentPaid: p.ActualRentPaid.String(),
		PaymentType:    string(p.Type),
	}
}

func paymentDTOs(payments []engine.RentPayment) []PaymentDTO {
	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = paymentDTO(p)
	}
	return dtos
}

func delinquentUnitDTO(d engine.DelinquentUnit) DelinquentUnitDTO {
	periods := make([]DelinquentPeriodDTO, len(d.Periods))
	for i, p := range d.Periods {
		periods[i] = DelinquentPeriodDTO{Period: p.Period.String(), AmountDue: p.AmountDue.String()}
	}
	return DelinquentUnitDTO{
		UnitID:                string(d.UnitID),
		UnitNumber:            d.UnitNumber,
		TenantName:            d.TenantName,
		LeaseID:               string(d.LeaseID),
		LeaseRentAmount:       d.RentAmount.String(),
		DelinquentPeriods:     periods,
		TotalOverdueAmount:    d.TotalOverdue.String(),
		CountDelinquentMonths: d.MonthsDelinquent,
		LastLeaseEndDate:      d.LeaseEndDate.String(),
	}
}

func summaryDTO(r reports.MonthlyReport) SummaryReportDTO {
	delinquent := make([]DelinquentUnitDTO, len(r.Delinquent))
	for i, d := range r.Delinquent {
		delinquent[i] = delinquentUnitDTO(d)
	}
	return SummaryReportDTO{
		Month:            r.Month.String(),
		GeneratedAt:      r.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		YTDRentCollected: r.YTDRentCollected.String(),
		RentThisMonth:    r.RentThisMonth.String(),
		NewLeases:        r.NewLeases,
		EndedLeases:      r.EndedLeases,
		OccupiedUnits:    r.OccupiedUnits,
		TotalUnits:       r.TotalUnits,
		OccupancyRate:    r.OccupancyRate().String(),
		Delinquent:       delinquent,
		TotalOverdue:     r.TotalOverdue.String(),
	}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.WithError(err).Error("failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
		if status >= http.StatusInternalServerError {
			h.Logger.WithError(err).Error(message)
		}
	}
	h.writeJSON(w, status, resp)
}

// storeError maps store and engine errors onto HTTP statuses.
func (h *Handler) storeError(w http.ResponseWriter, message string, err error) {
	switch {
	case store.IsNotFound(err):
		h.writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, store.ErrDuplicateID):
		h.writeError(w, http.StatusConflict, message, err)
	case engine.IsClientError(err):
		h.writeError(w, http.StatusBadRequest, message, err)
	default:
		h.writeError(w, http.StatusInternalServerError, message, err)
	}
}
