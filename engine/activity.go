package engine

// =============================================================================
// LEASE ACTIVITY PREDICATES
// =============================================================================
//
// Two distinct tests, used for two distinct questions:
//
//   ActiveAtMonthEnd  - point-in-time occupancy snapshot (was the unit
//                       occupied on the last day of the month?)
//   ActiveDuring      - interval overlap (did the lease cover any part of
//                       the rental period?) - used by the delinquency scan
//
// Both return false when either lease date is absent: a lease without a
// complete activity window contributes nothing and never fails.

// ActiveAtMonthEnd reports whether the lease was active on the last day of
// the given month: StartDate <= monthEnd AND EndDate >= monthEnd.
func (l Lease) ActiveAtMonthEnd(month RentalPeriod) bool {
	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return false
	}
	monthEnd := month.End()
	return l.StartDate.BeforeOrEqual(monthEnd) && l.EndDate.AfterOrEqual(monthEnd)
}

// ActiveDuring reports whether the lease's [StartDate, EndDate] interval
// overlaps the rental period's [periodStart, periodEnd] interval.
func (l Lease) ActiveDuring(period RentalPeriod) bool {
	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return false
	}
	window := DateRange{Start: l.StartDate, End: l.EndDate}
	return window.Overlaps(period.Range())
}
