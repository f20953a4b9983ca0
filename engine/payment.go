package engine

// =============================================================================
// PAYMENT FILTER
// =============================================================================

// PaymentsForPeriod selects payments belonging to the cohort whose rental
// period exactly matches and whose type counts as rent. Multiple payments
// for the same lease/period (partial payments) are all included; callers
// sum them. Order is not significant.
func PaymentsForPeriod(payments []RentPayment, cohort LeaseSet, period RentalPeriod) []RentPayment {
	var matched []RentPayment
	for _, p := range payments {
		if !cohort.Contains(p.LeaseID) {
			continue
		}
		if p.Period != period {
			continue
		}
		if !p.CountsAsRent() {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}
