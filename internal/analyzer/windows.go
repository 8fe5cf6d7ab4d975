package analyzer

import (
	"time"

	"github.com/creditpulse/cibil-service/internal/models"
)

// OpenedWithin reports whether the account was opened within the trailing
// window of the reference date. Accounts whose open date fails to parse
// are excluded from date-based computations.
func OpenedWithin(acc models.Account, referenceDate time.Time, days int) bool {
	d, ok := ParseDate(acc.DateOpened)
	if !ok {
		return false
	}
	return !d.Before(referenceDate.AddDate(0, 0, -days))
}

// EnquiryStats holds the reference-date-relative enquiry aggregates.
type EnquiryStats struct {
	Last3M    int
	ByPurpose map[string]int
}

// AggregateEnquiries counts enquiries in the trailing 90 days and builds
// the per-purpose histogram. The histogram counts every enquiry, dated or
// not; only the 3-month counter needs a parseable date.
func AggregateEnquiries(enquiries []models.Enquiry, referenceDate time.Time) EnquiryStats {
	stats := EnquiryStats{ByPurpose: make(map[string]int)}
	cutoff := referenceDate.AddDate(0, 0, -90)
	for _, e := range enquiries {
		purpose := e.Purpose
		if purpose == "" {
			purpose = "NA"
		}
		stats.ByPurpose[purpose]++
		if d, ok := ParseDate(e.Date); ok && !d.Before(cutoff) {
			stats.Last3M++
		}
	}
	return stats
}
