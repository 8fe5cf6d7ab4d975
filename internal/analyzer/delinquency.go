package analyzer

import (
	"time"

	"github.com/creditpulse/cibil-service/internal/models"
)

// DelinquencyStats is the per-account outcome of one payment-history scan.
type DelinquencyStats struct {
	MissedPayments int
	DPD30In6M      int
	DPD30In12M     int
	MaxDPD12M      int
	WriteOff       bool
	MissedRows     []models.MissedPaymentRow
}

// ScanHistory walks one account's monthly history in the order given and
// derives missed-payment counts, reference-date-relative DPD windows and
// write-off detection. Entries whose period key fails to parse are skipped
// individually; one bad month never discards the rest of the history.
func ScanHistory(acc models.Account, referenceDate time.Time) DelinquencyStats {
	var stats DelinquencyStats
	cutoff12M := referenceDate.AddDate(0, 0, -365)
	cutoff6M := referenceDate.AddDate(0, 0, -180)

	for _, h := range acc.History {
		if h.AssetClass == models.AssetClassWriteOff {
			stats.WriteOff = true
		}

		d, ok := ParseDate(h.PeriodKey)
		if !ok {
			// year-month-only keys need an explicit day
			d, ok = ParseDate(h.PeriodKey + "-01")
		}
		if !ok {
			continue
		}

		if h.DPD > 0 {
			stats.MissedPayments++
			stats.MissedRows = append(stats.MissedRows, models.MissedPaymentRow{
				Financer:       acc.Lender,
				AccountType:    acc.Type,
				MonthYear:      d.Format("2006-01"),
				DaysPastDue:    h.DPD,
				CurrentOverdue: FormatCurrency(acc.PastDueAmount),
			})
		}

		if !d.Before(cutoff12M) {
			if h.DPD > stats.MaxDPD12M {
				stats.MaxDPD12M = h.DPD
			}
			if h.DPD >= 30 {
				stats.DPD30In12M++
				if !d.Before(cutoff6M) {
					stats.DPD30In6M++
				}
			}
		}
	}
	return stats
}
