// Package analyzer derives normalized risk and portfolio metrics from a
// bureau credit report as of an arbitrary reference date. Every component
// is a pure transformation: the same report and reference date always
// produce the same MetricsResult, and no component reads the clock on its
// own.
package analyzer

import (
	"strconv"
	"time"

	"github.com/creditpulse/cibil-service/internal/models"
)

// Analyze runs the full pipeline over one typed report and assembles the
// metrics record. The result is fresh and unshared; callers may read it
// but must not mutate it.
func Analyze(report *models.CreditReport, referenceDate time.Time) *models.MetricsResult {
	result := &models.MetricsResult{
		Name:         report.PersonName,
		Score:        formatScore(report.Score),
		TotalPastDue: report.TotalPastDue,
		Portfolio:    make(map[string]int),
		AccountRows:  []models.AccountRow{},
		MissedRows:   []models.MissedPaymentRow{},
	}

	writeOffs := make(map[string]struct{})

	for _, acc := range report.Accounts {
		result.Portfolio[CanonicalType(acc.Type)]++
		result.AccountRows = append(result.AccountRows, accountRow(acc))

		if OpenedWithin(acc, referenceDate, 90) {
			result.LoansAvailedLast3M++
		}
		if OpenedWithin(acc, referenceDate, 180) && IsPersonalOrBusinessLoan(acc.Type) {
			result.PLBLAvailedLast6M++
		}

		stats := ScanHistory(acc, referenceDate)
		result.MissedPayments += stats.MissedPayments
		result.DPD30In6M += stats.DPD30In6M
		result.DPD30In12M += stats.DPD30In12M
		if stats.MaxDPD12M > result.MaxDPD12M {
			result.MaxDPD12M = stats.MaxDPD12M
		}
		result.MissedRows = append(result.MissedRows, stats.MissedRows...)
		if stats.WriteOff {
			writeOffs[acc.AccountNumber] = struct{}{}
		}
	}

	exposure := AggregateExposure(report.Accounts)
	result.ActiveLoans = exposure.ActiveLoans
	result.ActiveSanctionTotal = exposure.ActiveSanctionTotal
	result.TotalEMI = exposure.TotalEMI
	result.TopLenders = exposure.TopLenders
	result.Utilization = Utilization(report.Accounts)

	enquiries := AggregateEnquiries(report.Enquiries, referenceDate)
	result.EnquiriesLast3M = enquiries.Last3M
	result.EnquiryBreakdown = enquiries.ByPurpose

	result.WriteOffCount = len(writeOffs)
	return result
}

// accountRow is the only place account fields get display formatting.
func accountRow(acc models.Account) models.AccountRow {
	status := "Closed"
	if IsOpen(acc) {
		status = "Open"
	}
	dateOpened := acc.DateOpened
	if dateOpened == "" {
		dateOpened = "-"
	}
	return models.AccountRow{
		Financer:                 acc.Lender,
		AccountType:              acc.Type,
		Status:                   status,
		DateOpened:               dateOpened,
		SanctionAmount:           FormatCurrency(acc.SanctionAmount),
		InstallmentOrLastPayment: FormatCurrency(EffectiveEMI(acc)),
		CurrentBalance:           FormatCurrency(acc.Balance),
		Overdue:                  FormatCurrency(acc.PastDueAmount),
	}
}

func formatScore(score *float64) string {
	if score == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}
