// Package export renders the analyzer's row tables for download. It reads
// MetricsResult fields as-is and never re-derives metrics from the raw
// report.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/creditpulse/cibil-service/internal/models"
)

// AccountsCSV renders the all-accounts table.
func AccountsCSV(rows []models.AccountRow) ([]byte, error) {
	records := [][]string{{
		"Financer", "Account Type", "Status", "Date Opened",
		"Sanction Amount", "Installment / Last Payment", "Current Balance", "Overdue",
	}}
	for _, r := range rows {
		records = append(records, []string{
			r.Financer, r.AccountType, r.Status, r.DateOpened,
			r.SanctionAmount, r.InstallmentOrLastPayment, r.CurrentBalance, r.Overdue,
		})
	}
	return writeAll(records)
}

// MissedPaymentsCSV renders the missed-payments table.
func MissedPaymentsCSV(rows []models.MissedPaymentRow) ([]byte, error) {
	records := [][]string{{
		"Financer", "Account Type", "Month/Year", "Days Past Due", "Current Overdue",
	}}
	for _, r := range rows {
		records = append(records, []string{
			r.Financer, r.AccountType, r.MonthYear,
			strconv.Itoa(r.DaysPastDue), r.CurrentOverdue,
		})
	}
	return writeAll(records)
}

func writeAll(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
