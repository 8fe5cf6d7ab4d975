package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditpulse/cibil-service/internal/models"
)

func TestAccountsCSV(t *testing.T) {
	rows := []models.AccountRow{
		{
			Financer:                 "HDFC Bank",
			AccountType:              "Personal Loan",
			Status:                   "Open",
			DateOpened:               "2024-10-01",
			SanctionAmount:           "Rs.100,000",
			InstallmentOrLastPayment: "Rs.4,500",
			CurrentBalance:           "Rs.80,000",
			Overdue:                  "Rs.0",
		},
	}

	data, err := AccountsCSV(rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Financer,Account Type,Status,Date Opened,Sanction Amount,Installment / Last Payment,Current Balance,Overdue", lines[0])
	assert.Equal(t, `HDFC Bank,Personal Loan,Open,2024-10-01,"Rs.100,000","Rs.4,500","Rs.80,000",Rs.0`, lines[1])
}

func TestMissedPaymentsCSV(t *testing.T) {
	rows := []models.MissedPaymentRow{
		{
			Financer:       "Axis Bank",
			AccountType:    "Auto Loan",
			MonthYear:      "2025-03",
			DaysPastDue:    15,
			CurrentOverdue: "Rs.12,500",
		},
	}

	data, err := MissedPaymentsCSV(rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Financer,Account Type,Month/Year,Days Past Due,Current Overdue", lines[0])
	assert.Equal(t, `Axis Bank,Auto Loan,2025-03,15,"Rs.12,500"`, lines[1])
}

func TestEmptyTablesStillRenderHeaders(t *testing.T) {
	data, err := AccountsCSV(nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Financer,"))

	data, err = MissedPaymentsCSV(nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Financer,"))
}
