package analyzer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wrapReport(cirData, creditReportExtra map[string]interface{}) map[string]interface{} {
	creditReport := map[string]interface{}{
		"CCRResponse": map[string]interface{}{
			"CIRReportDataLst": []interface{}{
				map[string]interface{}{"CIRReportData": cirData},
			},
		},
	}
	for k, v := range creditReportExtra {
		creditReport[k] = v
	}
	return map[string]interface{}{
		"reportData": map[string]interface{}{
			"credit_report": creditReport,
		},
	}
}

func TestBuildReportUnrecognized(t *testing.T) {
	testCases := []struct {
		name string
		raw  map[string]interface{}
	}{
		{"empty payload", map[string]interface{}{}},
		{"missing credit_report", map[string]interface{}{"reportData": map[string]interface{}{}}},
		{"empty CIRReportDataLst", map[string]interface{}{
			"reportData": map[string]interface{}{
				"credit_report": map[string]interface{}{
					"CCRResponse": map[string]interface{}{
						"CIRReportDataLst": []interface{}{},
					},
				},
			},
		}},
		{"wrong shape", map[string]interface{}{"reportData": "not an object"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildReport(tc.raw)
			assert.True(t, errors.Is(err, ErrUnrecognizedReport), "got %v", err)
		})
	}
}

func TestBuildReportDefaults(t *testing.T) {
	// a located container with everything else missing degrades to
	// defaults, never an error
	report, err := BuildReport(wrapReport(map[string]interface{}{}, nil))
	require.NoError(t, err)
	assert.Equal(t, "N/A", report.PersonName)
	assert.Nil(t, report.Score)
	assert.Zero(t, report.TotalPastDue)
	assert.Empty(t, report.Accounts)
	assert.Empty(t, report.Enquiries)
}

func TestBuildReportKeyFallbacks(t *testing.T) {
	cirData := map[string]interface{}{
		"RetailAccountDetails": []interface{}{
			map[string]interface{}{
				"Type":     "Personal Loan", // legacy type key
				"Financer": "Fincorp",       // secondary lender key
			},
			map[string]interface{}{
				"AccountType": "Credit Card",
				"Type":        "ignored when primary present",
				"Institution": "HDFC Bank",
				"BankName":    "ignored",
			},
			map[string]interface{}{
				"DateOpenedOrDisbursed": "2024-01-01",
			},
		},
	}
	report, err := BuildReport(wrapReport(cirData, map[string]interface{}{
		"Enquiries": []interface{}{
			map[string]interface{}{"date": "2025-01-01", "purpose": "Topup"},
			map[string]interface{}{"enquiryDate": "2025-02-01", "enquiryPurpose": "New Card"},
		},
	}))
	require.NoError(t, err)
	require.Len(t, report.Accounts, 3)

	assert.Equal(t, "Personal Loan", report.Accounts[0].Type)
	assert.Equal(t, "Fincorp", report.Accounts[0].Lender)
	assert.Equal(t, "Credit Card", report.Accounts[1].Type)
	assert.Equal(t, "HDFC Bank", report.Accounts[1].Lender)
	assert.Equal(t, "Other", report.Accounts[2].Type)
	assert.Equal(t, "N/A", report.Accounts[2].Lender)
	assert.Equal(t, "2024-01-01", report.Accounts[2].DateOpened)

	require.Len(t, report.Enquiries, 2)
	assert.Equal(t, "2025-01-01", report.Enquiries[0].Date)
	assert.Equal(t, "Topup", report.Enquiries[0].Purpose)
	assert.Equal(t, "2025-02-01", report.Enquiries[1].Date)
	assert.Equal(t, "New Card", report.Enquiries[1].Purpose)
}

func TestBuildReportFullExtraction(t *testing.T) {
	cirData := map[string]interface{}{
		"IDAndContactInfo": map[string]interface{}{
			"PersonalInfo": map[string]interface{}{
				"Name": map[string]interface{}{"FullName": "Asha Verma"},
			},
		},
		"RetailAccountsSummary": map[string]interface{}{"TotalPastDue": "12,000"},
		"RetailAccountDetails": []interface{}{
			map[string]interface{}{
				"Institution":       "HDFC Bank",
				"AccountType":       "Personal Loan",
				"AccountNumber":     float64(12345),
				"Open":              "Yes",
				"DateOpened":        "2024-10-01",
				"SanctionAmount":    "₹1,00,000",
				"Balance":           float64(80000),
				"InstallmentAmount": "4,500",
				"PastDueAmount":     "bad value",
				"History48Months": []interface{}{
					map[string]interface{}{
						"key":                       "2025-05",
						"PaymentStatus":             float64(30),
						"AssetClassificationStatus": "STD",
					},
				},
			},
		},
	}
	raw := wrapReport(cirData, nil)
	raw["reportData"].(map[string]interface{})["credit_score"] = float64(760)

	report, err := BuildReport(raw)
	require.NoError(t, err)

	assert.Equal(t, "Asha Verma", report.PersonName)
	require.NotNil(t, report.Score)
	assert.Equal(t, 760.0, *report.Score)
	assert.Equal(t, int64(12000), report.TotalPastDue)

	require.Len(t, report.Accounts, 1)
	acc := report.Accounts[0]
	assert.Equal(t, "12345", acc.AccountNumber)
	assert.Equal(t, int64(100000), acc.SanctionAmount)
	assert.Equal(t, int64(80000), acc.Balance)
	assert.Equal(t, int64(4500), acc.InstallmentAmount)
	assert.Equal(t, int64(0), acc.PastDueAmount) // unparseable -> 0

	require.Len(t, acc.History, 1)
	assert.Equal(t, "2025-05", acc.History[0].PeriodKey)
	assert.Equal(t, 30, acc.History[0].DPD)
	assert.Equal(t, "STD", acc.History[0].AssetClass)
}
