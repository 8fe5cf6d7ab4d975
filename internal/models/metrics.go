package models

import "strconv"

// MetricsResult is the normalized set of risk and portfolio metrics derived
// from one report as of a single reference date. It is immutable once
// assembled; rendering and export collaborators read it but never recompute
// any field from the raw report.
type MetricsResult struct {
	Name                string             `json:"name"`
	Score               string             `json:"score"`
	TotalPastDue        int64              `json:"total_past_due"`
	ActiveLoans         int                `json:"active_loans"`
	ActiveSanctionTotal int64              `json:"active_sanction_total"`
	TotalEMI            int64              `json:"total_emi"`
	MissedPayments      int                `json:"missed_payments"`
	DPD30In6M           int                `json:"dpd30_6m"`
	DPD30In12M          int                `json:"dpd30_12m"`
	MaxDPD12M           int                `json:"max_dpd_12m"`
	WriteOffCount       int                `json:"writeoff_count"`
	Portfolio           map[string]int     `json:"portfolio"`
	Utilization         string             `json:"utilization"`
	TopLenders          []LenderExposure   `json:"top_lenders"`
	EnquiriesLast3M     int                `json:"enquiries_last_3m"`
	EnquiryBreakdown    map[string]int     `json:"enquiry_breakdown"`
	PLBLAvailedLast6M   int                `json:"pl_bl_availed_last_6m"`
	LoansAvailedLast3M  int                `json:"loans_availed_last_3m"`
	AccountRows         []AccountRow       `json:"account_rows"`
	MissedRows          []MissedPaymentRow `json:"missed_rows"`
}

// LenderExposure is one entry of the top-lender ranking: the sum of
// sanctioned amounts across a lender's open accounts.
type LenderExposure struct {
	Lender   string `json:"lender"`
	Exposure int64  `json:"exposure"`
}

// AccountRow is one display-ready row of the all-accounts table.
// Amounts are pre-formatted; upstream components work in raw values.
type AccountRow struct {
	Financer                 string `json:"financer"`
	AccountType              string `json:"account_type"`
	Status                   string `json:"status"`
	DateOpened               string `json:"date_opened"`
	SanctionAmount           string `json:"sanction_amount"`
	InstallmentOrLastPayment string `json:"installment_or_last_payment"`
	CurrentBalance           string `json:"current_balance"`
	Overdue                  string `json:"overdue"`
}

// MissedPaymentRow is one display-ready row of the missed-payments table,
// one per delinquent month entry across all accounts.
type MissedPaymentRow struct {
	Financer       string `json:"financer"`
	AccountType    string `json:"account_type"`
	MonthYear      string `json:"month_year"`
	DaysPastDue    int    `json:"days_past_due"`
	CurrentOverdue string `json:"current_overdue"`
}

// MetricPair is one (label, value) pair of the credit summary table.
type MetricPair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SummaryPairs returns the ordered credit-summary metric pairs used by
// renderers. Currency fields are intentionally left raw here; formatting
// them is the renderer's call.
func (m *MetricsResult) SummaryPairs() []MetricPair {
	return []MetricPair{
		{Label: "Active Loans", Value: strconv.Itoa(m.ActiveLoans)},
		{Label: "Sanctioned on Active Loans", Value: strconv.FormatInt(m.ActiveSanctionTotal, 10)},
		{Label: "Total EMI Obligations", Value: strconv.FormatInt(m.TotalEMI, 10)},
		{Label: "Missed Payments", Value: strconv.Itoa(m.MissedPayments)},
		{Label: "30+ DPD in Last 6M", Value: strconv.Itoa(m.DPD30In6M)},
		{Label: "30+ DPD in Last 12M", Value: strconv.Itoa(m.DPD30In12M)},
		{Label: "Max DPD (12M)", Value: strconv.Itoa(m.MaxDPD12M)},
		{Label: "Write-offs", Value: strconv.Itoa(m.WriteOffCount)},
		{Label: "Credit Utilization", Value: m.Utilization},
		{Label: "PL/BL Availed in last 6m", Value: strconv.Itoa(m.PLBLAvailedLast6M)},
		{Label: "Loan Availed in last 3m", Value: strconv.Itoa(m.LoansAvailedLast3M)},
	}
}
