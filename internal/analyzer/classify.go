package analyzer

import (
	"strings"

	"github.com/creditpulse/cibil-service/internal/models"
)

// LegendEntry pairs a canonical abbreviation with the full account-type
// name it stands for.
type LegendEntry struct {
	Abbreviation string `json:"abbreviation"`
	FullName     string `json:"full_name"`
}

// legend is the fixed table of known account types, in display order.
var legend = []LegendEntry{
	{"PL", "Personal Loan"},
	{"BL Secured", "Business Loan – Secured"},
	{"BL Agri", "Business Loan – Priority Sector – Agriculture"},
	{"BL PS Other", "Business Loan – Priority Sector – Others"},
	{"CC", "Credit Card"},
	{"AL", "Auto Loan"},
	{"EL", "Education Loan"},
	{"HL", "Home Loan"},
	{"LAP", "Loan Against Property"},
	{"GL", "Gold Loan"},
	{"CL", "Consumer Loan"},
}

var abbreviations = func() map[string]string {
	m := make(map[string]string, len(legend))
	for _, e := range legend {
		m[e.FullName] = e.Abbreviation
	}
	return m
}()

// AbbreviationLegend returns the ordered abbreviation table for chart
// consumers. The returned slice is a copy.
func AbbreviationLegend() []LegendEntry {
	out := make([]LegendEntry, len(legend))
	copy(out, legend)
	return out
}

// CanonicalType maps a raw account-type label to its canonical category.
// Unknown labels are truncated to the first 12 characters plus an ellipsis
// so the portfolio label set stays bounded; an empty label maps to "NA".
func CanonicalType(label string) string {
	if label == "" {
		return "NA"
	}
	if abbr, ok := abbreviations[label]; ok {
		return abbr
	}
	runes := []rune(label)
	if len(runes) > 12 {
		runes = runes[:12]
	}
	return string(runes) + "…"
}

// IsOpen reports whether the account is open. Input sources disagree on
// which field carries status, so both the explicit open flag and the
// status field are honored.
func IsOpen(acc models.Account) bool {
	return acc.OpenFlag == "Yes" || strings.EqualFold(acc.Status, "open")
}

// EffectiveEMI is the account's monthly obligation: the installment amount
// when present, otherwise the last payment. Some tradelines, especially
// revolving or closed ones, omit the installment but report a last payment
// that approximates it.
func EffectiveEMI(acc models.Account) int64 {
	if acc.InstallmentAmount > 0 {
		return acc.InstallmentAmount
	}
	if acc.LastPayment > 0 {
		return acc.LastPayment
	}
	return 0
}

// IsPersonalOrBusinessLoan reports whether the type label carries a
// personal- or business-loan marker. Used only by the restricted 6-month
// window; the 3-month counter is type-agnostic by business rule.
func IsPersonalOrBusinessLoan(label string) bool {
	return strings.Contains(label, "Personal Loan") || strings.Contains(label, "Business Loan")
}

// IsCreditCard reports whether the label indicates a revolving credit-card
// product.
func IsCreditCard(label string) bool {
	return strings.Contains(strings.ToLower(label), "credit card")
}
