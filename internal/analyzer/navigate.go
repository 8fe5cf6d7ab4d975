package analyzer

import (
	"errors"
	"math"
	"strconv"

	"github.com/creditpulse/cibil-service/internal/models"
)

// ErrUnrecognizedReport is returned when the top-level report container
// cannot be located at all. It is the only fatal condition; everything
// else degrades to per-field defaults.
var ErrUnrecognizedReport = errors.New("unrecognized report: CIRReportDataLst not found")

// BuildReport locates tradelines, enquiries, summary totals and identity
// fields inside the raw nested payload and returns the typed report.
// Missing branches yield empty collections or defaults, never an error.
func BuildReport(raw map[string]interface{}) (*models.CreditReport, error) {
	reportData := childMap(raw, "reportData")
	creditReport := childMap(reportData, "credit_report")

	response := childMap(creditReport, "CCRResponse")
	cirList := childSlice(response, "CIRReportDataLst")
	if len(cirList) == 0 {
		return nil, ErrUnrecognizedReport
	}

	cir, _ := cirList[0].(map[string]interface{})
	cirData := childMap(cir, "CIRReportData")

	report := &models.CreditReport{
		Score:        scoreOf(reportData["credit_score"]),
		TotalPastDue: ParseAmount(childMap(cirData, "RetailAccountsSummary")["TotalPastDue"]),
		PersonName:   personName(cirData),
	}

	for _, item := range childSlice(cirData, "RetailAccountDetails") {
		acc, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		report.Accounts = append(report.Accounts, buildAccount(acc))
	}

	for _, item := range childSlice(creditReport, "Enquiries") {
		enq, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		report.Enquiries = append(report.Enquiries, models.Enquiry{
			Date:    firstField(enq, "enquiryDate", "date"),
			Purpose: firstField(enq, "enquiryPurpose", "purpose"),
		})
	}

	return report, nil
}

func buildAccount(acc map[string]interface{}) models.Account {
	a := models.Account{
		Lender:            firstField(acc, "Institution", "Financer", "BankName"),
		Type:              firstField(acc, "AccountType", "Type"),
		AccountNumber:     fieldString(acc["AccountNumber"]),
		OpenFlag:          fieldString(acc["Open"]),
		Status:            fieldString(acc["Status"]),
		DateOpened:        firstField(acc, "DateOpened", "DateOpenedOrDisbursed"),
		SanctionAmount:    ParseAmount(acc["SanctionAmount"]),
		Balance:           ParseAmount(acc["Balance"]),
		InstallmentAmount: ParseAmount(acc["InstallmentAmount"]),
		LastPayment:       ParseAmount(acc["LastPayment"]),
		PastDueAmount:     ParseAmount(acc["PastDueAmount"]),
		HighCredit:        ParseAmount(acc["HighCredit"]),
	}
	if a.Lender == "" {
		a.Lender = "N/A"
	}
	if a.Type == "" {
		a.Type = "Other"
	}
	for _, item := range childSlice(acc, "History48Months") {
		h, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		a.History = append(a.History, models.MonthlyRecord{
			PeriodKey:  fieldString(h["key"]),
			DPD:        int(ParseAmount(h["PaymentStatus"])),
			AssetClass: fieldString(h["AssetClassificationStatus"]),
		})
	}
	return a
}

func personName(cirData map[string]interface{}) string {
	name := childMap(childMap(childMap(cirData, "IDAndContactInfo"), "PersonalInfo"), "Name")
	if full := fieldString(name["FullName"]); full != "" {
		return full
	}
	return "N/A"
}

func scoreOf(raw interface{}) *float64 {
	switch v := raw.(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

// childMap returns the nested object under key, or an empty map when the
// branch is missing or has the wrong shape.
func childMap(m map[string]interface{}, key string) map[string]interface{} {
	if child, ok := m[key].(map[string]interface{}); ok {
		return child
	}
	return map[string]interface{}{}
}

func childSlice(m map[string]interface{}, key string) []interface{} {
	if child, ok := m[key].([]interface{}); ok {
		return child
	}
	return nil
}

// firstField tries each historically-used key name for one concept in
// priority order and returns the first non-empty value.
func firstField(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s := fieldString(m[key]); s != "" {
			return s
		}
	}
	return ""
}

// fieldString renders a scalar field as a string. Whole JSON numbers are
// rendered without a fractional part so keys like PaymentStatus round-trip.
func fieldString(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
