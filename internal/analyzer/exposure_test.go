package analyzer

import (
	"testing"

	"github.com/creditpulse/cibil-service/internal/models"
)

func TestAggregateExposure(t *testing.T) {
	accounts := []models.Account{
		{Lender: "HDFC Bank", OpenFlag: "Yes", SanctionAmount: 100000, InstallmentAmount: 5000},
		{Lender: "ICICI Bank", Status: "Open", SanctionAmount: 300000, LastPayment: 9000},
		{Lender: "HDFC Bank", OpenFlag: "Yes", SanctionAmount: 150000},
		{Lender: "Closed Lender", Status: "Closed", SanctionAmount: 900000, InstallmentAmount: 20000},
	}

	stats := AggregateExposure(accounts)
	if stats.ActiveLoans != 3 {
		t.Errorf("ActiveLoans = %d, want 3", stats.ActiveLoans)
	}
	if stats.ActiveSanctionTotal != 550000 {
		t.Errorf("ActiveSanctionTotal = %d, want 550000", stats.ActiveSanctionTotal)
	}
	if stats.TotalEMI != 14000 {
		t.Errorf("TotalEMI = %d, want 14000", stats.TotalEMI)
	}

	if len(stats.TopLenders) != 2 {
		t.Fatalf("TopLenders = %d entries, want 2", len(stats.TopLenders))
	}
	if stats.TopLenders[0].Lender != "ICICI Bank" || stats.TopLenders[0].Exposure != 300000 {
		t.Errorf("TopLenders[0] = %+v", stats.TopLenders[0])
	}
	if stats.TopLenders[1].Lender != "HDFC Bank" || stats.TopLenders[1].Exposure != 250000 {
		t.Errorf("TopLenders[1] = %+v", stats.TopLenders[1])
	}
}

func TestTopLendersTieBreaksByFirstSeen(t *testing.T) {
	accounts := []models.Account{
		{Lender: "Bank A", OpenFlag: "Yes", SanctionAmount: 100},
		{Lender: "Bank B", OpenFlag: "Yes", SanctionAmount: 100},
		{Lender: "Bank C", OpenFlag: "Yes", SanctionAmount: 100},
		{Lender: "Bank D", OpenFlag: "Yes", SanctionAmount: 100},
	}

	stats := AggregateExposure(accounts)
	if len(stats.TopLenders) != 3 {
		t.Fatalf("TopLenders = %d entries, want 3", len(stats.TopLenders))
	}
	for i, want := range []string{"Bank A", "Bank B", "Bank C"} {
		if stats.TopLenders[i].Lender != want {
			t.Errorf("TopLenders[%d] = %q, want %q", i, stats.TopLenders[i].Lender, want)
		}
	}
}

func TestUtilization(t *testing.T) {
	// a closed credit card still contributes its ratio
	closedCard := []models.Account{
		{Type: "Credit Card", Status: "Closed", HighCredit: 50000, Balance: 25000},
	}
	if got := Utilization(closedCard); got != "50.0%" {
		t.Errorf("Utilization = %q, want 50.0%%", got)
	}

	mixed := []models.Account{
		{Type: "Credit Card", HighCredit: 100000, Balance: 25000},
		{Type: "Credit Card", HighCredit: 30000, Balance: 30000},
		{Type: "Credit Card", HighCredit: 0, Balance: 10000}, // unusable limit
		{Type: "Personal Loan", HighCredit: 100000, Balance: 100000},
	}
	// mean of 0.25 and 1.0 -> 62.5%
	if got := Utilization(mixed); got != "62.5%" {
		t.Errorf("Utilization = %q, want 62.5%%", got)
	}

	if got := Utilization([]models.Account{{Type: "Personal Loan"}}); got != "N/A" {
		t.Errorf("Utilization = %q, want N/A", got)
	}
}

func TestUtilizationRounding(t *testing.T) {
	accounts := []models.Account{
		{Type: "Credit Card", HighCredit: 30000, Balance: 10000},
	}
	// 1/3 -> 33.333... -> 33.33%
	if got := Utilization(accounts); got != "33.33%" {
		t.Errorf("Utilization = %q, want 33.33%%", got)
	}
}
