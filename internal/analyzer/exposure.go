package analyzer

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/creditpulse/cibil-service/internal/models"
)

// topLenderCount is how many lenders the exposure ranking keeps.
const topLenderCount = 3

// ExposureStats aggregates the open accounts of a report: count, sanctioned
// exposure, EMI obligations and the top lenders by exposure.
type ExposureStats struct {
	ActiveLoans         int
	ActiveSanctionTotal int64
	TotalEMI            int64
	TopLenders          []models.LenderExposure
}

// AggregateExposure folds every open account into the exposure stats.
// Lender ranking is by descending exposure with ties broken by first-seen
// order.
func AggregateExposure(accounts []models.Account) ExposureStats {
	var stats ExposureStats
	exposure := make(map[string]int64)
	var order []string

	for _, acc := range accounts {
		if !IsOpen(acc) {
			continue
		}
		stats.ActiveLoans++
		stats.ActiveSanctionTotal += acc.SanctionAmount
		stats.TotalEMI += EffectiveEMI(acc)
		if _, seen := exposure[acc.Lender]; !seen {
			order = append(order, acc.Lender)
		}
		exposure[acc.Lender] += acc.SanctionAmount
	}

	sort.SliceStable(order, func(i, j int) bool {
		return exposure[order[i]] > exposure[order[j]]
	})
	for _, lender := range order {
		if len(stats.TopLenders) == topLenderCount {
			break
		}
		stats.TopLenders = append(stats.TopLenders, models.LenderExposure{
			Lender:   lender,
			Exposure: exposure[lender],
		})
	}
	return stats
}

// Utilization computes the mean balance/limit ratio over credit-card
// accounts with a usable limit, as a percentage rounded to two decimals.
// Open and closed cards both count. Returns "N/A" when no card had a
// usable limit.
func Utilization(accounts []models.Account) string {
	var sum float64
	var n int
	for _, acc := range accounts {
		if !IsCreditCard(acc.Type) || acc.HighCredit <= 0 {
			continue
		}
		sum += float64(acc.Balance) / float64(acc.HighCredit)
		n++
	}
	if n == 0 {
		return "N/A"
	}
	return formatPercent(sum / float64(n) * 100)
}

// formatPercent renders a percentage rounded to two decimal places with at
// least one fractional digit, e.g. 50 -> "50.0%", 33.333 -> "33.33%".
func formatPercent(v float64) string {
	s := strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "%"
}
