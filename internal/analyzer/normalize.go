package analyzer

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rupeePrinter = message.NewPrinter(language.English)

// ParseAmount normalizes a loosely-typed monetary value to an integer.
// Currency symbols, thousand separators and surrounding whitespace are
// stripped, fractions are truncated toward zero, and anything that still
// fails to parse yields 0.
func ParseAmount(raw interface{}) int64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		s := strings.NewReplacer("₹", "", "Rs.", "", ",", "").Replace(v)
		s = strings.TrimSpace(s)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return int64(f)
	default:
		return 0
	}
}

// dateLayouts are the known encodings of date fields in bureau reports,
// tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"02-01-2006",
	"2006/01/02",
	"02/01/2006",
}

// ParseDate attempts each known date encoding in turn. The second return
// value is false when all fail, which means "exclude from date-based
// computations" rather than a fatal error.
func ParseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// FormatCurrency renders an integer amount with the rupee prefix and
// thousands grouping, e.g. FormatCurrency(100000) == "Rs.100,000".
func FormatCurrency(amount int64) string {
	return rupeePrinter.Sprintf("Rs.%d", amount)
}
