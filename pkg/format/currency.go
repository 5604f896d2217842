// Package format renders monetary values and percentages for display.
package format

import (
	"math"

	"github.com/iwvelando/trident/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if mathutil.Round(amount) < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// WholeCurrency is Currency without cents, matching the dashboard metric cards (e.g., "$112,500").
func WholeCurrency(amount float64) string {
	formatted := printer.Sprintf("%.0f", math.Abs(amount))
	if math.Round(amount) < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent renders a percentage with one decimal (e.g., "18.0%").
func Percent(value float64) string {
	return printer.Sprintf("%.1f%%", value)
}

func formatPositiveCurrency(value float64) string {
	return printer.Sprintf("%.2f", value)
}
