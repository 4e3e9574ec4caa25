// Package format renders numbers and dates for the es-CL audience the
// dashboard serves. Currency is Chilean peso, always without decimals.
package format

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-CL"))

var shortMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// CLP formats a peso amount with thousands separators and no decimals.
func CLP(value float64) string {
	return printer.Sprintf("$%v", number.Decimal(value, number.MaxFractionDigits(0)))
}

// Number formats a plain number with locale thousands separators.
func Number(value float64) string {
	return printer.Sprintf("%v", number.Decimal(value, number.MaxFractionDigits(0)))
}

// Percent renders a percentage with a fixed number of decimals.
func Percent(value float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, value)
}

// Compact abbreviates large values for KPI cards: 1.5K, 2.5M, 3.2B.
func Compact(value float64) string {
	switch {
	case value >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", value/1_000_000_000)
	case value >= 1_000_000:
		return fmt.Sprintf("%.1fM", value/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("%.1fK", value/1_000)
	default:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
}

// RelativeDate renders "hace 5 min", "hace 3h", "hace 2d" or a short date
// once the event is a week old.
func RelativeDate(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("hace %d min", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("hace %dh", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("hace %dd", int(diff.Hours()/24))
	default:
		return ShortDate(t)
	}
}

// ShortDate renders "4 feb".
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), shortMonths[t.Month()-1])
}

// Date renders "4 feb 2026".
func Date(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}
