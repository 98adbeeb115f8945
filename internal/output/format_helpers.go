package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatWhole rounds to whole currency units and groups thousands,
// e.g. 152344.42 -> "152,344".
func FormatWhole(amount decimal.Decimal) string {
	s := amount.RoundBank(0).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg && s != "0" {
		return "-" + b.String()
	}
	return b.String()
}

// FormatCurrency formats whole units with a dollar sign.
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + FormatWhole(amount.Neg())
	}
	return "$" + FormatWhole(amount)
}

// FormatPercentage formats a percentage value with 2 decimals.
func FormatPercentage(pct decimal.Decimal) string { return pct.StringFixed(2) + "%" }

// FormatMoney renders full cents for machine-readable outputs.
func FormatMoney(amount decimal.Decimal) string { return amount.StringFixed(2) }
