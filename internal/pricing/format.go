package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Formatter renders money with two decimals followed by the currency symbol.
type Formatter struct {
	Symbol string
}

func (f Formatter) Format(amount decimal.Decimal) string {
	text := amount.StringFixed(minorUnits)
	if strings.TrimSpace(f.Symbol) == "" {
		return text
	}
	return text + " " + f.Symbol
}

// FormatDiscount renders a discount as a negative amount.
func (f Formatter) FormatDiscount(amount decimal.Decimal) string {
	if amount.IsZero() {
		return f.Format(amount)
	}
	return f.Format(amount.Neg())
}
