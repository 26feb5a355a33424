package enums

import (
	"fmt"
	"strings"
)

// Currency represents the denomination prices are quoted in.
type Currency string

const (
	CurrencyLYD Currency = "LYD"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

var validCurrencies = []Currency{
	CurrencyLYD,
	CurrencyUSD,
	CurrencyEUR,
}

var currencySymbols = map[Currency]string{
	CurrencyLYD: "د.ل",
	CurrencyUSD: "$",
	CurrencyEUR: "€",
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

// IsValid reports whether the currency is recognized.
func (c Currency) IsValid() bool {
	for _, candidate := range validCurrencies {
		if candidate == c {
			return true
		}
	}
	return false
}

// Symbol is the display symbol written after amounts.
func (c Currency) Symbol() string {
	return currencySymbols[c]
}

// ParseCurrency converts a raw string into a Currency.
func ParseCurrency(value string) (Currency, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validCurrencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid currency %q", value)
}
