package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCurrency is returned when a currency code is not in the reference table.
var ErrUnknownCurrency = errors.New("unknown currency")

// Currency is a fixed reference entry. Rate is relative to the base currency (rate 1.0).
type Currency struct {
	Code   string  `json:"code"`
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
}

// BaseCurrencyCode is the code of the rate-1.0 reference currency.
const BaseCurrencyCode = "USD"

// Currencies is the read-only reference table, in picker order.
// Entry 0 is the base currency.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar", Rate: 1.0},
	{Code: "EUR", Symbol: "€", Name: "Euro", Rate: 0.85},
	{Code: "GBP", Symbol: "£", Name: "British Pound", Rate: 0.75},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", Rate: 110.0},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar", Rate: 1.25},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar", Rate: 1.35},
}

// DefaultCurrency returns the base currency.
func DefaultCurrency() Currency {
	return Currencies[0]
}

// LookupCurrency finds a currency by code, case-insensitively.
func LookupCurrency(code string) (Currency, bool) {
	i := currencyIndex(code)
	if i < 0 {
		return Currency{}, false
	}
	return Currencies[i], true
}

// ResolveCurrency is LookupCurrency with an error for boundary code paths.
// An empty code resolves to the base currency.
func ResolveCurrency(code string) (Currency, error) {
	if strings.TrimSpace(code) == "" {
		return DefaultCurrency(), nil
	}
	c, ok := LookupCurrency(code)
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return c, nil
}

// NextCurrency returns the code following code in the table, wrapping around.
// Unknown codes start over at the base currency.
func NextCurrency(code string) string {
	i := currencyIndex(code)
	if i < 0 {
		return Currencies[0].Code
	}
	return Currencies[(i+1)%len(Currencies)].Code
}

// PrevCurrency returns the code preceding code in the table, wrapping around.
func PrevCurrency(code string) string {
	i := currencyIndex(code)
	if i < 0 {
		return Currencies[0].Code
	}
	return Currencies[(i-1+len(Currencies))%len(Currencies)].Code
}

func currencyIndex(code string) int {
	code = strings.ToUpper(strings.TrimSpace(code))
	for i, c := range Currencies {
		if c.Code == code {
			return i
		}
	}
	return -1
}
