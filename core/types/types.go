// Package types defines core domain types shared across all layers.
// This package contains NO business logic beyond per-rule pricing math.
package types

// Money is a monetary amount in minor currency units (e.g. pence, cents).
type Money = int64

// Currency represents a currency code used for display only
type Currency string

const (
	CurrencyGBP Currency = "GBP"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}
