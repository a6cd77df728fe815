// Package output provides output formatting for checkout summaries.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"checkout-pricing/core/types"
	cerrors "checkout-pricing/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given summary
	Render(w io.Writer, summary *Summary) error
}

// Summary is the result of a checkout or quote
type Summary struct {
	// SessionID identifies the checkout run
	SessionID string `json:"session_id,omitempty"`

	// Currency is the display currency
	Currency types.Currency `json:"currency"`

	// Total is the total in major units, e.g. "1.30"
	Total string `json:"total"`

	// TotalMinor is the total in minor units
	TotalMinor types.Money `json:"total_minor"`

	// Items lists per-product quantities, sorted by product
	Items []ItemSummary `json:"items,omitempty"`
}

// ItemSummary describes one product in the summary
type ItemSummary struct {
	// Product is the product id
	Product string `json:"product"`

	// Quantity is the number of units scanned or quoted
	Quantity int `json:"quantity"`

	// Priced is false for products without a pricing rule
	Priced bool `json:"priced"`

	// Subtotal is the product's share of the total in major units
	Subtotal string `json:"subtotal,omitempty"`
}

// Money converts minor units into a fixed-point major-unit amount
func Money(minor types.Money, minorUnits int32) decimal.Decimal {
	return decimal.New(minor, -minorUnits)
}

// FormatMoney renders minor units with exactly minorUnits decimal places
func FormatMoney(minor types.Money, minorUnits int32) string {
	return Money(minor, minorUnits).StringFixed(minorUnits)
}

// SortItems orders items by product id
func SortItems(items []ItemSummary) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Product < items[j].Product
	})
}

// New returns the formatter for format
func New(format Format) (Formatter, error) {
	switch format {
	case FormatCLI, "":
		return CLIFormatter{}, nil
	case FormatJSON:
		return JSONFormatter{}, nil
	}
	return nil, cerrors.NotSupported("output format " + string(format))
}

// CLIFormatter renders a boxed table
type CLIFormatter struct{}

// Format returns the format type
func (CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the summary table
func (CLIFormatter) Render(w io.Writer, summary *Summary) error {
	const width = 44
	border := strings.Repeat("─", width)

	var b strings.Builder
	fmt.Fprintf(&b, "┌%s┐\n", border)
	fmt.Fprintf(&b, "│ %-*s │\n", width-2, "CHECKOUT SUMMARY")
	fmt.Fprintf(&b, "├%s┤\n", border)
	for _, item := range summary.Items {
		price := item.Subtotal
		if !item.Priced {
			price = "not priced"
		}
		fmt.Fprintf(&b, "│ %-20s %5d %15s │\n", truncate(item.Product, 20), item.Quantity, price)
	}
	if len(summary.Items) > 0 {
		fmt.Fprintf(&b, "├%s┤\n", border)
	}
	fmt.Fprintf(&b, "│ %-20s %21s │\n", "TOTAL", summary.Total+" "+summary.Currency.String())
	fmt.Fprintf(&b, "└%s┘\n", border)

	_, err := io.WriteString(w, b.String())
	return err
}

// JSONFormatter renders indented JSON
type JSONFormatter struct{}

// Format returns the format type
func (JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the summary as JSON
func (JSONFormatter) Render(w io.Writer, summary *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

// truncate shortens s to maxLen runes, never splitting a rune
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}
