package output

import (
	"checkout-pricing/core/pricing"
	"checkout-pricing/core/types"
)

// SummaryOptions controls how amounts are displayed
type SummaryOptions struct {
	SessionID      string
	Currency       types.Currency
	MinorUnits     int32
	ShowQuantities bool
}

// NewSummary builds a summary for the given quantities and total.
// Per-product subtotals come from rs.Quote.
func NewSummary(rs *pricing.RuleSet, quantities map[string]int, total types.Money, opts SummaryOptions) (*Summary, error) {
	summary := &Summary{
		SessionID:  opts.SessionID,
		Currency:   opts.Currency,
		Total:      FormatMoney(total, opts.MinorUnits),
		TotalMinor: total,
	}
	if !opts.ShowQuantities {
		return summary, nil
	}

	summary.Items = make([]ItemSummary, 0, len(quantities))
	for product, qty := range quantities {
		item := ItemSummary{Product: product, Quantity: qty}
		if _, ok := rs.FindRule(product); ok {
			item.Priced = true
			subtotal, err := rs.Quote(product, qty)
			if err != nil {
				return nil, err
			}
			item.Subtotal = FormatMoney(subtotal, opts.MinorUnits)
		}
		summary.Items = append(summary.Items, item)
	}
	SortItems(summary.Items)
	return summary, nil
}
