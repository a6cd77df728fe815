// Package checkout accumulates scanned items and keeps a running total.
package checkout

import (
	"sync"

	"checkout-pricing/core/pricing"
	"checkout-pricing/core/types"
)

// Basket tracks per-product quantities and the running total for one checkout.
// Each Scan is applied atomically, so a Basket may be shared, but scans from
// different goroutines land in an unspecified order.
type Basket struct {
	rules *pricing.RuleSet

	mu     sync.Mutex
	counts map[string]int
	total  types.Money
}

// NewBasket creates an empty basket bound to rules for its lifetime
func NewBasket(rules *pricing.RuleSet) *Basket {
	return &Basket{
		rules:  rules,
		counts: make(map[string]int),
	}
}

// Scan registers one unit of productID and adds its incremental cost.
// Products without a rule are counted but priced at zero.
func (b *Basket) Scan(productID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.counts[productID]++
	q := b.counts[productID]

	rule, ok := b.rules.FindRule(productID)
	if !ok {
		return
	}
	b.total += rule.IncrementalCost(q)
}

// ScanAll scans each product in order
func (b *Basket) ScanAll(productIDs ...string) {
	for _, id := range productIDs {
		b.Scan(id)
	}
}

// TotalPrice returns the accumulated total
func (b *Basket) TotalPrice() types.Money {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// Quantity returns how many units of productID have been scanned
func (b *Basket) Quantity(productID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts[productID]
}

// Quantities returns a copy of all scanned quantities
func (b *Basket) Quantities() map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]int, len(b.counts))
	for id, qty := range b.counts {
		out[id] = qty
	}
	return out
}

// Rules returns the rule set the basket was created with
func (b *Basket) Rules() *pricing.RuleSet {
	return b.rules
}
