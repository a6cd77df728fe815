// Package pricing provides the rule set consulted when pricing scanned items.
// A RuleSet is immutable after construction and safe to share between baskets.
package pricing

import (
	"fmt"

	"checkout-pricing/core/types"
	cerrors "checkout-pricing/internal/errors"
)

// RuleSet is an ordered collection of pricing rules keyed by product.
type RuleSet struct {
	// rules holds the effective rules in the order they were supplied
	rules []types.PricingRule

	// byProduct provides O(1) lookup; the first rule for a product wins
	byProduct map[string]types.PricingRule
}

// NewRuleSet stores the rules as given. Malformed rules are accepted as-is and
// duplicate product ids are dropped, keeping the first occurrence.
func NewRuleSet(rules ...types.PricingRule) *RuleSet {
	rs := &RuleSet{
		rules:     make([]types.PricingRule, 0, len(rules)),
		byProduct: make(map[string]types.PricingRule, len(rules)),
	}
	for _, rule := range rules {
		if _, seen := rs.byProduct[rule.ProductID]; seen {
			continue
		}
		rs.byProduct[rule.ProductID] = rule
		rs.rules = append(rs.rules, rule)
	}
	return rs
}

// FindRule returns the rule for productID, if any
func (rs *RuleSet) FindRule(productID string) (types.PricingRule, bool) {
	if rs == nil {
		return types.PricingRule{}, false
	}
	rule, ok := rs.byProduct[productID]
	return rule, ok
}

// Rules returns a copy of the effective rules in supplied order
func (rs *RuleSet) Rules() []types.PricingRule {
	if rs == nil {
		return nil
	}
	out := make([]types.PricingRule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len returns the number of effective rules
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Quote prices quantity units of a product from scratch.
// Unknown products cost nothing. A price that does not fit in Money is an
// INPUT_ERROR wrapping types.ErrOverflow.
func (rs *RuleSet) Quote(productID string, quantity int) (types.Money, error) {
	rule, ok := rs.FindRule(productID)
	if !ok {
		return 0, nil
	}
	cost, err := rule.QuantityCost(quantity)
	if err != nil {
		return 0, overflowError(productID, quantity, err)
	}
	return cost, nil
}

// QuoteAll prices a full set of quantities from scratch
func (rs *RuleSet) QuoteAll(quantities map[string]int) (types.Money, error) {
	var total types.Money
	for productID, qty := range quantities {
		cost, err := rs.Quote(productID, qty)
		if err != nil {
			return 0, err
		}
		if total, err = types.AddMoney(total, cost); err != nil {
			return 0, overflowError(productID, qty, err)
		}
	}
	return total, nil
}

func overflowError(productID string, quantity int, cause error) *cerrors.Error {
	return cerrors.Wrap(cerrors.TypeInput, fmt.Sprintf("price of %d x %q is out of range", quantity, productID), cause).
		WithContext("product", productID).
		WithContext("quantity", quantity)
}
