// Package types - Pricing rule types
package types

// PricingRule maps a product to its unit price and an optional
// "every Nth unit" discount.
type PricingRule struct {
	// ProductID identifies the product this rule prices
	ProductID string `json:"product" yaml:"product" validate:"required"`

	// UnitPrice is the price of a single unit in minor units
	UnitPrice Money `json:"unit_price" yaml:"unit_price" validate:"gte=0"`

	// DiscountEveryN is the unit interval that triggers the discount (0 = no discount)
	DiscountEveryN int `json:"discount_every,omitempty" yaml:"discount_every,omitempty" validate:"gte=0,required_with=DiscountAmount"`

	// DiscountAmount is deducted from the Nth, 2Nth, ... unit
	DiscountAmount Money `json:"discount_amount,omitempty" yaml:"discount_amount,omitempty" validate:"gte=0,ltefield=UnitPrice"`
}

// NewRule creates a rule without a discount
func NewRule(productID string, unitPrice Money) PricingRule {
	return PricingRule{
		ProductID: productID,
		UnitPrice: unitPrice,
	}
}

// NewDiscountRule creates a rule that deducts amount from every nth unit
func NewDiscountRule(productID string, unitPrice Money, everyN int, amount Money) PricingRule {
	return PricingRule{
		ProductID:      productID,
		UnitPrice:      unitPrice,
		DiscountEveryN: everyN,
		DiscountAmount: amount,
	}
}

// HasDiscount reports whether the rule carries an active discount.
// Non-positive thresholds disable the discount.
func (r PricingRule) HasDiscount() bool {
	return r.DiscountEveryN > 0
}

// IsFor reports whether the rule prices the given product
func (r PricingRule) IsFor(productID string) bool {
	return r.ProductID == productID
}

// IncrementalCost returns what scanning the unit that brings the product's
// cumulative quantity to q adds to the running total. It never goes below zero.
func (r PricingRule) IncrementalCost(q int) Money {
	if !r.HasDiscount() || q <= 0 || q%r.DiscountEveryN != 0 {
		return r.UnitPrice
	}
	cost := r.UnitPrice - r.DiscountAmount
	if cost < 0 {
		return 0
	}
	return cost
}

// QuantityCost prices q units from scratch. It always equals the sum of
// IncrementalCost(1..q), and returns ErrOverflow when that sum does not fit.
func (r PricingRule) QuantityCost(q int) (Money, error) {
	if q <= 0 {
		return 0, nil
	}
	total, err := MulMoney(Money(q), r.UnitPrice)
	if err != nil {
		return 0, err
	}
	if !r.HasDiscount() {
		return total, nil
	}
	perUnit, err := SubMoney(r.UnitPrice, r.IncrementalCost(r.DiscountEveryN))
	if err != nil {
		return 0, err
	}
	deducted, err := MulMoney(Money(q/r.DiscountEveryN), perUnit)
	if err != nil {
		return 0, err
	}
	return SubMoney(total, deducted)
}
