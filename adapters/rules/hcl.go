// Package rules - HCL rule files
//
//	rule "A" {
//	  unit_price = 50
//	  discount {
//	    every  = 3
//	    amount = 20
//	  }
//	}
package rules

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"checkout-pricing/core/types"
	cerrors "checkout-pricing/internal/errors"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "rule", LabelNames: []string{"product"}},
	},
}

var ruleSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "unit_price", Required: true},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "discount"},
	},
}

var discountSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "every", Required: true},
		{Name: "amount", Required: true},
	},
}

// HCLDecoder decodes rule blocks from HCL source
type HCLDecoder struct{}

// NewHCLDecoder creates a new HCL decoder
func NewHCLDecoder() *HCLDecoder {
	return &HCLDecoder{}
}

// Format returns the format handled by this decoder
func (d *HCLDecoder) Format() Format {
	return FormatHCL
}

// Decode parses rule blocks in declaration order
func (d *HCLDecoder) Decode(src []byte, filename string) ([]types.PricingRule, error) {
	// A fresh parser per call; hclparse.Parser caches files by name.
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	rules := make([]types.PricingRule, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		rule, err := decodeRuleBlock(block, filename)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func decodeRuleBlock(block *hcl.Block, filename string) (types.PricingRule, error) {
	rule := types.PricingRule{ProductID: block.Labels[0]}

	content, diags := block.Body.Content(ruleSchema)
	if diags.HasErrors() {
		return rule, diagnosticsError(filename, diags)
	}

	price, err := intAttribute(content.Attributes["unit_price"], filename)
	if err != nil {
		return rule, err
	}
	rule.UnitPrice = price

	switch len(content.Blocks) {
	case 0:
		return rule, nil
	case 1:
	default:
		return rule, cerrors.Parsing(fmt.Sprintf("%s:%d: rule %q declares more than one discount block",
			filename, content.Blocks[1].DefRange.Start.Line, rule.ProductID), nil)
	}

	discount, diags := content.Blocks[0].Body.Content(discountSchema)
	if diags.HasErrors() {
		return rule, diagnosticsError(filename, diags)
	}
	every, err := intAttribute(discount.Attributes["every"], filename)
	if err != nil {
		return rule, err
	}
	amount, err := intAttribute(discount.Attributes["amount"], filename)
	if err != nil {
		return rule, err
	}
	rule.DiscountEveryN = int(every)
	rule.DiscountAmount = amount
	return rule, nil
}

// intAttribute evaluates a constant attribute as a whole number
func intAttribute(attr *hcl.Attribute, filename string) (int64, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return 0, diagnosticsError(filename, diags)
	}

	line := attr.Range.Start.Line
	if val.IsNull() || !val.IsKnown() {
		return 0, cerrors.Parsing(fmt.Sprintf("%s:%d: %s must be a known number", filename, line, attr.Name), nil)
	}
	if !val.Type().Equals(cty.Number) {
		return 0, cerrors.Parsing(fmt.Sprintf("%s:%d: %s must be a number, got %s",
			filename, line, attr.Name, val.Type().FriendlyName()), nil)
	}

	bf := val.AsBigFloat()
	if !bf.IsInt() {
		return 0, cerrors.Parsing(fmt.Sprintf("%s:%d: %s must be a whole number of minor units", filename, line, attr.Name), nil)
	}
	n, acc := bf.Int64()
	if acc != big.Exact {
		return 0, cerrors.Parsing(fmt.Sprintf("%s:%d: %s is out of range", filename, line, attr.Name), nil)
	}
	return n, nil
}

func diagnosticsError(filename string, diags hcl.Diagnostics) error {
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		line := 0
		if diag.Subject != nil {
			line = diag.Subject.Start.Line
		}
		msg := fmt.Sprintf("%s:%d: %s", filename, line, diag.Summary)
		if diag.Detail != "" {
			msg += "; " + diag.Detail
		}
		return cerrors.Parsing(msg, nil).WithContext("line", line)
	}
	return cerrors.Parsing(filename, diags)
}
