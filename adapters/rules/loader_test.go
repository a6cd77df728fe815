package rules

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-pricing/core/types"
	cerrors "checkout-pricing/internal/errors"
)

var kataRules = []types.PricingRule{
	types.NewDiscountRule("A", 50, 3, 20),
	types.NewDiscountRule("B", 30, 2, 15),
	types.NewRule("C", 20),
	types.NewRule("D", 15),
}

// TestLoadFormatsAgree loads the same rules from every supported format
func TestLoadFormatsAgree(t *testing.T) {
	for _, name := range []string{"kata.hcl", "kata.yaml", "kata.json"} {
		t.Run(name, func(t *testing.T) {
			rules, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			assert.Equal(t, kataRules, rules)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"rules.hcl":      FormatHCL,
		"RULES.HCL":      FormatHCL,
		"shop/rules.yml": FormatYAML,
		"rules.yaml":     FormatYAML,
		"rules.json":     FormatJSON,
	}
	for path, expected := range tests {
		format, err := DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, expected, format, path)
	}

	_, err := DetectFormat("rules.toml")
	assert.True(t, cerrors.IsType(err, cerrors.TypeNotSupported))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "rules.hcl"))
	require.Error(t, err)
	assert.True(t, cerrors.IsType(err, cerrors.TypeNotFound))
}

func TestLoadRuleSet(t *testing.T) {
	rs, err := LoadRuleSet(filepath.Join("testdata", "kata.hcl"), true)
	require.NoError(t, err)
	assert.Equal(t, 4, rs.Len())
	quoted, err := rs.Quote("A", 3)
	require.NoError(t, err)
	assert.Equal(t, types.Money(130), quoted)
}

func TestLoadRuleSetStrictRejectsOversizedDiscount(t *testing.T) {
	path := filepath.Join("testdata", "oversized_discount.yaml")

	lenient, err := LoadRuleSet(path, false)
	require.NoError(t, err)
	quoted, err := lenient.Quote("A", 3)
	require.NoError(t, err)
	assert.Equal(t, types.Money(100), quoted)

	_, err = LoadRuleSet(path, true)
	require.Error(t, err)
	assert.True(t, cerrors.IsType(err, cerrors.TypeRule))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		src     string
		message string
	}{
		{"hcl syntax", FormatHCL, `rule "A" {`, "rules.hcl:"},
		{"hcl missing price", FormatHCL, `rule "A" {}`, "unit_price"},
		{"hcl fractional price", FormatHCL, "rule \"A\" {\n  unit_price = 12.5\n}", "rules.hcl:2: unit_price must be a whole number"},
		{"hcl string price", FormatHCL, `rule "A" { unit_price = "50" }`, "must be a number, got string"},
		{"hcl unknown block", FormatHCL, `product "A" { unit_price = 50 }`, "rules.hcl:1: Unsupported block type"},
		{"hcl two discounts", FormatHCL, "rule \"A\" {\n  unit_price = 50\n  discount {\n    every = 2\n    amount = 5\n  }\n  discount {\n    every = 3\n    amount = 5\n  }\n}", "more than one discount block"},
		{"hcl incomplete discount", FormatHCL, "rule \"A\" {\n  unit_price = 50\n  discount {\n    every = 2\n  }\n}", "amount"},
		{"yaml unknown key", FormatYAML, "rules:\n  - product: A\n    price: 50\n", "failed to parse rules.hcl"},
		{"json unknown key", FormatJSON, `{"rules":[{"product":"A","price":50}]}`, "failed to parse rules.hcl"},
		{"json truncated", FormatJSON, `{"rules":[`, "failed to parse"},
		{"json trailing document", FormatJSON, `{"rules":[]} {"rules":[]}`, "unexpected data after rules document"},
		{"json trailing garbage", FormatJSON, `{"rules":[{"product":"A","unit_price":5}]} garbage`, "unexpected data after rules document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.format, []byte(tt.src), "rules.hcl")
			require.Error(t, err)
			assert.True(t, cerrors.IsType(err, cerrors.TypeParsing), "unexpected error type: %v", err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestDecodeEmptyDocuments(t *testing.T) {
	rules, err := Decode(FormatYAML, nil, "empty.yaml")
	require.NoError(t, err)
	assert.Empty(t, rules)

	rules, err = Decode(FormatHCL, nil, "empty.hcl")
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestDecodeJSONAllowsTrailingWhitespace(t *testing.T) {
	rules, err := Decode(FormatJSON, []byte("{\"rules\":[{\"product\":\"C\",\"unit_price\":20}]}\n\n"), "rules.json")
	require.NoError(t, err)
	assert.Equal(t, []types.PricingRule{types.NewRule("C", 20)}, rules)
}
