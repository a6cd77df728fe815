package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageIncludesCause(t *testing.T) {
	err := Parsing("failed to parse rules.hcl", fmt.Errorf("unexpected token"))
	assert.Equal(t, "[PARSING_ERROR] failed to parse rules.hcl: unexpected token", err.Error())
}

func TestIsTypeSeesThroughWrapping(t *testing.T) {
	inner := Rule("A", "discount_amount exceeds unit_price")
	outer := fmt.Errorf("load rules: %w", inner)

	assert.True(t, IsType(outer, TypeRule))
	assert.False(t, IsType(outer, TypeParsing))
	assert.False(t, IsType(fmt.Errorf("plain"), TypeRule))
}

func TestRuleCarriesProductContext(t *testing.T) {
	err := Rule("B", "unit_price must be >= 0")
	require.NotNil(t, err.Context)
	assert.Equal(t, "B", err.Context["product"])
	assert.True(t, IsType(err, TypeRule))
}
