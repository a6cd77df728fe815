package rules

import (
	"bytes"
	"encoding/json"
	"errors"

	"checkout-pricing/core/types"
	cerrors "checkout-pricing/internal/errors"
)

// JSONDecoder decodes a {"rules": [...]} document
type JSONDecoder struct{}

// Format returns the format handled by this decoder
func (JSONDecoder) Format() Format {
	return FormatJSON
}

// Decode parses the rules list, rejecting unknown keys
func (JSONDecoder) Decode(src []byte, filename string) ([]types.PricingRule, error) {
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.DisallowUnknownFields()

	var doc ruleFile
	if err := dec.Decode(&doc); err != nil {
		return nil, cerrors.Parsing("failed to parse "+filename, err)
	}
	if dec.More() {
		return nil, cerrors.Parsing("failed to parse "+filename, errors.New("unexpected data after rules document"))
	}
	return doc.Rules, nil
}
