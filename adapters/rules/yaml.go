package rules

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"checkout-pricing/core/types"
	cerrors "checkout-pricing/internal/errors"
)

// ruleFile is the document shape shared by the YAML and JSON formats
type ruleFile struct {
	Rules []types.PricingRule `json:"rules" yaml:"rules"`
}

// YAMLDecoder decodes a `rules:` list from YAML source
type YAMLDecoder struct{}

// Format returns the format handled by this decoder
func (YAMLDecoder) Format() Format {
	return FormatYAML
}

// Decode parses the rules list, rejecting unknown keys
func (YAMLDecoder) Decode(src []byte, filename string) ([]types.PricingRule, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var doc ruleFile
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, cerrors.Parsing("failed to parse "+filename, err)
	}
	return doc.Rules, nil
}
