// Package rules loads pricing rules from files.
// The file extension selects the decoder: .hcl, .yaml/.yml or .json.
package rules

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"checkout-pricing/core/pricing"
	"checkout-pricing/core/types"
	cerrors "checkout-pricing/internal/errors"
	"checkout-pricing/internal/logging"
)

// Format identifies a rule file format
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Decoder turns raw file content into pricing rules
type Decoder interface {
	// Format returns the format handled by this decoder
	Format() Format

	// Decode parses src; filename is only used in error messages
	Decode(src []byte, filename string) ([]types.PricingRule, error)
}

var decoders = map[Format]Decoder{
	FormatHCL:  NewHCLDecoder(),
	FormatYAML: YAMLDecoder{},
	FormatJSON: JSONDecoder{},
}

// DetectFormat maps a file name to its rule format
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", cerrors.NotSupported("rule file extension " + filepath.Ext(path)).WithContext("path", path)
}

// Decode parses src using the decoder registered for format
func Decode(format Format, src []byte, filename string) ([]types.PricingRule, error) {
	decoder, ok := decoders[format]
	if !ok {
		return nil, cerrors.NotSupported("rule format " + string(format))
	}
	return decoder.Decode(src, filename)
}

// Load reads a rule file and returns its rules in file order
func Load(path string) ([]types.PricingRule, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cerrors.NotFound("rule file", path)
		}
		return nil, cerrors.Internal("failed to read rule file", err).WithContext("path", path)
	}

	rules, err := Decode(format, src, path)
	if err != nil {
		return nil, err
	}

	logging.Debug("Loaded pricing rules",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("count", len(rules)))
	return rules, nil
}

// LoadRuleSet loads a rule file and builds a rule set from it.
// With strict set, every rule is validated first.
func LoadRuleSet(path string, strict bool) (*pricing.RuleSet, error) {
	rules, err := Load(path)
	if err != nil {
		return nil, err
	}
	if !strict {
		return pricing.NewRuleSet(rules...), nil
	}
	rs, err := pricing.NewStrictRuleSet(rules...)
	if err != nil {
		logging.Warn("Rejected pricing rules", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return rs, nil
}
