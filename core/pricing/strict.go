// Package pricing - Strict rule validation
package pricing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"checkout-pricing/core/types"
	cerrors "checkout-pricing/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// NewStrictRuleSet validates every rule before building the set.
// It rejects empty product ids, negative prices and amounts, negative
// thresholds, a discount amount without a threshold, a discount larger than
// the unit price and duplicate product ids.
func NewStrictRuleSet(rules ...types.PricingRule) (*RuleSet, error) {
	seen := make(map[string]int, len(rules))
	for i, rule := range rules {
		if err := ValidateRule(rule); err != nil {
			return nil, err.WithContext("index", i)
		}
		if first, dup := seen[rule.ProductID]; dup {
			return nil, cerrors.Rule(rule.ProductID, fmt.Sprintf("duplicate of rule at index %d", first)).
				WithContext("index", i)
		}
		seen[rule.ProductID] = i
	}
	return NewRuleSet(rules...), nil
}

// ValidateRule checks a single rule against the strict constraints
func ValidateRule(rule types.PricingRule) *cerrors.Error {
	err := validate.Struct(rule)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return cerrors.Internal("rule validation failed", err)
	}
	details := make(map[string]string, len(errs))
	messages := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		msg := validationMessage(fieldErr)
		details[fieldErr.Field()] = msg
		messages = append(messages, fieldErr.Field()+" "+msg)
	}
	return cerrors.Rule(rule.ProductID, strings.Join(messages, "; ")).WithContext("fields", details)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "required_with":
		return "is required when discount_amount is set"
	case "ltefield":
		return "must not exceed unit_price"
	}
	return "is invalid"
}
