// Package types - Checked money arithmetic
package types

import (
	"errors"
	"math"
)

// ErrOverflow is returned when an amount does not fit in Money
var ErrOverflow = errors.New("money overflow")

// MulMoney returns a*b, or ErrOverflow if the product does not fit
func MulMoney(a, b Money) (Money, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, ErrOverflow
	}
	c := a * b
	if c/b != a {
		return 0, ErrOverflow
	}
	return c, nil
}

// AddMoney returns a+b, or ErrOverflow if the sum does not fit
func AddMoney(a, b Money) (Money, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// SubMoney returns a-b, or ErrOverflow if the difference does not fit
func SubMoney(a, b Money) (Money, error) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, ErrOverflow
	}
	return a - b, nil
}
