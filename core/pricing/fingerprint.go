// Package pricing - Rule set fingerprint
package pricing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint returns a content hash of the effective rules in order.
// Two rule sets price every basket identically when their fingerprints match.
func (rs *RuleSet) Fingerprint() string {
	h := sha256.New()
	for _, rule := range rs.Rules() {
		// Negative thresholds price like no discount, so they hash like 0/0.
		every, amount := rule.DiscountEveryN, rule.DiscountAmount
		if !rule.HasDiscount() {
			every, amount = 0, 0
		}
		fmt.Fprintf(h, "%q\x00%d\x00%d\x00%d\n", rule.ProductID, rule.UnitPrice, every, amount)
	}
	return hex.EncodeToString(h.Sum(nil))
}
