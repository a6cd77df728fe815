// Package cmd - rules command
package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"checkout-pricing/core/output"
	"checkout-pricing/core/types"
	"checkout-pricing/internal/config"
)

// rulesCmd lists the effective pricing rules
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the effective pricing rules",
	Long: `Load the rule file and list the rules a basket would use. Duplicate
products are shown once, keeping the first rule. With --strict the file is
validated and the first malformed rule is reported.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	rs, err := loadRuleSet()
	if err != nil {
		return err
	}

	if output.Format(resolveFormat()) == output.FormatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rs.Rules())
	}

	minorUnits := config.Get().Pricing.MinorUnits
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tUNIT PRICE\tDISCOUNT")
	for _, rule := range rs.Rules() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", rule.ProductID, output.FormatMoney(rule.UnitPrice, minorUnits), describeDiscount(rule, minorUnits))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "\n%d rules, fingerprint %s\n", rs.Len(), rs.Fingerprint()[:16])
	return err
}

func describeDiscount(rule types.PricingRule, minorUnits int32) string {
	if !rule.HasDiscount() {
		return "-"
	}
	return fmt.Sprintf("-%s on every %s unit", output.FormatMoney(rule.DiscountAmount, minorUnits), ordinal(rule.DiscountEveryN))
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
