// Package cmd - quote command
package cmd

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"checkout-pricing/core/output"
	"checkout-pricing/internal/config"
	cerrors "checkout-pricing/internal/errors"
	"checkout-pricing/internal/logging"
)

// quoteCmd prices quantities without scanning unit by unit
var quoteCmd = &cobra.Command{
	Use:   "quote ITEM=QTY...",
	Short: "Price product quantities in one step",
	Long: `Price each product quantity from scratch. The result always matches
scanning the same units one at a time.

Examples:
  checkout quote --rules rules.hcl A=3 B=2 C=1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuote,
}

func runQuote(cmd *cobra.Command, args []string) error {
	quantities, err := parseQuantities(args)
	if err != nil {
		return err
	}

	rs, err := loadRuleSet()
	if err != nil {
		return err
	}

	formatter, err := output.New(output.Format(resolveFormat()))
	if err != nil {
		return err
	}
	total, err := rs.QuoteAll(quantities)
	if err != nil {
		return err
	}
	logging.Info("Quote complete",
		zap.Int("products", len(quantities)),
		zap.Int64("total", total))

	cfg := config.Get()
	summary, err := output.NewSummary(rs, quantities, total, output.SummaryOptions{
		Currency:       cfg.Pricing.Currency,
		MinorUnits:     cfg.Pricing.MinorUnits,
		ShowQuantities: cfg.Output.ShowQuantities,
	})
	if err != nil {
		return err
	}
	return formatter.Render(cmd.OutOrStdout(), summary)
}

// parseQuantities parses ITEM=QTY pairs; repeated items are summed
func parseQuantities(args []string) (map[string]int, error) {
	quantities := make(map[string]int, len(args))
	for _, arg := range args {
		product, rawQty, ok := strings.Cut(arg, "=")
		product = strings.TrimSpace(product)
		if !ok || product == "" {
			return nil, cerrors.Input("expected ITEM=QTY, got " + strconv.Quote(arg))
		}
		qty, err := strconv.Atoi(strings.TrimSpace(rawQty))
		if err != nil || qty < 0 {
			return nil, cerrors.Input("quantity must be a non-negative integer in " + strconv.Quote(arg))
		}
		if quantities[product] > math.MaxInt-qty {
			return nil, cerrors.Input("total quantity of " + strconv.Quote(product) + " is out of range")
		}
		quantities[product] += qty
	}
	return quantities, nil
}
