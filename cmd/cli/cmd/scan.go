// Package cmd - scan command
package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"checkout-pricing/core/checkout"
	"checkout-pricing/core/output"
	"checkout-pricing/core/pricing"
	"checkout-pricing/internal/config"
	"checkout-pricing/internal/logging"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [item...]",
	Short: "Scan items into a basket and print the total",
	Long: `Scan product ids into a new basket in the order given and print the
running total. With no arguments, whitespace-separated ids are read from stdin.
Products without a rule are counted but cost nothing.

Examples:
  checkout scan --rules rules.hcl A A B A
  checkout scan --rules rules.yaml --format json < items.txt`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	rs, err := loadRuleSet()
	if err != nil {
		return err
	}

	items := args
	if len(items) == 0 {
		if items, err = readItems(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("failed to read items: %w", err)
		}
	}

	sessionID := uuid.NewString()
	basket := scanItems(rs, items, logging.ForCheckout(sessionID))

	formatter, err := output.New(output.Format(resolveFormat()))
	if err != nil {
		return err
	}
	cfg := config.Get()
	summary, err := output.NewSummary(rs, basket.Quantities(), basket.TotalPrice(), output.SummaryOptions{
		SessionID:      sessionID,
		Currency:       cfg.Pricing.Currency,
		MinorUnits:     cfg.Pricing.MinorUnits,
		ShowQuantities: cfg.Output.ShowQuantities,
	})
	if err != nil {
		return err
	}
	return formatter.Render(cmd.OutOrStdout(), summary)
}

func scanItems(rs *pricing.RuleSet, items []string, log *zap.Logger) *checkout.Basket {
	basket := checkout.NewBasket(rs)
	for _, item := range items {
		basket.Scan(item)
		log.Debug("Scanned item",
			zap.String("product", item),
			zap.Int("quantity", basket.Quantity(item)),
			zap.Int64("running_total", basket.TotalPrice()))
	}
	log.Info("Checkout complete",
		zap.Int("items", len(items)),
		zap.Int64("total", basket.TotalPrice()))
	return basket
}

func readItems(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var items []string
	for scanner.Scan() {
		items = append(items, scanner.Text())
	}
	return items, scanner.Err()
}
