// Package cmd provides the CLI commands for checkout.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"checkout-pricing/adapters/rules"
	"checkout-pricing/core/pricing"
	"checkout-pricing/internal/config"
	"checkout-pricing/internal/logging"
)

const version = "0.1.0"

var (
	cfgFile      string
	verbose      bool
	rulesFile    string
	strict       bool
	outputFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Price shopping baskets from quantity discount rules",
	Long: `checkout prices a basket of scanned items using per-product unit prices
and "every Nth unit" discounts loaded from a rule file (.hcl, .yaml, .json).

Examples:
  checkout scan --rules rules.hcl A B A A
  echo "A B A" | checkout scan --rules rules.yaml
  checkout quote --rules rules.hcl A=3 B=2
  checkout rules --rules rules.hcl --strict`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.checkout.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "pricing rule file (overrides pricing.rules_file)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "reject malformed or duplicate rules")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".checkout.json")
		}
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadRuleSet resolves the rule file and strictness from flags, then config
func loadRuleSet() (*pricing.RuleSet, error) {
	cfg := config.Get()
	path := rulesFile
	if path == "" {
		path = cfg.Pricing.RulesFile
	}
	return rules.LoadRuleSet(path, strict || cfg.Pricing.Strict)
}

func resolveFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	return config.Get().Output.DefaultFormat
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "checkout version %s\n", version)
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ".checkout.json"
		if len(args) > 0 {
			path = args[0]
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
