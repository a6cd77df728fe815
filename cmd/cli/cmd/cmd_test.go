package cmd

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-pricing/core/output"
	"checkout-pricing/core/types"
	"checkout-pricing/internal/config"
	cerrors "checkout-pricing/internal/errors"
)

var testdata = filepath.Join("..", "..", "..", "adapters", "rules", "testdata")

// execute runs the root command with fresh flag values and returns stdout
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgFile, verbose, rulesFile, strict, outputFormat = "", false, "", false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "absent.json")}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestScanJSON(t *testing.T) {
	out, err := execute(t, "", "scan", "--rules", filepath.Join(testdata, "kata.hcl"), "--format", "json", "A", "B", "A", "Z", "A")
	require.NoError(t, err)

	var summary output.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, types.Money(160), summary.TotalMinor)
	assert.Equal(t, "1.60", summary.Total)
	assert.NotEmpty(t, summary.SessionID)
	require.Len(t, summary.Items, 3)
	assert.False(t, summary.Items[2].Priced)
}

func TestScanReadsStdin(t *testing.T) {
	out, err := execute(t, "B B\nB\n B\n", "scan", "--rules", filepath.Join(testdata, "kata.yaml"), "--format", "json")
	require.NoError(t, err)

	var summary output.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, types.Money(90), summary.TotalMinor)
}

func TestScanCLITable(t *testing.T) {
	out, err := execute(t, "", "scan", "--rules", filepath.Join(testdata, "kata.json"), "C", "D")
	require.NoError(t, err)
	assert.Contains(t, out, "CHECKOUT SUMMARY")
	assert.Contains(t, out, "0.35 GBP")
}

func TestQuote(t *testing.T) {
	out, err := execute(t, "", "quote", "--rules", filepath.Join(testdata, "kata.hcl"), "-f", "json", "A=3", "B=2", "A=3")
	require.NoError(t, err)

	var summary output.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, types.Money(260+45), summary.TotalMinor)
}

func TestRulesListing(t *testing.T) {
	out, err := execute(t, "", "rules", "--rules", filepath.Join(testdata, "kata.hcl"), "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "-0.20 on every 3rd unit")
	assert.Contains(t, out, "-0.15 on every 2nd unit")
	assert.Contains(t, out, "4 rules, fingerprint ")
	assert.Equal(t, 7, strings.Count(out, "\n"))
}

func TestStrictRejectsMalformedRules(t *testing.T) {
	_, err := execute(t, "", "scan", "--rules", filepath.Join(testdata, "oversized_discount.yaml"), "--strict", "A")
	require.Error(t, err)
	assert.True(t, cerrors.IsType(err, cerrors.TypeRule))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "checkout version "+version+"\n", out)
}

func TestParseQuantities(t *testing.T) {
	quantities, err := parseQuantities([]string{"A=3", " B = 2", "A=1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 4, "B": 2}, quantities)

	for _, bad := range []string{"A", "=3", "A=x", "A=-1", "A=99999999999999999999"} {
		_, err := parseQuantities([]string{bad})
		assert.True(t, cerrors.IsType(err, cerrors.TypeInput), bad)
	}
}

func TestParseQuantitiesRejectsOverflowingSums(t *testing.T) {
	_, err := parseQuantities([]string{"A=" + strconv.Itoa(math.MaxInt), "A=1"})
	require.Error(t, err)
	assert.True(t, cerrors.IsType(err, cerrors.TypeInput))
}

func TestQuoteRejectsOutOfRangeTotals(t *testing.T) {
	out, err := execute(t, "", "quote", "--rules", filepath.Join(testdata, "kata.hcl"), "-f", "json", "C=922337203685477580")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrOverflow)
	assert.True(t, cerrors.IsType(err, cerrors.TypeInput))
	assert.Empty(t, out)
}

func TestConfigInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "checkout.json")

	out, err := execute(t, "", "config", "init", path)
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestOrdinal(t *testing.T) {
	expected := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 112: "112th"}
	for n, want := range expected {
		assert.Equal(t, want, ordinal(n))
	}
}
