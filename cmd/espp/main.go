// Command espp calculates ESPP sale taxes from the terminal and can run the
// HTTP tool server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/mcp-espp-go/internal/calculations"
	"github.com/cloud-ru/mcp-espp-go/internal/config"
	"github.com/cloud-ru/mcp-espp-go/internal/importer"
	"github.com/cloud-ru/mcp-espp-go/internal/report"
	"github.com/cloud-ru/mcp-espp-go/internal/server"
	"github.com/cloud-ru/mcp-espp-go/internal/tools"
	"github.com/cloud-ru/mcp-espp-go/internal/tracing"
	"github.com/cloud-ru/mcp-espp-go/internal/validators"
	"github.com/cloud-ru/mcp-espp-go/pkg/utils"
)

// Build-time variables (set via -ldflags)
var (
	version = "dev"
	commit  = "unknown"
)

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "espp",
	Short:         "ESPP sale tax calculator",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.LogLevel = level
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	for _, cmd := range []*cobra.Command{calculateCmd, reportCmd} {
		addInputFlags(cmd)
	}
	calculateCmd.Flags().Bool("json", false, "print the result as JSON")

	rootCmd.AddCommand(versionCmd, calculateCmd, reportCmd, importCmd, serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "espp %s (%s)\n", version, commit)
	},
}

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate ordinary income, capital gain and tax for one ESPP sale",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := inputsFromFlags(cmd)
		if err != nil {
			return err
		}
		result := calculations.CalculateInputs(in)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		printSummary(cmd.OutOrStdout(), result)
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the text export for one ESPP sale",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := inputsFromFlags(cmd)
		if err != nil {
			return err
		}
		rep, err := report.NewGenerator().Generate(in, calculations.CalculateInputs(in))
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), rep.Text)
		return err
	},
}

var importCmd = &cobra.Command{
	Use:   "import [form-3922-line]",
	Short: "Parse a pasted Form 3922 line (argument or stdin) into calculator inputs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if len(args) == 1 {
			text = args[0]
		} else {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			text = string(data)
		}

		in, ok := importer.ParseForm3922(text, cfg.Defaults)
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "input does not match the Form 3922 format; nothing imported")
			return nil
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(in)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP tool server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tracer, shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTELServiceName, version, cfg.OTELEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				slog.Warn("tracer shutdown failed", "error", err)
			}
		}()

		toolset := tools.NewToolset(cfg, tracer, report.NewGenerator())
		return server.Run(ctx, cfg.Addr(), server.NewRouter(cfg, toolset))
	},
}

func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("offering-date", "", "offering (grant) date, YYYY-MM-DD (Form 3922 box 1)")
	f.String("purchase-date", "", "purchase (exercise) date, YYYY-MM-DD (box 2)")
	f.Float64("fmv-offering", 0, "fair market value per share on the offering date (box 3)")
	f.Float64("fmv-purchase", 0, "fair market value per share on the purchase date (box 4)")
	f.Float64("purchase-price", 0, "price paid per share (box 5)")
	f.Float64("discount", 0, "plan discount percentage (default from DEFAULT_DISCOUNT_PERCENT)")
	f.String("sale-date", "", "sale date, YYYY-MM-DD")
	f.Float64("sale-price", 0, "sale price per share")
	f.Float64("shares", 0, "number of shares sold")
	f.Float64("federal-rate", 0, "federal income tax rate as a fraction (default from DEFAULT_FEDERAL_RATE)")
	f.Float64("state-rate", 0, "state income tax rate as a fraction (default from DEFAULT_STATE_RATE)")
	f.Float64("long-term-rate", 0, "long-term capital gains rate (default from DEFAULT_LONG_TERM_RATE)")
	f.Float64("short-term-rate", 0, "short-term capital gains rate (default from DEFAULT_SHORT_TERM_RATE)")
}

// inputsFromFlags builds and validates inputs; unset rate and discount flags take config defaults
func inputsFromFlags(cmd *cobra.Command) (calculations.Inputs, error) {
	f := cmd.Flags()
	var in calculations.Inputs

	dates := []struct {
		flag string
		dst  *calculations.Date
	}{
		{"offering-date", &in.Purchase.OfferingDate},
		{"purchase-date", &in.Purchase.PurchaseDate},
		{"sale-date", &in.Sale.SaleDate},
	}
	for _, d := range dates {
		s, _ := f.GetString(d.flag)
		if s == "" {
			continue
		}
		parsed, err := calculations.ParseDate(s)
		if err != nil {
			return calculations.Inputs{}, fmt.Errorf("--%s: %w", d.flag, err)
		}
		*d.dst = parsed
	}

	numbers := []struct {
		flag     string
		dst      *float64
		fallback *float64
	}{
		{"fmv-offering", &in.Purchase.FairMarketValueAtOffering, nil},
		{"fmv-purchase", &in.Purchase.FairMarketValueAtPurchase, nil},
		{"purchase-price", &in.Purchase.PurchasePrice, nil},
		{"discount", &in.Purchase.DiscountPercentage, &cfg.Defaults.DiscountPercentage},
		{"sale-price", &in.Sale.SalePrice, nil},
		{"shares", &in.Sale.SharesSold, nil},
		{"federal-rate", &in.Tax.FederalIncomeTaxRate, &cfg.Defaults.FederalIncomeTaxRate},
		{"state-rate", &in.Tax.StateIncomeTaxRate, &cfg.Defaults.StateIncomeTaxRate},
		{"long-term-rate", &in.Tax.LongTermCapitalGainsRate, &cfg.Defaults.LongTermCapitalGainsRate},
		{"short-term-rate", &in.Tax.ShortTermCapitalGainsRate, &cfg.Defaults.ShortTermCapitalGainsRate},
	}
	for _, n := range numbers {
		v, _ := f.GetFloat64(n.flag)
		if n.fallback != nil && !f.Changed(n.flag) {
			v = *n.fallback
		}
		*n.dst = v
	}

	if err := validators.ValidateInputs(cfg, in); err != nil {
		return calculations.Inputs{}, fmt.Errorf("invalid input: %w", err)
	}
	return in, nil
}

func printSummary(w io.Writer, r calculations.CalculationResult) {
	disposition := "Disqualifying"
	if r.IsQualifyingDisposition {
		disposition = "Qualifying"
	}
	rows := [][2]string{
		{"Disposition", disposition},
		{"Holding period", fmt.Sprintf("%d days", r.HoldingPeriodDays)},
		{"Lookback purchase price", utils.FormatCurrency(r.ActualPurchasePrice)},
		{"Discount", utils.FormatPercentage(r.Discount)},
		{"Total proceeds", utils.FormatCurrency(r.TotalProceedsFromSale)},
		{"Cost basis", utils.FormatCurrency(r.TotalCostBasis)},
		{"Adjusted cost basis", utils.FormatCurrency(r.AdjustedCostBasis)},
		{"Ordinary income", utils.FormatCurrency(r.OrdinaryIncome)},
		{"Capital gain", fmt.Sprintf("%s (%s)", utils.FormatCurrency(r.CapitalGain), r.CapitalGainType)},
		{"Ordinary income tax", utils.FormatCurrency(r.OrdinaryIncomeTax)},
		{"Capital gains tax", utils.FormatCurrency(r.CapitalGainsTax)},
		{"Total tax", utils.FormatCurrency(r.TotalTaxLiability)},
		{"All-capital-gain tax", utils.FormatCurrency(r.IncorrectTaxLiability)},
		{"Tax savings", utils.FormatCurrency(r.TaxSavings)},
	}
	width := 0
	for _, row := range rows {
		width = max(width, len(row[0]))
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s%s  %s\n", row[0], strings.Repeat(" ", width-len(row[0])), row[1])
	}
}
