// Package report renders a calculation as a human-readable export.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"github.com/google/uuid"

	"github.com/cloud-ru/mcp-espp-go/internal/calculations"
	"github.com/cloud-ru/mcp-espp-go/pkg/utils"
)

// Disclaimer closes every report
const Disclaimer = "This calculation is for informational purposes only and does not constitute tax advice."

// Report is a rendered export
type Report struct {
	ID   string `json:"report_id"`
	Text string `json:"text"`
}

// Data is the flattened template model; every value is already formatted
type Data struct {
	Title string
	ID    string

	PurchaseDate    string
	PurchasePrice   string
	FMVAtPurchase   string
	OfferingDate    string
	FMVAtOffering   string
	Discount        string
	SaleDate        string
	SalePrice       string
	SharesSold      string
	DispositionType string
	HoldingPeriod   string
	AdjustedBasis   string
	GrossGain       string
	NetGain         string
	OrdinaryIncome  string
	CapitalGain     string
	CapitalGainTerm string
	TaxLiability    string
	TaxSavings      string
	Disclaimer      string
}

var reportTemplate = template.Must(template.New("report").Parse(textTemplate))

// Generator renders reports; NewID is swappable for deterministic output in tests
type Generator struct {
	NewID func() string
}

// NewGenerator returns a Generator that stamps reports with random UUIDs
func NewGenerator() *Generator {
	return &Generator{NewID: uuid.NewString}
}

// Generate renders the text export of inputs and their result
func (g *Generator) Generate(in calculations.Inputs, result calculations.CalculationResult) (*Report, error) {
	data := BuildData(in, result)
	data.ID = g.NewID()

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return &Report{ID: data.ID, Text: buf.String()}, nil
}

// BuildData formats the fields the export shows
func BuildData(in calculations.Inputs, result calculations.CalculationResult) Data {
	disposition := "Disqualifying"
	if result.IsQualifyingDisposition {
		disposition = "Qualifying"
	}

	return Data{
		Title:           "ESPP Tax Calculation Results",
		PurchaseDate:    in.Purchase.PurchaseDate.String(),
		PurchasePrice:   utils.FormatCurrency(in.Purchase.PurchasePrice),
		FMVAtPurchase:   utils.FormatCurrency(in.Purchase.FairMarketValueAtPurchase),
		OfferingDate:    in.Purchase.OfferingDate.String(),
		FMVAtOffering:   utils.FormatCurrency(in.Purchase.FairMarketValueAtOffering),
		Discount:        strconv.FormatFloat(utils.Round2(in.Purchase.DiscountPercentage), 'f', -1, 64) + "%",
		SaleDate:        in.Sale.SaleDate.String(),
		SalePrice:       utils.FormatCurrency(in.Sale.SalePrice),
		SharesSold:      strconv.FormatFloat(in.Sale.SharesSold, 'f', -1, 64),
		DispositionType: disposition,
		HoldingPeriod:   fmt.Sprintf("%d days", result.HoldingPeriodDays),
		AdjustedBasis:   utils.FormatCurrency(result.AdjustedCostBasis),
		GrossGain:       utils.FormatCurrency(result.GrossGain()),
		NetGain:         utils.FormatCurrency(result.NetGain()),
		OrdinaryIncome:  utils.FormatCurrency(result.OrdinaryIncome),
		CapitalGain:     utils.FormatCurrency(result.CapitalGain),
		CapitalGainTerm: string(result.CapitalGainType),
		TaxLiability:    utils.FormatCurrency(result.TotalTaxLiability),
		TaxSavings:      utils.FormatCurrency(result.TaxSavings),
		Disclaimer:      Disclaimer,
	}
}
