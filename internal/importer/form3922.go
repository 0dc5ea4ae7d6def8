package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cloud-ru/mcp-espp-go/internal/calculations"
	"github.com/cloud-ru/mcp-espp-go/internal/config"
)

// Form 3922 line: optional account number, Box 1 offering date, Box 2
// purchase date, Box 3 FMV at offering, Box 4 FMV at purchase, Box 5 price
// paid, Box 6 shares transferred.
//
//	12345 01/01/2023 06/30/2023 $10.0000 $12.5000 $8.5000 1,234.5678
var form3922Line = regexp.MustCompile(
	`^(?:\d+\s+)?(\d{2}/\d{2}/\d{4})\s+(\d{2}/\d{2}/\d{4})\s+\$(\d+(?:\.\d*)?)\s+\$(\d+(?:\.\d*)?)\s+\$(\d+(?:\.\d*)?)\s+([\d,]+(?:\.\d*)?)$`,
)

const form3922DateLayout = "01/02/2006"

// ParseForm3922 extracts calculator inputs from pasted Form 3922 text. Only
// the first non-empty line is read. Sale date and price are not on the form
// and stay empty; tax rates take the configured defaults. ok is false when
// the text does not match, in which case the caller keeps its prior state.
func ParseForm3922(text string, defaults config.Defaults) (calculations.Inputs, bool) {
	line := firstNonEmptyLine(text)
	if line == "" {
		return calculations.Inputs{}, false
	}

	m := form3922Line.FindStringSubmatch(line)
	if m == nil {
		return calculations.Inputs{}, false
	}

	offeringDate, err := parseDate(m[1])
	if err != nil {
		return calculations.Inputs{}, false
	}
	purchaseDate, err := parseDate(m[2])
	if err != nil {
		return calculations.Inputs{}, false
	}

	fmvAtOffering, err1 := strconv.ParseFloat(m[3], 64)
	fmvAtPurchase, err2 := strconv.ParseFloat(m[4], 64)
	purchasePrice, err3 := strconv.ParseFloat(m[5], 64)
	shares, err4 := strconv.ParseFloat(strings.ReplaceAll(m[6], ",", ""), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return calculations.Inputs{}, false
	}

	return calculations.Inputs{
		Purchase: calculations.PurchaseInfo{
			OfferingDate:              offeringDate,
			PurchaseDate:              purchaseDate,
			FairMarketValueAtOffering: fmvAtOffering,
			FairMarketValueAtPurchase: fmvAtPurchase,
			PurchasePrice:             purchasePrice,
			DiscountPercentage:        DiscountPercentage(fmvAtOffering, purchasePrice, defaults.DiscountPercentage),
		},
		Sale: calculations.SaleInfo{
			SharesSold: shares,
		},
		Tax: calculations.TaxRates{
			FederalIncomeTaxRate:      defaults.FederalIncomeTaxRate,
			StateIncomeTaxRate:        defaults.StateIncomeTaxRate,
			LongTermCapitalGainsRate:  defaults.LongTermCapitalGainsRate,
			ShortTermCapitalGainsRate: defaults.ShortTermCapitalGainsRate,
		},
	}, true
}

// DiscountPercentage derives the plan discount from the offering FMV and the
// price paid, falling back when either is not positive. The result is negative
// when the price paid exceeds the offering FMV.
func DiscountPercentage(fmvAtOffering, purchasePrice, fallback float64) float64 {
	if fmvAtOffering > 0 && purchasePrice > 0 {
		return (fmvAtOffering - purchasePrice) / fmvAtOffering * 100
	}
	return fallback
}

func firstNonEmptyLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func parseDate(s string) (calculations.Date, error) {
	t, err := time.ParseInLocation(form3922DateLayout, s, time.UTC)
	if err != nil {
		return calculations.Date{}, err
	}
	return calculations.Date{Time: t}, nil
}
