package importer

import (
	"math"
	"testing"
	"time"

	"github.com/cloud-ru/mcp-espp-go/internal/calculations"
	"github.com/cloud-ru/mcp-espp-go/internal/config"
)

var testDefaults = config.Defaults{
	DiscountPercentage:        15,
	FederalIncomeTaxRate:      0.24,
	StateIncomeTaxRate:        0.05,
	LongTermCapitalGainsRate:  0.15,
	ShortTermCapitalGainsRate: 0.24,
}

func TestParseForm3922(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantShares float64
	}{
		{
			name:       "with account number",
			input:      "123456 01/03/2022 06/30/2022 $10.0000 $12.5000 $8.5000 1,234.5678",
			wantShares: 1234.5678,
		},
		{
			name:       "without account number",
			input:      "01/03/2022 06/30/2022 $10 $12.5 $8.5 50",
			wantShares: 50,
		},
		{
			name:       "first non empty line of multi-line paste",
			input:      "\n   \n  01/03/2022   06/30/2022  $10.00  $12.50  $8.50  12.\nsecond line ignored",
			wantShares: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, ok := ParseForm3922(tt.input, testDefaults)
			if !ok {
				t.Fatal("expected input to match")
			}
			p := in.Purchase
			if !p.OfferingDate.Equal(calculations.NewDate(2022, time.January, 3).Time) {
				t.Errorf("offering date = %v", p.OfferingDate)
			}
			if !p.PurchaseDate.Equal(calculations.NewDate(2022, time.June, 30).Time) {
				t.Errorf("purchase date = %v", p.PurchaseDate)
			}
			if p.FairMarketValueAtOffering != 10 || p.FairMarketValueAtPurchase != 12.5 || p.PurchasePrice != 8.5 {
				t.Errorf("unexpected amounts %+v", p)
			}
			if math.Abs(p.DiscountPercentage-15) > 1e-9 {
				t.Errorf("discount = %v, want 15", p.DiscountPercentage)
			}
			if in.Sale.SharesSold != tt.wantShares {
				t.Errorf("shares = %v, want %v", in.Sale.SharesSold, tt.wantShares)
			}
			if !in.Sale.SaleDate.IsZero() || in.Sale.SalePrice != 0 {
				t.Errorf("sale date and price should be left empty, got %+v", in.Sale)
			}
			if in.Tax.FederalIncomeTaxRate != 0.24 || in.Tax.LongTermCapitalGainsRate != 0.15 {
				t.Errorf("tax rates should come from defaults, got %+v", in.Tax)
			}
		})
	}
}

func TestParseForm3922NoMatch(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t",
		"01/03/2022 06/30/2022 10.00 12.50 8.50 12",
		"2022-01-03 2022-06-30 $10 $12.5 $8.5 12",
		"01/03/2022 06/30/2022 $10 $12.5 $8.5",
		"13/45/2022 06/30/2022 $10 $12.5 $8.5 12",
		"acct 01/03/2022 06/30/2022 $10 $12.5 $8.5 12",
	}
	for _, input := range inputs {
		if _, ok := ParseForm3922(input, testDefaults); ok {
			t.Errorf("ParseForm3922(%q) should not match", input)
		}
	}
}

func TestDiscountPercentage(t *testing.T) {
	tests := []struct {
		name     string
		fmv      float64
		price    float64
		fallback float64
		want     float64
	}{
		{"standard discount", 20, 17, 15, 15},
		{"price above fmv", 10, 11, 15, -10},
		{"zero fmv falls back", 0, 8.5, 15, 15},
		{"zero price falls back", 10, 0, 12, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiscountPercentage(tt.fmv, tt.price, tt.fallback)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DiscountPercentage() = %v, want %v", got, tt.want)
			}
		})
	}
}
