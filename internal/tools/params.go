package tools

import (
	"errors"
	"fmt"

	"github.com/cloud-ru/mcp-espp-go/internal/calculations"
	"github.com/cloud-ru/mcp-espp-go/internal/config"
)

// ErrInvalidParameter marks params that could not be decoded
var ErrInvalidParameter = errors.New("invalid parameter")

func invalidParameter(name string) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, name)
}

// floatParam reads a numeric param; a missing key yields fallback
func floatParam(params map[string]interface{}, name string, fallback float64) (float64, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return fallback, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, invalidParameter(name)
	}
}

// dateParam reads a YYYY-MM-DD param; missing or empty yields the zero date
func dateParam(params map[string]interface{}, name string) (calculations.Date, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return calculations.Date{}, nil
	}
	s, ok := raw.(string)
	if !ok {
		return calculations.Date{}, invalidParameter(name)
	}
	if s == "" {
		return calculations.Date{}, nil
	}
	d, err := calculations.ParseDate(s)
	if err != nil {
		return calculations.Date{}, invalidParameter(name)
	}
	return d, nil
}

// DecodeInputs turns a flat param map into typed calculator inputs. Omitted
// discount and tax rates take the configured defaults; every other omitted
// field stays zero and is left for validation to reject.
func DecodeInputs(defaults config.Defaults, params map[string]interface{}) (calculations.Inputs, error) {
	var in calculations.Inputs
	var err error

	dates := []struct {
		name string
		dst  *calculations.Date
	}{
		{"purchase_date", &in.Purchase.PurchaseDate},
		{"offering_date", &in.Purchase.OfferingDate},
		{"sale_date", &in.Sale.SaleDate},
	}
	for _, d := range dates {
		if *d.dst, err = dateParam(params, d.name); err != nil {
			return calculations.Inputs{}, err
		}
	}

	numbers := []struct {
		name     string
		dst      *float64
		fallback float64
	}{
		{"purchase_price", &in.Purchase.PurchasePrice, 0},
		{"fair_market_value_at_purchase", &in.Purchase.FairMarketValueAtPurchase, 0},
		{"fair_market_value_at_offering", &in.Purchase.FairMarketValueAtOffering, 0},
		{"discount_percentage", &in.Purchase.DiscountPercentage, defaults.DiscountPercentage},
		{"sale_price", &in.Sale.SalePrice, 0},
		{"shares_sold", &in.Sale.SharesSold, 0},
		{"federal_income_tax_rate", &in.Tax.FederalIncomeTaxRate, defaults.FederalIncomeTaxRate},
		{"state_income_tax_rate", &in.Tax.StateIncomeTaxRate, defaults.StateIncomeTaxRate},
		{"long_term_capital_gains_rate", &in.Tax.LongTermCapitalGainsRate, defaults.LongTermCapitalGainsRate},
		{"short_term_capital_gains_rate", &in.Tax.ShortTermCapitalGainsRate, defaults.ShortTermCapitalGainsRate},
	}
	for _, n := range numbers {
		if *n.dst, err = floatParam(params, n.name, n.fallback); err != nil {
			return calculations.Inputs{}, err
		}
	}

	return in, nil
}
