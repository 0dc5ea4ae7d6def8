package validators

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloud-ru/mcp-espp-go/internal/calculations"
	"github.com/cloud-ru/mcp-espp-go/internal/config"
	"github.com/cloud-ru/mcp-espp-go/pkg/utils"
)

// Error collects per-field validation messages keyed by input field name
type Error struct {
	Fields map[string]string `json:"fields"`
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, field := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}

// ValidatePositiveNumber checks that a number is finite, > 0 and not above maxInclusive
func ValidatePositiveNumber(value, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("value is not a finite number")
	}
	if value <= 0 {
		return fmt.Errorf("must be greater than 0")
	}
	if value > maxInclusive {
		return fmt.Errorf("value is too large (>%.0f)", maxInclusive)
	}
	return nil
}

// ValidateRate checks that a tax rate is a fraction in [0, 1)
func ValidateRate(value float64, example string) error {
	if !utils.IsFinite(value) || value < 0 || value >= 1 {
		return fmt.Errorf("tax rate must be between 0 and 1 (e.g., %s)", example)
	}
	return nil
}

// CheckPrice validates a per-share price or fair market value
func CheckPrice(cfg *config.Config, price float64) error {
	return ValidatePositiveNumber(price, cfg.MaxPrice)
}

// CheckShares validates a share count
func CheckShares(cfg *config.Config, shares float64) error {
	return ValidatePositiveNumber(shares, cfg.MaxShares)
}

// ValidatePurchase validates the purchase record into fields
func ValidatePurchase(cfg *config.Config, p calculations.PurchaseInfo, fields map[string]string) {
	if p.PurchaseDate.IsZero() {
		fields["purchase_date"] = "purchase date is required"
	}
	if p.OfferingDate.IsZero() {
		fields["offering_date"] = "offering date is required"
	}
	if err := CheckPrice(cfg, p.PurchasePrice); err != nil {
		fields["purchase_price"] = "purchase price " + err.Error()
	}
	if err := CheckPrice(cfg, p.FairMarketValueAtPurchase); err != nil {
		fields["fair_market_value_at_purchase"] = "fair market value " + err.Error()
	}
	if err := CheckPrice(cfg, p.FairMarketValueAtOffering); err != nil {
		fields["fair_market_value_at_offering"] = "fair market value " + err.Error()
	}
	// Discount can be negative when the purchase price exceeds FMV; only finiteness is required
	if !utils.IsFinite(p.DiscountPercentage) {
		fields["discount_percentage"] = "discount percentage is not a finite number"
	}
}

// ValidateSale validates the sale record into fields
func ValidateSale(cfg *config.Config, s calculations.SaleInfo, fields map[string]string) {
	if s.SaleDate.IsZero() {
		fields["sale_date"] = "sale date is required"
	}
	if err := CheckPrice(cfg, s.SalePrice); err != nil {
		fields["sale_price"] = "sale price " + err.Error()
	}
	if err := CheckShares(cfg, s.SharesSold); err != nil {
		fields["shares_sold"] = "shares sold " + err.Error()
	}
}

// ValidateTaxRates validates every rate into fields
func ValidateTaxRates(r calculations.TaxRates, fields map[string]string) {
	if err := ValidateRate(r.FederalIncomeTaxRate, "0.24 for 24%"); err != nil {
		fields["federal_income_tax_rate"] = err.Error()
	}
	if err := ValidateRate(r.StateIncomeTaxRate, "0.05 for 5%"); err != nil {
		fields["state_income_tax_rate"] = err.Error()
	}
	if err := ValidateRate(r.LongTermCapitalGainsRate, "0.15 for 15%"); err != nil {
		fields["long_term_capital_gains_rate"] = err.Error()
	}
	if err := ValidateRate(r.ShortTermCapitalGainsRate, "0.24 for 24%"); err != nil {
		fields["short_term_capital_gains_rate"] = err.Error()
	}
}

// ValidateInputs checks all three records and reports every failing field at once.
// It returns nil or an *Error.
func ValidateInputs(cfg *config.Config, in calculations.Inputs) error {
	fields := make(map[string]string)

	ValidatePurchase(cfg, in.Purchase, fields)
	ValidateSale(cfg, in.Sale, fields)
	ValidateTaxRates(in.Tax, fields)

	if len(fields) > 0 {
		return &Error{Fields: fields}
	}
	return nil
}
