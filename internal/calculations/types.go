package calculations

// CapitalGainTerm classifies a capital gain by holding period
type CapitalGainTerm string

const (
	ShortTerm CapitalGainTerm = "short-term"
	LongTerm  CapitalGainTerm = "long-term"
)

// PurchaseInfo describes one ESPP purchase lot as reported on Form 3922
type PurchaseInfo struct {
	PurchaseDate              Date    `json:"purchase_date"`
	OfferingDate              Date    `json:"offering_date"`
	PurchasePrice             float64 `json:"purchase_price"`
	FairMarketValueAtPurchase float64 `json:"fair_market_value_at_purchase"`
	FairMarketValueAtOffering float64 `json:"fair_market_value_at_offering"`
	DiscountPercentage        float64 `json:"discount_percentage"`
}

// SaleInfo describes the sale of shares from the purchase lot
type SaleInfo struct {
	SaleDate   Date    `json:"sale_date"`
	SalePrice  float64 `json:"sale_price"`
	SharesSold float64 `json:"shares_sold"`
}

// TaxRates holds flat rates expressed as fractions (0.24 = 24%)
type TaxRates struct {
	FederalIncomeTaxRate      float64 `json:"federal_income_tax_rate"`
	StateIncomeTaxRate        float64 `json:"state_income_tax_rate"`
	LongTermCapitalGainsRate  float64 `json:"long_term_capital_gains_rate"`
	ShortTermCapitalGainsRate float64 `json:"short_term_capital_gains_rate"`
}

// Inputs groups the three input records of a calculation
type Inputs struct {
	Purchase PurchaseInfo `json:"purchase"`
	Sale     SaleInfo     `json:"sale"`
	Tax      TaxRates     `json:"tax"`
}

// Classification is the output of the disposition classifier
type Classification struct {
	IsQualifying      bool            `json:"is_qualifying"`
	HoldingPeriodDays int             `json:"holding_period_days"`
	CapitalGainTerm   CapitalGainTerm `json:"capital_gain_term"`
}

// Pricing is the output of the lookback pricing engine
type Pricing struct {
	ActualPurchasePrice   float64 `json:"actual_purchase_price"`
	ReferenceFMV          float64 `json:"reference_fmv"`
	OfferingDiscountPrice float64 `json:"offering_discount_price"`
	PurchaseDiscountPrice float64 `json:"purchase_discount_price"`
}

// Split partitions the gross gain into ordinary income and capital gain
type Split struct {
	OrdinaryIncome        float64 `json:"ordinary_income"`
	CapitalGain           float64 `json:"capital_gain"`
	Discount              float64 `json:"discount"`
	DiscountAmount        float64 `json:"discount_amount"`
	TotalProceedsFromSale float64 `json:"total_proceeds_from_sale"`
	TotalCostBasis        float64 `json:"total_cost_basis"`
}

// TaxBreakdown is the output of the tax liability calculator
type TaxBreakdown struct {
	OrdinaryIncomeTax     float64 `json:"ordinary_income_tax"`
	CapitalGainsTax       float64 `json:"capital_gains_tax"`
	TotalTaxLiability     float64 `json:"total_tax_liability"`
	IncorrectCapitalGain  float64 `json:"incorrect_capital_gain"`
	IncorrectTaxLiability float64 `json:"incorrect_tax_liability"`
	TaxSavings            float64 `json:"tax_savings"`
	AdjustedCostBasis     float64 `json:"adjusted_cost_basis"`
}

// CalculationResult is the full result of one ESPP sale calculation
type CalculationResult struct {
	IsQualifyingDisposition bool    `json:"is_qualifying_disposition"`
	HoldingPeriodDays       int     `json:"holding_period_days"`
	ActualPurchasePrice     float64 `json:"actual_purchase_price"`
	ReferenceFMV            float64 `json:"reference_fmv"`

	Discount              float64 `json:"discount"`
	DiscountAmount        float64 `json:"discount_amount"`
	TotalProceedsFromSale float64 `json:"total_proceeds_from_sale"`
	TotalCostBasis        float64 `json:"total_cost_basis"`
	AdjustedCostBasis     float64 `json:"adjusted_cost_basis"`

	OrdinaryIncome  float64         `json:"ordinary_income"`
	CapitalGain     float64         `json:"capital_gain"`
	CapitalGainType CapitalGainTerm `json:"capital_gain_type"`

	OrdinaryIncomeTax float64 `json:"ordinary_income_tax"`
	CapitalGainsTax   float64 `json:"capital_gains_tax"`
	TotalTaxLiability float64 `json:"total_tax_liability"`

	IncorrectCapitalGain  float64 `json:"incorrect_capital_gain"`
	IncorrectTaxLiability float64 `json:"incorrect_tax_liability"`
	TaxSavings            float64 `json:"tax_savings"`
}

// GrossGain is sale proceeds minus the unadjusted cost basis
func (r CalculationResult) GrossGain() float64 {
	return r.TotalProceedsFromSale - r.TotalCostBasis
}

// NetGain is the gross gain after the total tax liability
func (r CalculationResult) NetGain() float64 {
	return r.GrossGain() - r.TotalTaxLiability
}
