package calculations

// Calculate runs the full pipeline: classify, price, split, tax.
// Inputs are expected to be validated by the caller.
func Calculate(purchase PurchaseInfo, sale SaleInfo, rates TaxRates) CalculationResult {
	classification := Classify(purchase, sale)
	pricing := ResolveEffectivePrice(purchase)
	split := SplitGain(purchase, sale, classification, pricing)
	tax := ComputeTax(split, rates, classification.CapitalGainTerm)

	return CalculationResult{
		IsQualifyingDisposition: classification.IsQualifying,
		HoldingPeriodDays:       classification.HoldingPeriodDays,
		ActualPurchasePrice:     pricing.ActualPurchasePrice,
		ReferenceFMV:            pricing.ReferenceFMV,
		Discount:                split.Discount,
		DiscountAmount:          split.DiscountAmount,
		TotalProceedsFromSale:   split.TotalProceedsFromSale,
		TotalCostBasis:          split.TotalCostBasis,
		AdjustedCostBasis:       tax.AdjustedCostBasis,
		OrdinaryIncome:          split.OrdinaryIncome,
		CapitalGain:             split.CapitalGain,
		CapitalGainType:         classification.CapitalGainTerm,
		OrdinaryIncomeTax:       tax.OrdinaryIncomeTax,
		CapitalGainsTax:         tax.CapitalGainsTax,
		TotalTaxLiability:       tax.TotalTaxLiability,
		IncorrectCapitalGain:    tax.IncorrectCapitalGain,
		IncorrectTaxLiability:   tax.IncorrectTaxLiability,
		TaxSavings:              tax.TaxSavings,
	}
}

// CalculateInputs is Calculate over a grouped Inputs record
func CalculateInputs(in Inputs) CalculationResult {
	return Calculate(in.Purchase, in.Sale, in.Tax)
}
