package calculations

// ComputeTax applies flat rates to the split and compares the result with the
// common mistake of reporting the whole gain as capital gain.
func ComputeTax(split Split, rates TaxRates, term CapitalGainTerm) TaxBreakdown {
	ordinaryIncomeTax := split.OrdinaryIncome * (rates.FederalIncomeTaxRate + rates.StateIncomeTaxRate)

	capitalGainsRate := rates.ShortTermCapitalGainsRate
	if term == LongTerm {
		capitalGainsRate = rates.LongTermCapitalGainsRate
	}

	// Losses never produce a negative tax
	capitalGainsTax := max(0, split.CapitalGain*capitalGainsRate)
	totalTaxLiability := ordinaryIncomeTax + capitalGainsTax

	incorrectCapitalGain := split.TotalProceedsFromSale - split.TotalCostBasis
	incorrectTaxLiability := max(0, incorrectCapitalGain*capitalGainsRate)

	return TaxBreakdown{
		OrdinaryIncomeTax:     ordinaryIncomeTax,
		CapitalGainsTax:       capitalGainsTax,
		TotalTaxLiability:     totalTaxLiability,
		IncorrectCapitalGain:  incorrectCapitalGain,
		IncorrectTaxLiability: incorrectTaxLiability,
		// Negative savings mean the incorrect method would have cost less
		TaxSavings:        incorrectTaxLiability - totalTaxLiability,
		AdjustedCostBasis: split.TotalCostBasis + split.OrdinaryIncome,
	}
}
