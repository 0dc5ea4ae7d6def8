package calculations

// StatutoryDiscountCap limits qualifying-disposition ordinary income to 15% of
// the offering-date FMV, independent of the plan's discount percentage.
const StatutoryDiscountCap = 0.15

// SplitGain allocates the gross gain between ordinary income and capital gain.
// Ordinary income is not floored; a negative value is passed through.
func SplitGain(purchase PurchaseInfo, sale SaleInfo, classification Classification, pricing Pricing) Split {
	shares := sale.SharesSold
	actual := pricing.ActualPurchasePrice

	var discount float64
	if pricing.ReferenceFMV > 0 {
		discount = (pricing.ReferenceFMV - actual) / pricing.ReferenceFMV
	}

	totalProceeds := sale.SalePrice * shares
	totalCostBasis := actual * shares

	var ordinaryIncome float64
	if classification.IsQualifying {
		ordinaryIncome = min(
			(purchase.FairMarketValueAtOffering-actual)*shares,
			purchase.FairMarketValueAtOffering*StatutoryDiscountCap*shares,
		)
	} else {
		ordinaryIncome = (purchase.FairMarketValueAtPurchase - actual) * shares
	}

	return Split{
		OrdinaryIncome:        ordinaryIncome,
		CapitalGain:           totalProceeds - totalCostBasis - ordinaryIncome,
		Discount:              discount,
		DiscountAmount:        (pricing.ReferenceFMV - actual) * shares,
		TotalProceedsFromSale: totalProceeds,
		TotalCostBasis:        totalCostBasis,
	}
}
