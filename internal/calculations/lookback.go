package calculations

// ResolveEffectivePrice applies the lookback provision: the discount is taken
// off whichever of the offering-date and purchase-date FMV is lower.
// PurchasePrice from the input is not consulted.
func ResolveEffectivePrice(purchase PurchaseInfo) Pricing {
	discountMultiplier := 1 - purchase.DiscountPercentage/100
	offeringDiscountPrice := purchase.FairMarketValueAtOffering * discountMultiplier
	purchaseDiscountPrice := purchase.FairMarketValueAtPurchase * discountMultiplier

	// Ties resolve to the offering FMV
	pricing := Pricing{
		ActualPurchasePrice:   offeringDiscountPrice,
		ReferenceFMV:          purchase.FairMarketValueAtOffering,
		OfferingDiscountPrice: offeringDiscountPrice,
		PurchaseDiscountPrice: purchaseDiscountPrice,
	}
	if purchaseDiscountPrice < offeringDiscountPrice {
		pricing.ActualPurchasePrice = purchaseDiscountPrice
		pricing.ReferenceFMV = purchase.FairMarketValueAtPurchase
	}
	return pricing
}
