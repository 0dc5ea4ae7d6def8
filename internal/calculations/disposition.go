package calculations

import "math"

const (
	// Minimum holding after purchase for a qualifying disposition and long-term gain
	purchaseHoldingYears = 1
	// Minimum holding after the offering (grant) date for a qualifying disposition
	offeringHoldingYears = 2
)

// HeldAtLeastYears reports whether to falls on or after from plus years calendar years
func HeldAtLeastYears(from, to Date, years int) bool {
	return !to.Before(from.AddYears(years).Time)
}

// IsQualifyingDisposition applies both IRS Section 423 holding requirements
func IsQualifyingDisposition(purchase PurchaseInfo, sale SaleInfo) bool {
	return HeldAtLeastYears(purchase.PurchaseDate, sale.SaleDate, purchaseHoldingYears) &&
		HeldAtLeastYears(purchase.OfferingDate, sale.SaleDate, offeringHoldingYears)
}

// HoldingPeriodDays returns |sale - purchase| in whole days, partial days rounded up
func HoldingPeriodDays(purchaseDate, saleDate Date) int {
	diff := saleDate.Sub(purchaseDate.Time)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// GainTerm returns the capital gain term for the holding period
func GainTerm(purchaseDate, saleDate Date) CapitalGainTerm {
	if HeldAtLeastYears(purchaseDate, saleDate, purchaseHoldingYears) {
		return LongTerm
	}
	return ShortTerm
}

// Classify determines the disposition type and holding metrics
func Classify(purchase PurchaseInfo, sale SaleInfo) Classification {
	return Classification{
		IsQualifying:      IsQualifyingDisposition(purchase, sale),
		HoldingPeriodDays: HoldingPeriodDays(purchase.PurchaseDate, sale.SaleDate),
		CapitalGainTerm:   GainTerm(purchase.PurchaseDate, sale.SaleDate),
	}
}
