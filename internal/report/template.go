package report

const textTemplate = `{{.Title}}
Report ID: {{.ID}}

Input Summary:
  Purchase Date: {{.PurchaseDate}}
  Purchase Price: {{.PurchasePrice}}
  FMV at Purchase: {{.FMVAtPurchase}}
  Offering Date: {{.OfferingDate}}
  FMV at Offering: {{.FMVAtOffering}}
  Discount: {{.Discount}}
  Sale Date: {{.SaleDate}}
  Sale Price: {{.SalePrice}}
  Shares Sold: {{.SharesSold}}

Calculation Results:
  Disposition Type: {{.DispositionType}}
  Holding Period: {{.HoldingPeriod}}
  Adjusted Cost Basis: {{.AdjustedBasis}} (Report this value)
  Gross Gain: {{.GrossGain}}
  Net Gain: {{.NetGain}}
  Ordinary Income: {{.OrdinaryIncome}}
  Capital Gain: {{.CapitalGain}} ({{.CapitalGainTerm}})
  Tax Liability: {{.TaxLiability}}
  Tax Savings: {{.TaxSavings}}

{{.Disclaimer}}
`
