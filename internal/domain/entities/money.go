package entities

import "math"

// Money helpers. All amounts are integer minor units; tax rounding is
// round-half-up. TotalWithTax and PreTaxFromTotal are exact inverses
// for the rates this service accepts.

// TaxAmountCents returns round(preTax * rate / 100).
func TaxAmountCents(preTaxCents int64, taxRatePercent float64) int64 {
	return int64(math.Round(float64(preTaxCents) * taxRatePercent / 100))
}

// TotalWithTaxCents returns the tax-inclusive total stored on finalized
// estimates and their invoices.
func TotalWithTaxCents(preTaxCents int64, taxRatePercent float64) int64 {
	return preTaxCents + TaxAmountCents(preTaxCents, taxRatePercent)
}

// PreTaxFromTotalCents recovers the pre-tax amount from a tax-inclusive
// total. Callers that need the pre-tax figure must use this instead of
// recomputing it ad hoc.
func PreTaxFromTotalCents(totalCents int64, taxRatePercent float64) int64 {
	return int64(math.Round(float64(totalCents) / (1 + taxRatePercent/100)))
}
