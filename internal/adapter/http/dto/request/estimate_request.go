package request

import (
	"strings"

	"clientdesk/internal/usecase"
)

// CreateEstimateRequest is role-dependent: normal users may only supply
// a price range; admins must supply a pre-tax final price and tax rate.
type CreateEstimateRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	PriceMinCents   *int64   `json:"price_min_cents"`
	PriceMaxCents   *int64   `json:"price_max_cents"`
	FinalPriceCents *int64   `json:"final_price_cents"`
	TaxRatePercent  *float64 `json:"tax_rate_percent"`
}

func (r CreateEstimateRequest) ToInput() usecase.CreateEstimateInput {
	return usecase.CreateEstimateInput{
		Title:           strings.TrimSpace(r.Title),
		Description:     strings.TrimSpace(r.Description),
		PriceMinCents:   r.PriceMinCents,
		PriceMaxCents:   r.PriceMaxCents,
		FinalPriceCents: r.FinalPriceCents,
		TaxRatePercent:  r.TaxRatePercent,
	}
}

// FinalizeEstimateRequest carries the pre-tax price; the stored total
// is tax-inclusive.
type FinalizeEstimateRequest struct {
	FinalPriceCents int64   `json:"final_price_cents" binding:"required"`
	TaxRatePercent  float64 `json:"tax_rate_percent"`
}
