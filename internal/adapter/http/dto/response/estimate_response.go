package response

import (
	"time"

	"clientdesk/internal/domain/entities"
)

type EstimateResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	PriceMinCents   *int64     `json:"price_min_cents,omitempty"`
	PriceMaxCents   *int64     `json:"price_max_cents,omitempty"`
	FinalPriceCents *int64     `json:"final_price_cents,omitempty"`
	TaxRatePercent  *float64   `json:"tax_rate_percent,omitempty"`
	Status          string     `json:"status"`
	ApprovedByUser  bool       `json:"approved_by_user"`
	CreatedAt       time.Time  `json:"created_at"`
	FinalizedAt     *time.Time `json:"finalized_at,omitempty"`
}

func FromEstimate(e entities.Estimate) EstimateResponse {
	return EstimateResponse{
		ID:              e.ID,
		UserID:          e.UserID,
		Title:           e.Title,
		Description:     e.Description,
		PriceMinCents:   e.PriceMinCents,
		PriceMaxCents:   e.PriceMaxCents,
		FinalPriceCents: e.FinalPriceCents,
		TaxRatePercent:  e.TaxRatePercent,
		Status:          string(e.Status),
		ApprovedByUser:  e.ApprovedByUser,
		CreatedAt:       e.CreatedAt,
		FinalizedAt:     e.FinalizedAt,
	}
}

// ApproveEstimateResponse bundles the approved estimate with the
// invoice minted by the approval.
type ApproveEstimateResponse struct {
	Estimate EstimateResponse `json:"estimate"`
	Invoice  InvoiceResponse  `json:"invoice"`
}

func FromEstimates(items []entities.Estimate) []EstimateResponse {
	out := make([]EstimateResponse, 0, len(items))
	for _, e := range items {
		out = append(out, FromEstimate(e))
	}
	return out
}
