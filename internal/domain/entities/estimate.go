package entities

import "time"

// EstimateStatus represents the lifecycle of a client estimate.
//
// Domain notes:
//   - A client request starts in pending with at most a price range.
//   - Only an admin moves an estimate into finalized, fixing the final
//     (tax-inclusive) price and tax rate together.
//   - Only the owning client approves or rejects a finalized estimate;
//     approval mints the invoice.

type EstimateStatus string

const (
	EstimateStatusDraft     EstimateStatus = "draft"
	EstimateStatusPending   EstimateStatus = "pending"
	EstimateStatusFinalized EstimateStatus = "finalized"
	EstimateStatusApproved  EstimateStatus = "approved"
	EstimateStatusRejected  EstimateStatus = "rejected"
)

// Estimate is the priced proposal persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (user_id-index): user_id
//
// Monetary representation:
//   - All amounts are integer minor currency units (cents).
//   - FinalPriceCents is tax-inclusive and is set together with
//     TaxRatePercent on the transition into finalized, never earlier.
type Estimate struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	PriceMinCents   *int64         `json:"price_min_cents,omitempty"`
	PriceMaxCents   *int64         `json:"price_max_cents,omitempty"`
	FinalPriceCents *int64         `json:"final_price_cents,omitempty"`
	TaxRatePercent  *float64       `json:"tax_rate_percent,omitempty"`
	Status          EstimateStatus `json:"status"`
	ApprovedByUser  bool           `json:"approved_by_user"`
	CreatedAt       time.Time      `json:"created_at"`
	FinalizedAt     *time.Time     `json:"finalized_at,omitempty"`
}
