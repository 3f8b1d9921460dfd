package response

import (
	"time"

	"clientdesk/internal/domain/entities"
	"clientdesk/internal/usecase/interfaces"
)

type InvoiceResponse struct {
	ID              string     `json:"id"`
	EstimateID      string     `json:"estimate_id"`
	UserID          string     `json:"user_id"`
	AmountCents     int64      `json:"amount_cents"`
	TaxRatePercent  float64    `json:"tax_rate_percent"`
	Status          string     `json:"status"`
	DueDate         time.Time  `json:"due_date"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	PaymentIntentID string     `json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID,
		EstimateID:      inv.EstimateID,
		UserID:          inv.UserID,
		AmountCents:     inv.AmountCents,
		TaxRatePercent:  inv.TaxRatePercent,
		Status:          string(inv.Status),
		DueDate:         inv.DueDate,
		PaidAt:          inv.PaidAt,
		PaymentIntentID: inv.PaymentIntentID,
		CreatedAt:       inv.CreatedAt,
	}
}

func FromInvoices(items []entities.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(items))
	for _, inv := range items {
		out = append(out, FromInvoice(inv))
	}
	return out
}

// PaymentSessionResponse carries what the client needs to confirm the
// payment in the browser.
type PaymentSessionResponse struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
	Status          string `json:"status"`
	AmountCents     int64  `json:"amount_cents"`
}

func FromPaymentIntent(intent interfaces.PaymentIntent) PaymentSessionResponse {
	return PaymentSessionResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Status:          intent.Status,
		AmountCents:     intent.AmountCents,
	}
}

type ActivityResponse struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

func FromActivity(rec entities.ActivityRecord) ActivityResponse {
	return ActivityResponse{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Type:        string(rec.Type),
		Description: rec.Description,
		Metadata:    rec.Metadata,
		CreatedAt:   rec.CreatedAt,
	}
}

func FromActivities(items []entities.ActivityRecord) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(items))
	for _, rec := range items {
		out = append(out, FromActivity(rec))
	}
	return out
}
