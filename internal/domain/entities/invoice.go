package entities

import "time"

// InvoiceStatus represents the billing state tracked against the
// payment processor.

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Invoice is the billable artifact minted when an estimate is approved.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (estimate_id-index): estimate_id
//   - GSI (payment_intent_id-index): payment_intent_id
//   - GSI (user_id-index): user_id
//   - GSI (status-index): status
//
// PaymentIntentID is the processor's intent reference. It is stored with
// omitempty so a cleared reference drops out of payment_intent_id-index
// and the sweep; a later payment attempt mints a fresh intent.
//
// The only legal path into paid is the conditional update in the invoice
// repository. Whichever reconciliation entry point wins the race flips
// the row; the losers observe a zero-row update and skip side effects.
type Invoice struct {
	ID              string        `json:"id"`
	EstimateID      string        `json:"estimate_id"`
	UserID          string        `json:"user_id"`
	UserEmail       string        `json:"user_email"`
	UserName        string        `json:"user_name"`
	AmountCents     int64         `json:"amount_cents"`
	TaxRatePercent  float64       `json:"tax_rate_percent"`
	Status          InvoiceStatus `json:"status"`
	DueDate         time.Time     `json:"due_date"`
	PaidAt          *time.Time    `json:"paid_at,omitempty"`
	PaymentIntentID string        `json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}
