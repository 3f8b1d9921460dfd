package request

import "strings"

// ManualTriggerRequest drives the operator recovery path. Exactly one
// of invoice_id / payment_intent_id must be set.
type ManualTriggerRequest struct {
	InvoiceID       string `json:"invoice_id"`
	PaymentIntentID string `json:"payment_intent_id"`
	Verify          bool   `json:"verify"`
}

func (r ManualTriggerRequest) Normalized() (invoiceID, intentID string) {
	return strings.TrimSpace(r.InvoiceID), strings.TrimSpace(r.PaymentIntentID)
}

// TestWebhookRequest is the admin action-dispatch payload.
type TestWebhookRequest struct {
	Action          string `json:"action" binding:"required"`
	InvoiceID       string `json:"invoice_id"`
	PaymentIntentID string `json:"payment_intent_id"`
	Limit           int    `json:"limit"`
}
