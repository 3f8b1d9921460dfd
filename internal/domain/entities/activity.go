package entities

import (
	"fmt"
	"time"
)

// ActivityType tags append-only audit records.

type ActivityType string

const (
	ActivityInvoicePaid    ActivityType = "invoice_paid"
	ActivityProjectCreated ActivityType = "project_created"
	ActivityPaymentFailed  ActivityType = "payment_failed"
)

// ActivityRecord is an append-only audit entry.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (user_id-index): user_id
//
// Records that must fire at most once across the reconciliation entry
// points use PaymentDedupID as their primary key together with a
// conditional put; everything else gets a random id.
type ActivityRecord struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Type        ActivityType      `json:"type"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// PaymentDedupID builds the deterministic id used to suppress duplicate
// payment-scoped activity records.
func PaymentDedupID(userID string, t ActivityType, paymentIntentID string) string {
	return fmt.Sprintf("%s#%s#%s", userID, t, paymentIntentID)
}
