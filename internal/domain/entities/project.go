package entities

import "time"

// ProjectStatus is the downstream execution state of delivered work.
// It is independent of the estimate/invoice status vocabulary.

type ProjectStatus string

const (
	ProjectStatusPending ProjectStatus = "pending"
)

// Project is provisioned at most once per paid invoice.
//
// Storage model (DynamoDB):
//   - PK: invoice_id
//
// Using the invoice id as the partition key makes the conditional put
// (attribute_not_exists) the uniqueness guarantee for "one project per
// paid invoice" without a pre-read.
type Project struct {
	InvoiceID   string        `json:"invoice_id"`
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}
