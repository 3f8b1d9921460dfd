package interfaces

import (
	"context"
	"time"

	"clientdesk/internal/domain/entities"
)

// IInvoiceRepository abstracts DynamoDB persistence for Invoice.
//
// MarkPaid is the single compare-and-swap primitive of the whole
// reconciliation flow: it transitions to paid only while the row is
// still pending (or overdue, when allowOverdue is set for operator
// recovery). A failed condition returns a zero-value Invoice and nil
// error; callers treat that as already handled and must not re-run
// side effects.

type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByEstimateID(ctx context.Context, estimateID string) (entities.Invoice, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (entities.Invoice, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Invoice, error)

	// ListPendingWithIntent returns pending invoices that carry a stored
	// payment intent reference. An empty userID means all users.
	ListPendingWithIntent(ctx context.Context, userID string) ([]entities.Invoice, error)

	// ListRecent returns the most recently created invoices, newest first.
	ListRecent(ctx context.Context, limit int) ([]entities.Invoice, error)

	MarkPaid(ctx context.Context, id string, paidAt time.Time, allowOverdue bool) (entities.Invoice, error)
	MarkOverdue(ctx context.Context, id string) (entities.Invoice, error)

	// SetPaymentIntentID stores a fresh intent reference; an empty value
	// clears the stored reference.
	SetPaymentIntentID(ctx context.Context, id, intentID string) (entities.Invoice, error)
}
