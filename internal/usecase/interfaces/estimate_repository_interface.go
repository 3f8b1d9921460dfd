package interfaces

import (
	"context"
	"time"

	"clientdesk/internal/domain/entities"
)

// IEstimateRepository abstracts DynamoDB persistence for Estimate.
//
// Conditional-update contract: Finalize, MarkApproved and MarkRejected
// apply their status transition only while the row is still in the
// expected prior state. On a failed condition (or a missing row) they
// return a zero-value Estimate and a nil error; the use case translates
// that into the proper domain error.

type IEstimateRepository interface {
	Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Estimate, error)

	// Finalize sets the tax-inclusive total and tax rate together while
	// status is still pending.
	Finalize(ctx context.Context, id string, totalCents int64, taxRatePercent float64, finalizedAt time.Time) (entities.Estimate, error)

	// MarkApproved flips finalized -> approved while approved_by_user is
	// still false. This is the guard that makes a double approve lose.
	MarkApproved(ctx context.Context, id string) (entities.Estimate, error)

	// MarkRejected flips finalized -> rejected while not yet approved.
	MarkRejected(ctx context.Context, id string) (entities.Estimate, error)

	// RevertApproval is the compensating write used when invoice
	// creation fails after the estimate was marked approved.
	RevertApproval(ctx context.Context, id string) (entities.Estimate, error)
}
