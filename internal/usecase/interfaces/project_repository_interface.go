package interfaces

import (
	"context"

	"clientdesk/internal/domain/entities"
)

// IProjectRepository abstracts DynamoDB persistence for Project.

type IProjectRepository interface {
	// CreateIfAbsent inserts the project unless one already exists for
	// the same invoice. Returns created=false (and no error) when the
	// row was already there.
	CreateIfAbsent(ctx context.Context, p entities.Project) (created bool, err error)
	GetByInvoiceID(ctx context.Context, invoiceID string) (entities.Project, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Project, error)
}
