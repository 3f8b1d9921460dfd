package interfaces

import (
	"context"

	"clientdesk/internal/domain/entities"
)

// IActivityRepository abstracts DynamoDB persistence for the append-only
// activity log.

type IActivityRepository interface {
	Create(ctx context.Context, rec entities.ActivityRecord) error

	// CreateUnique inserts a record whose ID is a deterministic dedup
	// key. Returns created=false (and no error) when a record with the
	// same key already exists.
	CreateUnique(ctx context.Context, rec entities.ActivityRecord) (created bool, err error)

	ListByUserID(ctx context.Context, userID string) ([]entities.ActivityRecord, error)
}
