package interfaces

import (
	"context"

	"clientdesk/internal/domain/entities"
)

// INotifier abstracts the transactional email provider.
//
// All sends are best effort: callers log failures and never let them
// affect the primary transition.
type INotifier interface {
	SendPaymentConfirmation(ctx context.Context, toEmail, toName string, inv entities.Invoice) error
	SendProjectCreated(ctx context.Context, toEmail, toName string, p entities.Project) error
}
