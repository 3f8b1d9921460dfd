package interfaces

import (
	"context"
	"errors"
)

// Payment intent statuses as reported by the processor. Callers must
// not assume a status stays stable between two retrievals.
const (
	IntentStatusSucceeded             = "succeeded"
	IntentStatusCanceled              = "canceled"
	IntentStatusProcessing            = "processing"
	IntentStatusRequiresPaymentMethod = "requires_payment_method"
)

// Webhook event types the reconciliation engine reacts to.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
	EventPaymentCanceled  = "payment_intent.canceled"
)

var (
	ErrInvalidWebhookSignature = errors.New("invalid webhook signature")
	ErrIntentNotFound          = errors.New("payment intent not found")
	ErrGatewayUnauthorized     = errors.New("payment gateway unauthorized")
)

// PaymentIntent is the local view of a processor charge attempt.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
	Metadata     map[string]string
}

// WebhookEvent is a verified, parsed processor notification.
type WebhookEvent struct {
	ID             string
	Type           string
	IntentID       string
	AmountCents    int64
	IntentStatus   string
	Metadata       map[string]string
	FailureMessage string
}

// IPaymentGateway abstracts the external payment processor (Stripe).
//
// VerifyWebhook is the only trust boundary check in front of inbound
// payment events; it must run before any state mutation.
type IPaymentGateway interface {
	GetOrCreateCustomer(ctx context.Context, email, name, phone string, metadata map[string]string) (customerID string, err error)
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency, customerID, description string, metadata map[string]string) (PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, intentID string) (PaymentIntent, error)
	VerifyWebhook(payload []byte, signatureHeader string) (WebhookEvent, error)
}
