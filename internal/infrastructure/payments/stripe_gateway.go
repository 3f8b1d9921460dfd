package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"clientdesk/internal/usecase/interfaces"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

var ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")

// StripeGateway implements IPaymentGateway on top of the Stripe API.
//
// It translates Stripe errors into the local failure kinds so the use
// cases never see provider-specific error types.

type StripeGateway struct {
	client        *stripe.Client
	webhookSecret string
}

var _ interfaces.IPaymentGateway = (*StripeGateway)(nil)

func NewStripeGateway(secretKey, webhookSecret string) (*StripeGateway, error) {
	if secretKey == "" {
		log.Printf("[payment][gateway] missing STRIPE_SECRET_KEY")
		return nil, ErrMissingStripeSecretKey
	}

	log.Printf("[payment][gateway] Stripe client initialized")
	return &StripeGateway{
		client:        stripe.NewClient(secretKey, nil),
		webhookSecret: webhookSecret,
	}, nil
}

// GetOrCreateCustomer looks a customer up by email before creating one.
// Two concurrent callers can still create duplicate customers; the
// lookup is not transactional on Stripe's side.
func (g *StripeGateway) GetOrCreateCustomer(ctx context.Context, email, name, phone string, metadata map[string]string) (string, error) {
	params := &stripe.CustomerSearchParams{}
	params.Query = "email:'" + email + "'"
	params.Limit = stripe.Int64(1)

	iter := g.client.V1Customers.Search(ctx, params)
	for customer, err := range iter {
		if err != nil {
			return "", g.translateError("customer search", err)
		}
		log.Printf("[payment][gateway] customer found customer_id=%s", customer.ID)
		return customer.ID, nil
	}

	createParams := &stripe.CustomerCreateParams{
		Email:    stripe.String(email),
		Name:     stripe.String(name),
		Metadata: metadata,
	}
	if phone != "" {
		createParams.Phone = stripe.String(phone)
	}

	customer, err := g.client.V1Customers.Create(ctx, createParams)
	if err != nil {
		return "", g.translateError("customer create", err)
	}
	log.Printf("[payment][gateway] customer created customer_id=%s", customer.ID)
	return customer.ID, nil
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amountCents int64, currency, customerID, description string, metadata map[string]string) (interfaces.PaymentIntent, error) {
	params := &stripe.PaymentIntentCreateParams{
		Amount:      stripe.Int64(amountCents),
		Currency:    stripe.String(currency),
		Customer:    stripe.String(customerID),
		Description: stripe.String(description),
		Metadata:    metadata,
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := g.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		return interfaces.PaymentIntent{}, g.translateError("intent create", err)
	}

	log.Printf("[payment][gateway] intent created intent_id=%s amount=%d status=%s", intent.ID, intent.Amount, intent.Status)
	return fromStripeIntent(intent), nil
}

func (g *StripeGateway) RetrievePaymentIntent(ctx context.Context, intentID string) (interfaces.PaymentIntent, error) {
	intent, err := g.client.V1PaymentIntents.Retrieve(ctx, intentID, nil)
	if err != nil {
		return interfaces.PaymentIntent{}, g.translateError("intent retrieve", err)
	}
	return fromStripeIntent(intent), nil
}

// VerifyWebhook checks the signature header and parses the payment
// intent out of the event envelope. It never mutates state.
func (g *StripeGateway) VerifyWebhook(payload []byte, signatureHeader string) (interfaces.WebhookEvent, error) {
	options := webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	}
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, g.webhookSecret, options)
	if err != nil {
		log.Printf("[payment][gateway] webhook verification failed err=%v", err)
		return interfaces.WebhookEvent{}, interfaces.ErrInvalidWebhookSignature
	}

	out := interfaces.WebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		log.Printf("[payment][gateway] webhook payload parse failed event_id=%s err=%v", event.ID, err)
		return out, nil
	}

	out.IntentID = intent.ID
	out.AmountCents = intent.Amount
	out.IntentStatus = string(intent.Status)
	out.Metadata = intent.Metadata
	if intent.LastPaymentError != nil {
		out.FailureMessage = intent.LastPaymentError.Msg
	}
	return out, nil
}

func fromStripeIntent(intent *stripe.PaymentIntent) interfaces.PaymentIntent {
	return interfaces.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		AmountCents:  intent.Amount,
		Metadata:     intent.Metadata,
	}
}

func (g *StripeGateway) translateError(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		log.Printf("[payment][gateway] %s failed code=%s status=%d", op, stripeErr.Code, stripeErr.HTTPStatusCode)
		switch {
		case stripeErr.Code == stripe.ErrorCodeResourceMissing:
			return interfaces.ErrIntentNotFound
		case stripeErr.HTTPStatusCode == 401:
			return interfaces.ErrGatewayUnauthorized
		}
		return err
	}
	log.Printf("[payment][gateway] %s failed err=%v", op, err)
	return err
}
