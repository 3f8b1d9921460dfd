package email

import (
	"context"
	"fmt"
	"log"

	"clientdesk/internal/domain/entities"
	"clientdesk/internal/usecase/interfaces"

	"github.com/resend/resend-go/v2"
)

// ResendNotifier sends transactional email through Resend.
//
// Without an API key the notifier runs disabled and only logs; callers
// already treat every send as best effort.

type ResendNotifier struct {
	client      *resend.Client
	enabled     bool
	fromAddress string
}

var _ interfaces.INotifier = (*ResendNotifier)(nil)

func NewResendNotifier(apiKey, fromAddress string) *ResendNotifier {
	if apiKey == "" {
		log.Printf("[email][notifier] no RESEND_API_KEY, running disabled")
		return &ResendNotifier{enabled: false}
	}
	return &ResendNotifier{
		client:      resend.NewClient(apiKey),
		enabled:     true,
		fromAddress: fromAddress,
	}
}

func (n *ResendNotifier) SendPaymentConfirmation(ctx context.Context, toEmail, toName string, inv entities.Invoice) error {
	subject := fmt.Sprintf("Payment received for invoice %s", inv.ID)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>We received your payment of %s for invoice %s. Thank you!</p>",
		toName, formatAmount(inv.AmountCents), inv.ID,
	)
	return n.send(ctx, toEmail, subject, html)
}

func (n *ResendNotifier) SendProjectCreated(ctx context.Context, toEmail, toName string, p entities.Project) error {
	subject := fmt.Sprintf("Your project %q has been created", p.Title)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your project %q is set up and ready to go.</p>",
		toName, p.Title,
	)
	return n.send(ctx, toEmail, subject, html)
}

func (n *ResendNotifier) send(ctx context.Context, toEmail, subject, html string) error {
	if !n.enabled {
		log.Printf("[email][notifier] disabled, skipping send to=%s subject=%q", toEmail, subject)
		return nil
	}
	if toEmail == "" {
		log.Printf("[email][notifier] no recipient, skipping subject=%q", subject)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    n.fromAddress,
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
	}
	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("[email][notifier] sent email_id=%s to=%s", sent.Id, toEmail)
	return nil
}

func formatAmount(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
