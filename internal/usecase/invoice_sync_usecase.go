package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"clientdesk/internal/domain/entities"
	"clientdesk/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrInvalidInvoiceID = errors.New("invalid invoice id")
	ErrInvalidIntentID  = errors.New("invalid payment intent id")
	ErrNotInvoiceOwner  = errors.New("requester does not own this invoice")
	ErrNoIdentifier     = errors.New("either invoice id or payment intent id is required")
)

// Sync result statuses reported per invoice by the sweep and the manual
// trigger.
const (
	SyncStatusSynced      = "synced"
	SyncStatusNoAction    = "no_action"
	SyncStatusStripeError = "stripe_error"
	SyncStatusAlreadyPaid = "already_paid"
)

// Sources feeding the idempotent mark-paid transition.
const (
	sourceWebhook = "webhook"
	sourceManual  = "manual"
	sourceSweep   = "sweep"
)

// SyncResult is one per-invoice entry in a sweep or manual response.
type SyncResult struct {
	InvoiceID       string `json:"invoice_id"`
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
	Status          string `json:"status"`
	Detail          string `json:"detail,omitempty"`
}

// WebhookOutcome reports what a verified webhook event did.
type WebhookOutcome struct {
	EventType string `json:"event_type"`
	InvoiceID string `json:"invoice_id,omitempty"`
	Action    string `json:"action"`
}

// IInvoiceSyncUseCase is the reconciliation engine plus the invoice
// read surface.
//
// Three entry points (webhook push, manual admin pull, sweep) drive the
// same conditional pending->paid transition; whichever caller wins the
// race runs the side effects exactly once.

type IInvoiceSyncUseCase interface {
	HandleWebhookEvent(ctx context.Context, payload []byte, signatureHeader string) (WebhookOutcome, error)
	ManualMarkPaid(ctx context.Context, invoiceID, intentID string, verify bool) (SyncResult, error)
	SyncPendingInvoices(ctx context.Context, ident Identity) ([]SyncResult, error)

	GetByID(ctx context.Context, id string, ident Identity) (entities.Invoice, error)
	ListByUser(ctx context.Context, ident Identity) ([]entities.Invoice, error)
	ListRecent(ctx context.Context, limit int) ([]entities.Invoice, error)
	PaymentSession(ctx context.Context, invoiceID string, ident Identity) (interfaces.PaymentIntent, error)
	CheckIntentStatus(ctx context.Context, intentID string) (interfaces.PaymentIntent, error)

	ListProjects(ctx context.Context, ident Identity) ([]entities.Project, error)
	ProjectForInvoice(ctx context.Context, invoiceID string) (entities.Project, error)
	ListActivity(ctx context.Context, ident Identity) ([]entities.ActivityRecord, error)
}

type InvoiceSyncUseCase struct {
	invoiceRepo  interfaces.IInvoiceRepository
	estimateRepo interfaces.IEstimateRepository
	projectRepo  interfaces.IProjectRepository
	activityRepo interfaces.IActivityRepository
	gateway      interfaces.IPaymentGateway
	notifier     interfaces.INotifier
	currency     string
}

var _ IInvoiceSyncUseCase = (*InvoiceSyncUseCase)(nil)

func NewInvoiceSyncUseCase(
	invoiceRepo interfaces.IInvoiceRepository,
	estimateRepo interfaces.IEstimateRepository,
	projectRepo interfaces.IProjectRepository,
	activityRepo interfaces.IActivityRepository,
	gateway interfaces.IPaymentGateway,
	notifier interfaces.INotifier,
	currency string,
) *InvoiceSyncUseCase {
	if currency == "" {
		currency = "usd"
	}
	return &InvoiceSyncUseCase{
		invoiceRepo:  invoiceRepo,
		estimateRepo: estimateRepo,
		projectRepo:  projectRepo,
		activityRepo: activityRepo,
		gateway:      gateway,
		notifier:     notifier,
		currency:     currency,
	}
}

// HandleWebhookEvent verifies the signature before anything else, then
// dispatches on the event type.
func (u *InvoiceSyncUseCase) HandleWebhookEvent(ctx context.Context, payload []byte, signatureHeader string) (WebhookOutcome, error) {
	event, err := u.gateway.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		return WebhookOutcome{}, err
	}

	log.Printf("[invoice][webhook] event received event_id=%s type=%s intent_id=%s", event.ID, event.Type, event.IntentID)

	switch event.Type {
	case interfaces.EventPaymentSucceeded:
		return u.handleIntentSucceeded(ctx, event)
	case interfaces.EventPaymentFailed:
		return u.handleIntentFailed(ctx, event)
	case interfaces.EventPaymentCanceled:
		return u.handleIntentCanceled(ctx, event)
	default:
		log.Printf("[invoice][webhook] ignoring event type=%s", event.Type)
		return WebhookOutcome{EventType: event.Type, Action: "ignored"}, nil
	}
}

func (u *InvoiceSyncUseCase) handleIntentSucceeded(ctx context.Context, event interfaces.WebhookEvent) (WebhookOutcome, error) {
	inv, err := u.findInvoiceForIntent(ctx, event)
	if err != nil {
		return WebhookOutcome{}, err
	}

	paidNow, err := u.attemptMarkPaid(ctx, inv, event.AmountCents, sourceWebhook)
	if err != nil {
		return WebhookOutcome{}, err
	}

	action := "already_paid"
	if paidNow {
		action = "paid"
	}
	return WebhookOutcome{EventType: event.Type, InvoiceID: inv.ID, Action: action}, nil
}

// findInvoiceForIntent resolves the invoice by stored intent reference,
// falling back to the invoice_id metadata hint. The fallback self-heals
// the stored reference so later events resolve directly.
func (u *InvoiceSyncUseCase) findInvoiceForIntent(ctx context.Context, event interfaces.WebhookEvent) (entities.Invoice, error) {
	inv, err := u.invoiceRepo.GetByPaymentIntentID(ctx, event.IntentID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID != "" {
		return inv, nil
	}

	hint := event.Metadata["invoice_id"]
	if hint == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}

	inv, err = u.invoiceRepo.GetByID(ctx, hint)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}

	log.Printf("[invoice][webhook] intent ref self-heal invoice_id=%s intent_id=%s stored=%q", inv.ID, event.IntentID, inv.PaymentIntentID)
	if healed, err := u.invoiceRepo.SetPaymentIntentID(ctx, inv.ID, event.IntentID); err != nil {
		log.Printf("[invoice][webhook] intent ref self-heal failed invoice_id=%s err=%v", inv.ID, err)
	} else if healed.ID != "" {
		inv = healed
	}
	return inv, nil
}

func (u *InvoiceSyncUseCase) handleIntentFailed(ctx context.Context, event interfaces.WebhookEvent) (WebhookOutcome, error) {
	inv, err := u.invoiceRepo.GetByPaymentIntentID(ctx, event.IntentID)
	if err != nil {
		return WebhookOutcome{}, err
	}
	if inv.ID == "" {
		return WebhookOutcome{}, ErrInvoiceNotFound
	}

	if _, err := u.invoiceRepo.MarkOverdue(ctx, inv.ID); err != nil {
		return WebhookOutcome{}, err
	}
	log.Printf("[invoice][webhook] marked overdue invoice_id=%s intent_id=%s reason=%q", inv.ID, event.IntentID, event.FailureMessage)

	rec := entities.ActivityRecord{
		ID:          uuid.NewString(),
		UserID:      inv.UserID,
		Type:        entities.ActivityPaymentFailed,
		Description: fmt.Sprintf("Payment failed for invoice %s: %s", inv.ID, event.FailureMessage),
		Metadata: map[string]string{
			"invoice_id":        inv.ID,
			"payment_intent_id": event.IntentID,
			"failure_message":   event.FailureMessage,
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := u.activityRepo.Create(ctx, rec); err != nil {
		log.Printf("[invoice][webhook] payment_failed activity write failed invoice_id=%s err=%v", inv.ID, err)
	}

	return WebhookOutcome{EventType: event.Type, InvoiceID: inv.ID, Action: "overdue"}, nil
}

// handleIntentCanceled clears the stored reference so a later payment
// attempt allocates a fresh intent. Unknown intents are expected (the
// processor also notifies about abandoned checkouts) and are not errors.
func (u *InvoiceSyncUseCase) handleIntentCanceled(ctx context.Context, event interfaces.WebhookEvent) (WebhookOutcome, error) {
	inv, err := u.invoiceRepo.GetByPaymentIntentID(ctx, event.IntentID)
	if err != nil {
		return WebhookOutcome{}, err
	}
	if inv.ID == "" {
		log.Printf("[invoice][webhook] canceled intent not tracked intent_id=%s", event.IntentID)
		return WebhookOutcome{EventType: event.Type, Action: "ignored"}, nil
	}

	if _, err := u.invoiceRepo.SetPaymentIntentID(ctx, inv.ID, ""); err != nil {
		return WebhookOutcome{}, err
	}
	log.Printf("[invoice][webhook] intent ref cleared invoice_id=%s intent_id=%s", inv.ID, event.IntentID)
	return WebhookOutcome{EventType: event.Type, InvoiceID: inv.ID, Action: "intent_cleared"}, nil
}

// ManualMarkPaid is the operator recovery path for a missed or
// misconfigured webhook. It accepts either identifier and, when verify
// is set, re-checks the live intent status first (mismatch is logged,
// not enforced). Unlike the automatic paths, it may also force an
// overdue invoice to paid.
func (u *InvoiceSyncUseCase) ManualMarkPaid(ctx context.Context, invoiceID, intentID string, verify bool) (SyncResult, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	intentID = strings.TrimSpace(intentID)

	var inv entities.Invoice
	var err error
	switch {
	case invoiceID != "":
		inv, err = u.invoiceRepo.GetByID(ctx, invoiceID)
	case intentID != "":
		inv, err = u.invoiceRepo.GetByPaymentIntentID(ctx, intentID)
	default:
		return SyncResult{}, ErrNoIdentifier
	}
	if err != nil {
		return SyncResult{}, err
	}
	if inv.ID == "" {
		return SyncResult{}, ErrInvoiceNotFound
	}

	observedAmount := inv.AmountCents
	if verify && inv.PaymentIntentID != "" {
		intent, err := u.gateway.RetrievePaymentIntent(ctx, inv.PaymentIntentID)
		if err != nil {
			log.Printf("[invoice][manual] live intent check failed invoice_id=%s intent_id=%s err=%v", inv.ID, inv.PaymentIntentID, err)
		} else {
			observedAmount = intent.AmountCents
			if intent.Status != interfaces.IntentStatusSucceeded {
				log.Printf("[invoice][manual] intent status mismatch invoice_id=%s intent_id=%s status=%s", inv.ID, inv.PaymentIntentID, intent.Status)
			}
		}
	}

	paidNow, err := u.attemptMarkPaid(ctx, inv, observedAmount, sourceManual)
	if err != nil {
		return SyncResult{}, err
	}

	res := SyncResult{InvoiceID: inv.ID, PaymentIntentID: inv.PaymentIntentID}
	if paidNow {
		res.Status = SyncStatusSynced
	} else {
		res.Status = SyncStatusAlreadyPaid
		res.Detail = "invoice already marked paid"
	}
	return res, nil
}

// SyncPendingInvoices sweeps pending invoices that carry an intent
// reference and reconciles each against the processor. Per-invoice
// failures are captured into the result list and never abort the sweep.
func (u *InvoiceSyncUseCase) SyncPendingInvoices(ctx context.Context, ident Identity) ([]SyncResult, error) {
	scope := ident.UserID
	if ident.IsAdmin {
		scope = ""
	}

	invoices, err := u.invoiceRepo.ListPendingWithIntent(ctx, scope)
	if err != nil {
		return nil, err
	}
	log.Printf("[invoice][sweep] start admin=%t invoices=%d", ident.IsAdmin, len(invoices))

	results := make([]SyncResult, 0, len(invoices))
	for _, inv := range invoices {
		results = append(results, u.syncOne(ctx, inv))
	}
	return results, nil
}

func (u *InvoiceSyncUseCase) syncOne(ctx context.Context, inv entities.Invoice) SyncResult {
	res := SyncResult{InvoiceID: inv.ID, PaymentIntentID: inv.PaymentIntentID}

	intent, err := u.gateway.RetrievePaymentIntent(ctx, inv.PaymentIntentID)
	if err != nil {
		log.Printf("[invoice][sweep] intent retrieve failed invoice_id=%s intent_id=%s err=%v", inv.ID, inv.PaymentIntentID, err)
		res.Status = SyncStatusStripeError
		res.Detail = err.Error()
		return res
	}

	if intent.Status != interfaces.IntentStatusSucceeded {
		res.Status = SyncStatusNoAction
		res.Detail = fmt.Sprintf("intent status %s", intent.Status)
		return res
	}

	paidNow, err := u.attemptMarkPaid(ctx, inv, intent.AmountCents, sourceSweep)
	if err != nil {
		res.Status = SyncStatusStripeError
		res.Detail = err.Error()
		return res
	}
	if paidNow {
		res.Status = SyncStatusSynced
	} else {
		res.Status = SyncStatusNoAction
		res.Detail = "invoice already marked paid"
	}
	return res
}

// attemptMarkPaid is the single idempotent pending->paid transition all
// three entry points funnel into. It returns true only when this call
// actually flipped the row, and runs side effects only in that case.
func (u *InvoiceSyncUseCase) attemptMarkPaid(ctx context.Context, inv entities.Invoice, observedAmountCents int64, source string) (bool, error) {
	if inv.Status == entities.InvoiceStatusPaid {
		log.Printf("[invoice][%s] already paid invoice_id=%s", source, inv.ID)
		return false, nil
	}

	if observedAmountCents != 0 && observedAmountCents != inv.AmountCents {
		// Logged, not enforced: the processor's confirmation wins.
		log.Printf("[invoice][%s] amount mismatch invoice_id=%s invoice_amount=%d observed_amount=%d", source, inv.ID, inv.AmountCents, observedAmountCents)
	}

	allowOverdue := source == sourceManual
	updated, err := u.invoiceRepo.MarkPaid(ctx, inv.ID, time.Now().UTC(), allowOverdue)
	if err != nil {
		return false, err
	}
	if updated.ID == "" {
		// Lost the race against another entry point; the winner already
		// ran the side effects.
		log.Printf("[invoice][%s] conditional update lost invoice_id=%s", source, inv.ID)
		return false, nil
	}

	log.Printf("[invoice][%s] marked paid invoice_id=%s intent_id=%s", source, updated.ID, updated.PaymentIntentID)
	u.runPaidSideEffects(ctx, updated, source)
	return true, nil
}

// runPaidSideEffects provisions the project, writes the dedup-guarded
// activity records and dispatches the notification emails. Everything
// here is best effort: failures are logged and never surfaced.
func (u *InvoiceSyncUseCase) runPaidSideEffects(ctx context.Context, inv entities.Invoice, source string) {
	projectCreated := false
	project := entities.Project{
		InvoiceID:   inv.ID,
		ID:          uuid.NewString(),
		UserID:      inv.UserID,
		Status:      entities.ProjectStatusPending,
		CreatedAt:   time.Now().UTC(),
		Title:       fmt.Sprintf("Project for invoice %s", inv.ID),
		Description: "",
	}
	if est, err := u.estimateRepo.GetByID(ctx, inv.EstimateID); err != nil {
		log.Printf("[invoice][%s] estimate lookup for project failed invoice_id=%s err=%v", source, inv.ID, err)
	} else if est.ID != "" {
		project.Title = est.Title
		project.Description = est.Description
	}

	created, err := u.projectRepo.CreateIfAbsent(ctx, project)
	if err != nil {
		log.Printf("[invoice][%s] project provisioning failed invoice_id=%s err=%v", source, inv.ID, err)
	} else {
		projectCreated = created
		if !created {
			log.Printf("[invoice][%s] project already provisioned invoice_id=%s", source, inv.ID)
		}
	}

	now := time.Now().UTC()
	paidRec := entities.ActivityRecord{
		ID:          entities.PaymentDedupID(inv.UserID, entities.ActivityInvoicePaid, inv.PaymentIntentID),
		UserID:      inv.UserID,
		Type:        entities.ActivityInvoicePaid,
		Description: fmt.Sprintf("Invoice %s paid", inv.ID),
		Metadata: map[string]string{
			"invoice_id":        inv.ID,
			"payment_intent_id": inv.PaymentIntentID,
			"source":            source,
		},
		CreatedAt: now,
	}
	if _, err := u.activityRepo.CreateUnique(ctx, paidRec); err != nil {
		log.Printf("[invoice][%s] invoice_paid activity write failed invoice_id=%s err=%v", source, inv.ID, err)
	}

	if projectCreated {
		projRec := entities.ActivityRecord{
			ID:          entities.PaymentDedupID(inv.UserID, entities.ActivityProjectCreated, inv.PaymentIntentID),
			UserID:      inv.UserID,
			Type:        entities.ActivityProjectCreated,
			Description: fmt.Sprintf("Project %q created", project.Title),
			Metadata: map[string]string{
				"invoice_id":        inv.ID,
				"project_id":        project.ID,
				"payment_intent_id": inv.PaymentIntentID,
			},
			CreatedAt: now,
		}
		if _, err := u.activityRepo.CreateUnique(ctx, projRec); err != nil {
			log.Printf("[invoice][%s] project_created activity write failed invoice_id=%s err=%v", source, inv.ID, err)
		}
	}

	if err := u.notifier.SendPaymentConfirmation(ctx, inv.UserEmail, inv.UserName, inv); err != nil {
		log.Printf("[invoice][%s] payment confirmation email failed invoice_id=%s err=%v", source, inv.ID, err)
	}
	if projectCreated {
		if err := u.notifier.SendProjectCreated(ctx, inv.UserEmail, inv.UserName, project); err != nil {
			log.Printf("[invoice][%s] project created email failed invoice_id=%s err=%v", source, inv.ID, err)
		}
	}
}

func (u *InvoiceSyncUseCase) GetByID(ctx context.Context, id string, ident Identity) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}

	inv, err := u.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	if !ident.IsAdmin && inv.UserID != ident.UserID {
		return entities.Invoice{}, ErrNotInvoiceOwner
	}
	return inv, nil
}

func (u *InvoiceSyncUseCase) ListByUser(ctx context.Context, ident Identity) ([]entities.Invoice, error) {
	if ident.IsAdmin {
		return u.invoiceRepo.ListRecent(ctx, 100)
	}
	return u.invoiceRepo.ListByUserID(ctx, ident.UserID)
}

func (u *InvoiceSyncUseCase) ListRecent(ctx context.Context, limit int) ([]entities.Invoice, error) {
	if limit <= 0 {
		limit = 10
	}
	return u.invoiceRepo.ListRecent(ctx, limit)
}

// PaymentSession returns the intent the client should confirm, minting
// a fresh one when the stored reference was cleared by a cancel event.
func (u *InvoiceSyncUseCase) PaymentSession(ctx context.Context, invoiceID string, ident Identity) (interfaces.PaymentIntent, error) {
	inv, err := u.GetByID(ctx, invoiceID, ident)
	if err != nil {
		return interfaces.PaymentIntent{}, err
	}

	if inv.PaymentIntentID != "" {
		intent, err := u.gateway.RetrievePaymentIntent(ctx, inv.PaymentIntentID)
		if err == nil && intent.Status != interfaces.IntentStatusCanceled {
			return intent, nil
		}
		if err != nil && !errors.Is(err, interfaces.ErrIntentNotFound) {
			return interfaces.PaymentIntent{}, err
		}
		log.Printf("[invoice][payment] stored intent unusable, minting fresh invoice_id=%s intent_id=%s", inv.ID, inv.PaymentIntentID)
	}

	customerID, err := u.gateway.GetOrCreateCustomer(ctx, inv.UserEmail, inv.UserName, "", map[string]string{
		"user_id": inv.UserID,
	})
	if err != nil {
		return interfaces.PaymentIntent{}, err
	}

	intent, err := u.gateway.CreatePaymentIntent(ctx, inv.AmountCents, u.currency, customerID,
		fmt.Sprintf("Invoice %s", inv.ID),
		map[string]string{
			"invoice_id":  inv.ID,
			"estimate_id": inv.EstimateID,
			"user_id":     inv.UserID,
		})
	if err != nil {
		return interfaces.PaymentIntent{}, err
	}

	if _, err := u.invoiceRepo.SetPaymentIntentID(ctx, inv.ID, intent.ID); err != nil {
		return interfaces.PaymentIntent{}, err
	}
	return intent, nil
}

func (u *InvoiceSyncUseCase) CheckIntentStatus(ctx context.Context, intentID string) (interfaces.PaymentIntent, error) {
	intentID = strings.TrimSpace(intentID)
	if intentID == "" {
		return interfaces.PaymentIntent{}, ErrInvalidIntentID
	}
	return u.gateway.RetrievePaymentIntent(ctx, intentID)
}

func (u *InvoiceSyncUseCase) ListProjects(ctx context.Context, ident Identity) ([]entities.Project, error) {
	return u.projectRepo.ListByUserID(ctx, ident.UserID)
}

func (u *InvoiceSyncUseCase) ProjectForInvoice(ctx context.Context, invoiceID string) (entities.Project, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return entities.Project{}, ErrInvalidInvoiceID
	}
	return u.projectRepo.GetByInvoiceID(ctx, invoiceID)
}

func (u *InvoiceSyncUseCase) ListActivity(ctx context.Context, ident Identity) ([]entities.ActivityRecord, error) {
	return u.activityRepo.ListByUserID(ctx, ident.UserID)
}
