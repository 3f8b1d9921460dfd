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
	ErrEstimateNotFound        = errors.New("estimate not found")
	ErrInvalidEstimateID       = errors.New("invalid estimate id")
	ErrInvalidEstimateTitle    = errors.New("invalid estimate title")
	ErrInvalidPriceRange       = errors.New("invalid price range")
	ErrInvalidFinalPrice       = errors.New("invalid final price")
	ErrInvalidTaxRate          = errors.New("tax rate outside [0,100]")
	ErrEstimateNotPending      = errors.New("estimate is not pending")
	ErrEstimateNotFinalized    = errors.New("estimate is not finalized")
	ErrEstimateAlreadyApproved = errors.New("estimate already approved")
	ErrEstimateMissingPrice    = errors.New("estimate has no final price")
	ErrNotEstimateOwner        = errors.New("requester does not own this estimate")
	ErrFinalPriceNotAllowed    = errors.New("final price may only be set by an admin")
	ErrInvoiceAlreadyExists    = errors.New("invoice already exists for this estimate")
)

const invoiceDueDays = 30

// CreateEstimateInput carries the role-dependent creation payload.
// FinalPriceCents is the pre-tax amount; the stored total is
// tax-inclusive.
type CreateEstimateInput struct {
	Title           string
	Description     string
	PriceMinCents   *int64
	PriceMaxCents   *int64
	FinalPriceCents *int64
	TaxRatePercent  *float64
}

// IEstimateUseCase exposes the estimate state machine.
//
// Transitions:
//   - user create            -> pending (price range only)
//   - admin create/finalize  -> finalized (final price + tax rate)
//   - owner approve          -> approved, invoice + payment intent minted
//   - owner reject           -> rejected

type IEstimateUseCase interface {
	Create(ctx context.Context, ident Identity, in CreateEstimateInput) (entities.Estimate, error)
	Finalize(ctx context.Context, id string, preTaxCents int64, taxRatePercent float64) (entities.Estimate, error)
	Approve(ctx context.Context, id string, ident Identity) (entities.Estimate, entities.Invoice, error)
	Reject(ctx context.Context, id string, ident Identity) (entities.Estimate, error)
	GetByID(ctx context.Context, id string, ident Identity) (entities.Estimate, error)
	ListByUser(ctx context.Context, ident Identity) ([]entities.Estimate, error)
}

type EstimateUseCase struct {
	repo        interfaces.IEstimateRepository
	invoiceRepo interfaces.IInvoiceRepository
	gateway     interfaces.IPaymentGateway
	currency    string
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(repo interfaces.IEstimateRepository, invoiceRepo interfaces.IInvoiceRepository, gateway interfaces.IPaymentGateway, currency string) *EstimateUseCase {
	if currency == "" {
		currency = "usd"
	}
	return &EstimateUseCase{repo: repo, invoiceRepo: invoiceRepo, gateway: gateway, currency: currency}
}

func (u *EstimateUseCase) Create(ctx context.Context, ident Identity, in CreateEstimateInput) (entities.Estimate, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return entities.Estimate{}, ErrInvalidEstimateTitle
	}

	now := time.Now().UTC()
	e := entities.Estimate{
		ID:          uuid.NewString(),
		UserID:      ident.UserID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
	}

	if ident.IsAdmin {
		// Admin-created estimates are finalized immediately with a firm,
		// tax-inclusive price.
		if in.FinalPriceCents == nil || *in.FinalPriceCents <= 0 {
			return entities.Estimate{}, ErrInvalidFinalPrice
		}
		if in.TaxRatePercent == nil || *in.TaxRatePercent < 0 || *in.TaxRatePercent > 100 {
			return entities.Estimate{}, ErrInvalidTaxRate
		}
		total := entities.TotalWithTaxCents(*in.FinalPriceCents, *in.TaxRatePercent)
		rate := *in.TaxRatePercent
		e.FinalPriceCents = &total
		e.TaxRatePercent = &rate
		e.Status = entities.EstimateStatusFinalized
		e.FinalizedAt = &now
	} else {
		if in.FinalPriceCents != nil || in.TaxRatePercent != nil {
			return entities.Estimate{}, ErrFinalPriceNotAllowed
		}
		if in.PriceMinCents != nil || in.PriceMaxCents != nil {
			min, max := in.PriceMinCents, in.PriceMaxCents
			if min == nil || max == nil || *min <= 0 || *max < *min {
				return entities.Estimate{}, ErrInvalidPriceRange
			}
			e.PriceMinCents = min
			e.PriceMaxCents = max
		}
		e.Status = entities.EstimateStatusPending
	}

	return u.repo.Create(ctx, e)
}

func (u *EstimateUseCase) Finalize(ctx context.Context, id string, preTaxCents int64, taxRatePercent float64) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	if preTaxCents <= 0 {
		return entities.Estimate{}, ErrInvalidFinalPrice
	}
	if taxRatePercent < 0 || taxRatePercent > 100 {
		return entities.Estimate{}, ErrInvalidTaxRate
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if existing.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}

	total := entities.TotalWithTaxCents(preTaxCents, taxRatePercent)
	updated, err := u.repo.Finalize(ctx, id, total, taxRatePercent, time.Now().UTC())
	if err != nil {
		return entities.Estimate{}, err
	}
	if updated.ID == "" {
		// Condition lost: the row left pending between read and write.
		return entities.Estimate{}, ErrEstimateNotPending
	}
	return updated, nil
}

// Approve moves a finalized estimate to approved and synchronously mints
// the invoice and its payment intent. If anything past the approval
// write fails, the approval is compensated back to finalized before the
// error is returned.
func (u *EstimateUseCase) Approve(ctx context.Context, id string, ident Identity) (entities.Estimate, entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, entities.Invoice{}, ErrInvalidEstimateID
	}

	est, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, entities.Invoice{}, err
	}
	if est.ID == "" {
		return entities.Estimate{}, entities.Invoice{}, ErrEstimateNotFound
	}
	if est.UserID != ident.UserID {
		return entities.Estimate{}, entities.Invoice{}, ErrNotEstimateOwner
	}
	if est.ApprovedByUser {
		return entities.Estimate{}, entities.Invoice{}, ErrEstimateAlreadyApproved
	}
	if est.Status != entities.EstimateStatusFinalized {
		return entities.Estimate{}, entities.Invoice{}, ErrEstimateNotFinalized
	}
	if est.FinalPriceCents == nil || *est.FinalPriceCents <= 0 {
		return entities.Estimate{}, entities.Invoice{}, ErrEstimateMissingPrice
	}

	if existing, err := u.invoiceRepo.GetByEstimateID(ctx, id); err != nil {
		return entities.Estimate{}, entities.Invoice{}, err
	} else if existing.ID != "" {
		return entities.Estimate{}, entities.Invoice{}, ErrInvoiceAlreadyExists
	}

	approved, err := u.repo.MarkApproved(ctx, id)
	if err != nil {
		return entities.Estimate{}, entities.Invoice{}, err
	}
	if approved.ID == "" {
		// Lost a concurrent approve; treat like the already-approved case.
		return entities.Estimate{}, entities.Invoice{}, ErrEstimateAlreadyApproved
	}

	invoice, err := u.createInvoice(ctx, approved, ident)
	if err != nil {
		log.Printf("[estimate][usecase] invoice creation failed, compensating approval estimate_id=%s err=%v", id, err)
		if _, revertErr := u.repo.RevertApproval(ctx, id); revertErr != nil {
			log.Printf("[estimate][usecase] compensating rollback failed estimate_id=%s err=%v", id, revertErr)
		}
		return entities.Estimate{}, entities.Invoice{}, err
	}

	log.Printf("[estimate][usecase] approved estimate_id=%s invoice_id=%s intent_id=%s", id, invoice.ID, invoice.PaymentIntentID)
	return approved, invoice, nil
}

func (u *EstimateUseCase) createInvoice(ctx context.Context, est entities.Estimate, ident Identity) (entities.Invoice, error) {
	now := time.Now().UTC()
	taxRate := 0.0
	if est.TaxRatePercent != nil {
		taxRate = *est.TaxRatePercent
	}

	inv := entities.Invoice{
		ID:             uuid.NewString(),
		EstimateID:     est.ID,
		UserID:         est.UserID,
		UserEmail:      ident.Email,
		UserName:       ident.Name,
		AmountCents:    *est.FinalPriceCents,
		TaxRatePercent: taxRate,
		Status:         entities.InvoiceStatusPending,
		DueDate:        now.AddDate(0, 0, invoiceDueDays),
		CreatedAt:      now,
	}

	customerID, err := u.gateway.GetOrCreateCustomer(ctx, ident.Email, ident.Name, "", map[string]string{
		"user_id": est.UserID,
	})
	if err != nil {
		return entities.Invoice{}, err
	}

	intent, err := u.gateway.CreatePaymentIntent(ctx, inv.AmountCents, u.currency, customerID,
		fmt.Sprintf("Invoice for estimate %q", est.Title),
		map[string]string{
			"invoice_id":  inv.ID,
			"estimate_id": est.ID,
			"user_id":     est.UserID,
		})
	if err != nil {
		return entities.Invoice{}, err
	}
	inv.PaymentIntentID = intent.ID

	return u.invoiceRepo.Create(ctx, inv)
}

func (u *EstimateUseCase) Reject(ctx context.Context, id string, ident Identity) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}

	est, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if est.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	if est.UserID != ident.UserID {
		return entities.Estimate{}, ErrNotEstimateOwner
	}
	if est.ApprovedByUser {
		return entities.Estimate{}, ErrEstimateAlreadyApproved
	}
	if est.Status != entities.EstimateStatusFinalized {
		return entities.Estimate{}, ErrEstimateNotFinalized
	}

	updated, err := u.repo.MarkRejected(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if updated.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFinalized
	}
	return updated, nil
}

func (u *EstimateUseCase) GetByID(ctx context.Context, id string, ident Identity) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}

	est, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if est.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	if !ident.IsAdmin && est.UserID != ident.UserID {
		return entities.Estimate{}, ErrNotEstimateOwner
	}
	return est, nil
}

func (u *EstimateUseCase) ListByUser(ctx context.Context, ident Identity) ([]entities.Estimate, error) {
	return u.repo.ListByUserID(ctx, ident.UserID)
}
