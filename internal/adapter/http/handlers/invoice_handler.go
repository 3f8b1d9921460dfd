package handlers

import (
	"errors"
	"net/http"

	response "clientdesk/internal/adapter/http/dto/response"
	"clientdesk/internal/adapter/http/middleware"
	"clientdesk/internal/usecase"
	"clientdesk/internal/usecase/interfaces"
	"clientdesk/pkg"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles the invoice read surface, the payment session
// endpoint and the authenticated reconciliation sweep.

type InvoiceHandler struct {
	usecase usecase.IInvoiceSyncUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceSyncUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

// ListInvoices returns the caller's invoices (all invoices for admins).
//
// @Summary  List invoices
// @Tags     invoices
// @Produce  json
// @Security Bearer
// @Success  200 {array} response.InvoiceResponse
// @Router   /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	items, err := h.usecase.ListByUser(c.Request.Context(), ident)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoices(items))
}

// GetInvoice returns one invoice, owner or admin only.
//
// @Summary  Get an invoice
// @Tags     invoices
// @Produce  json
// @Security Bearer
// @Param    id path string true "invoice id"
// @Success  200 {object} response.InvoiceResponse
// @Router   /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	inv, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"), ident)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// GetPaymentSession returns the payment intent the client should
// confirm, minting a fresh one when the stored reference was cleared.
//
// @Summary  Get a payment session for an invoice
// @Tags     invoices
// @Produce  json
// @Security Bearer
// @Param    id path string true "invoice id"
// @Success  200 {object} response.PaymentSessionResponse
// @Router   /invoices/{id}/payment [get]
func (h *InvoiceHandler) GetPaymentSession(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	intent, err := h.usecase.PaymentSession(c.Request.Context(), c.Param("id"), ident)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentIntent(intent))
}

// SyncInvoiceStatus reconciles pending invoices against the processor.
// Users sweep their own invoices; admins sweep everyone's.
//
// @Summary  Sync invoice statuses against the payment processor
// @Tags     invoices
// @Produce  json
// @Security Bearer
// @Success  200 {array} usecase.SyncResult
// @Router   /sync-invoice-status [post]
func (h *InvoiceHandler) SyncInvoiceStatus(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	results, err := h.usecase.SyncPendingInvoices(c.Request.Context(), ident)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// ListProjects returns the caller's provisioned projects.
//
// @Summary  List projects
// @Tags     projects
// @Produce  json
// @Security Bearer
// @Success  200 {array} response.ProjectResponse
// @Router   /projects [get]
func (h *InvoiceHandler) ListProjects(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	items, err := h.usecase.ListProjects(c.Request.Context(), ident)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProjects(items))
}

// ListActivity returns the caller's audit trail.
//
// @Summary  List activity records
// @Tags     activity
// @Produce  json
// @Security Bearer
// @Success  200 {array} response.ActivityResponse
// @Router   /activity [get]
func (h *InvoiceHandler) ListActivity(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	items, err := h.usecase.ListActivity(c.Request.Context(), ident)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromActivities(items))
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceID),
		errors.Is(err, usecase.ErrInvalidIntentID),
		errors.Is(err, usecase.ErrNoIdentifier):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNotInvoiceOwner):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Not the invoice owner", http.StatusForbidden)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, interfaces.ErrIntentNotFound):
		return pkg.NewDomainErrorSimple("INTENT_NOT_FOUND", "Payment intent not found", http.StatusNotFound)
	case errors.Is(err, interfaces.ErrInvalidWebhookSignature):
		return pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid webhook signature", http.StatusUnauthorized)
	case errors.Is(err, interfaces.ErrGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
