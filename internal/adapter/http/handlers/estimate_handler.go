package handlers

import (
	"errors"
	"net/http"

	request "clientdesk/internal/adapter/http/dto/request"
	response "clientdesk/internal/adapter/http/dto/response"
	"clientdesk/internal/adapter/http/middleware"
	"clientdesk/internal/usecase"
	"clientdesk/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
	errMissingIdentity        = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing identity", http.StatusUnauthorized)
)

// EstimateHandler handles HTTP requests for the estimate state machine.

type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// CreateEstimate creates an estimate. Normal users get a pending
// estimate with at most a price range; admins create finalized
// estimates with a firm price.
//
// @Summary  Create an estimate
// @Tags     estimates
// @Accept   json
// @Produce  json
// @Security Bearer
// @Param    payload body request.CreateEstimateRequest true "estimate"
// @Success  201 {object} response.EstimateResponse
// @Router   /estimates [post]
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	var payload request.CreateEstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.Create(c.Request.Context(), ident, payload.ToInput())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromEstimate(estimate))
}

// ListEstimates returns the caller's estimates.
//
// @Summary  List own estimates
// @Tags     estimates
// @Produce  json
// @Security Bearer
// @Success  200 {array} response.EstimateResponse
// @Router   /estimates [get]
func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	items, err := h.usecase.ListByUser(c.Request.Context(), ident)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEstimates(items))
}

// GetEstimate returns one estimate, owner or admin only.
//
// @Summary  Get an estimate
// @Tags     estimates
// @Produce  json
// @Security Bearer
// @Param    id path string true "estimate id"
// @Success  200 {object} response.EstimateResponse
// @Router   /estimates/{id} [get]
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	estimate, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"), ident)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// FinalizeEstimate fixes the price and tax rate on a pending estimate.
// Admin only (enforced by route middleware).
//
// @Summary  Finalize an estimate
// @Tags     estimates
// @Accept   json
// @Produce  json
// @Security Bearer
// @Param    id path string true "estimate id"
// @Param    payload body request.FinalizeEstimateRequest true "price"
// @Success  200 {object} response.EstimateResponse
// @Router   /estimates/{id}/finalize [patch]
func (h *EstimateHandler) FinalizeEstimate(c *gin.Context) {
	var payload request.FinalizeEstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.Finalize(c.Request.Context(), c.Param("id"), payload.FinalPriceCents, payload.TaxRatePercent)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// ApproveEstimate approves a finalized estimate and mints the invoice
// plus its payment intent.
//
// @Summary  Approve an estimate
// @Tags     estimates
// @Produce  json
// @Security Bearer
// @Param    id path string true "estimate id"
// @Success  200 {object} response.ApproveEstimateResponse
// @Router   /estimates/{id}/approve [post]
func (h *EstimateHandler) ApproveEstimate(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	estimate, invoice, err := h.usecase.Approve(c.Request.Context(), c.Param("id"), ident)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.ApproveEstimateResponse{
		Estimate: response.FromEstimate(estimate),
		Invoice:  response.FromInvoice(invoice),
	})
}

// RejectEstimate rejects a finalized estimate.
//
// @Summary  Reject an estimate
// @Tags     estimates
// @Produce  json
// @Security Bearer
// @Param    id path string true "estimate id"
// @Success  200 {object} response.EstimateResponse
// @Router   /estimates/{id}/reject [post]
func (h *EstimateHandler) RejectEstimate(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
		return
	}

	estimate, err := h.usecase.Reject(c.Request.Context(), c.Param("id"), ident)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func mapEstimateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID),
		errors.Is(err, usecase.ErrInvalidEstimateTitle),
		errors.Is(err, usecase.ErrInvalidPriceRange),
		errors.Is(err, usecase.ErrInvalidFinalPrice),
		errors.Is(err, usecase.ErrInvalidTaxRate),
		errors.Is(err, usecase.ErrFinalPriceNotAllowed),
		errors.Is(err, usecase.ErrEstimateNotPending),
		errors.Is(err, usecase.ErrEstimateNotFinalized),
		errors.Is(err, usecase.ErrEstimateAlreadyApproved),
		errors.Is(err, usecase.ErrEstimateMissingPrice):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNotEstimateOwner):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Not the estimate owner", http.StatusForbidden)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoiceAlreadyExists):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_EXISTS", "Invoice already exists for this estimate", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
