package handlers

import (
	"net/http"

	request "clientdesk/internal/adapter/http/dto/request"
	response "clientdesk/internal/adapter/http/dto/response"
	"clientdesk/internal/usecase"
	"clientdesk/pkg"

	"github.com/gin-gonic/gin"
)

// Admin test-webhook actions.
const (
	actionMarkPaid          = "mark_paid"
	actionCheckStatus       = "check_status"
	actionListRecent        = "list_recent"
	actionSyncPaymentIntent = "sync_payment_intent"
)

var errInvalidAdminPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// AdminHandler exposes the operator recovery endpoints. Routes are
// guarded by the RequireAdmin middleware; the handlers never re-check
// the role.

type AdminHandler struct {
	usecase usecase.IInvoiceSyncUseCase
}

func NewAdminHandler(uc usecase.IInvoiceSyncUseCase) *AdminHandler {
	return &AdminHandler{usecase: uc}
}

// ManualWebhookTrigger applies the mark-paid transition by invoice or
// intent id, for when a webhook was missed or misconfigured.
//
// @Summary  Manually reconcile one invoice
// @Tags     admin
// @Accept   json
// @Produce  json
// @Security Bearer
// @Param    payload body request.ManualTriggerRequest true "target"
// @Success  200 {object} usecase.SyncResult
// @Router   /admin/manual-webhook-trigger [post]
func (h *AdminHandler) ManualWebhookTrigger(c *gin.Context) {
	var payload request.ManualTriggerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAdminPayload.HTTPStatus, errInvalidAdminPayload.ToHTTPError())
		return
	}

	invoiceID, intentID := payload.Normalized()
	result, err := h.usecase.ManualMarkPaid(c.Request.Context(), invoiceID, intentID, payload.Verify)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, result)
}

// TestWebhook is the admin action dispatch used to poke the
// reconciliation machinery without crafting signed events.
//
// @Summary  Admin reconciliation actions
// @Tags     admin
// @Accept   json
// @Produce  json
// @Security Bearer
// @Param    payload body request.TestWebhookRequest true "action"
// @Success  200 {object} map[string]interface{}
// @Router   /admin/test-webhook [post]
func (h *AdminHandler) TestWebhook(c *gin.Context) {
	var payload request.TestWebhookRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAdminPayload.HTTPStatus, errInvalidAdminPayload.ToHTTPError())
		return
	}

	ctx := c.Request.Context()
	switch payload.Action {
	case actionMarkPaid:
		result, err := h.usecase.ManualMarkPaid(ctx, payload.InvoiceID, payload.PaymentIntentID, false)
		if err != nil {
			appErr := mapInvoiceError(err)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.JSON(http.StatusOK, gin.H{"action": payload.Action, "result": result})

	case actionCheckStatus:
		intent, err := h.usecase.CheckIntentStatus(ctx, payload.PaymentIntentID)
		if err != nil {
			appErr := mapInvoiceError(err)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		resp := gin.H{"action": payload.Action, "intent": response.FromPaymentIntent(intent)}
		if payload.InvoiceID != "" {
			if project, err := h.usecase.ProjectForInvoice(ctx, payload.InvoiceID); err == nil && project.InvoiceID != "" {
				resp["project"] = response.FromProject(project)
			}
		}
		c.JSON(http.StatusOK, resp)

	case actionListRecent:
		items, err := h.usecase.ListRecent(ctx, payload.Limit)
		if err != nil {
			appErr := mapInvoiceError(err)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.JSON(http.StatusOK, gin.H{"action": payload.Action, "invoices": response.FromInvoices(items)})

	case actionSyncPaymentIntent:
		// Same transition as mark_paid but re-verified against the live
		// intent status first.
		result, err := h.usecase.ManualMarkPaid(ctx, payload.InvoiceID, payload.PaymentIntentID, true)
		if err != nil {
			appErr := mapInvoiceError(err)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.JSON(http.StatusOK, gin.H{"action": payload.Action, "result": result})

	default:
		c.JSON(errInvalidAdminPayload.HTTPStatus, errInvalidAdminPayload.ToHTTPError())
	}
}
