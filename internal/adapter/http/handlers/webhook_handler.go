package handlers

import (
	"log"
	"net/http"

	"clientdesk/internal/usecase"
	"clientdesk/pkg"

	"github.com/gin-gonic/gin"
)

const stripeSignatureHeader = "Stripe-Signature"

// WebhookHandler receives payment processor events. The endpoint is
// unauthenticated; the signature check inside the use case is the only
// trust boundary, and it runs before any state mutation.

type WebhookHandler struct {
	usecase usecase.IInvoiceSyncUseCase
}

func NewWebhookHandler(uc usecase.IInvoiceSyncUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// HandleWebhook verifies and dispatches one processor event.
//
// @Summary  Payment processor webhook
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    Stripe-Signature header string true "event signature"
// @Success  200 {object} usecase.WebhookOutcome
// @Router   /invoices/webhook [post]
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		log.Printf("[invoice][webhook] body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	outcome, err := h.usecase.HandleWebhookEvent(c.Request.Context(), payload, c.GetHeader(stripeSignatureHeader))
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, outcome)
}
