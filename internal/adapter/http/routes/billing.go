package routes

import (
	"clientdesk/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates = "/estimates"
	PathInvoices  = "/invoices"
)

func addBillingRoutes(rg *gin.RouterGroup, estimateHandler *handlers.EstimateHandler, invoiceHandler *handlers.InvoiceHandler) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.POST("", estimateHandler.CreateEstimate)
		estimates.GET("", estimateHandler.ListEstimates)
		estimates.GET("/:id", estimateHandler.GetEstimate)
		estimates.PATCH("/:id/finalize", estimateHandler.FinalizeEstimate)
		estimates.POST("/:id/approve", estimateHandler.ApproveEstimate)
		estimates.POST("/:id/reject", estimateHandler.RejectEstimate)
	}

	invoices := rg.Group(PathInvoices)
	{
		invoices.GET("", invoiceHandler.ListInvoices)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
		invoices.GET("/:id/payment", invoiceHandler.GetPaymentSession)
	}

	rg.POST("/sync-invoice-status", invoiceHandler.SyncInvoiceStatus)
	rg.GET("/projects", invoiceHandler.ListProjects)
	rg.GET("/activity", invoiceHandler.ListActivity)
}

func addAdminRoutes(rg *gin.RouterGroup, adminHandler *handlers.AdminHandler) {
	rg.POST("/manual-webhook-trigger", adminHandler.ManualWebhookTrigger)
	rg.POST("/test-webhook", adminHandler.TestWebhook)
}
