package routes

import (
	"log"
	"os"
	"strconv"

	_ "clientdesk/docs" // This will be auto-generated
	"clientdesk/internal/adapter/http/handlers"
	"clientdesk/internal/adapter/http/middleware"
	repository2 "clientdesk/internal/adapter/persistence/repository"
	"clientdesk/internal/infrastructure/database"
	"clientdesk/internal/infrastructure/email"
	"clientdesk/internal/infrastructure/payments"
	"clientdesk/internal/usecase"
	"clientdesk/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	estimateRepo := repository2.NewEstimateDynamoRepository(ddb)
	invoiceRepo := repository2.NewInvoiceDynamoRepository(ddb)
	projectRepo := repository2.NewProjectDynamoRepository(ddb)
	activityRepo := repository2.NewActivityDynamoRepository(ddb)

	var paymentGateway interfaces.IPaymentGateway
	stripeGateway, err := payments.NewStripeGateway(os.Getenv("STRIPE_SECRET_KEY"), os.Getenv("STRIPE_WEBHOOK_SECRET"))
	if err != nil {
		log.Printf("Stripe gateway not configured: %v", err)
	} else {
		paymentGateway = stripeGateway
	}

	notifier := email.NewResendNotifier(os.Getenv("RESEND_API_KEY"), os.Getenv("EMAIL_FROM"))

	currency := os.Getenv("BILLING_CURRENCY")

	estimateUseCase := usecase.NewEstimateUseCase(estimateRepo, invoiceRepo, paymentGateway, currency)
	invoiceSyncUseCase := usecase.NewInvoiceSyncUseCase(invoiceRepo, estimateRepo, projectRepo, activityRepo, paymentGateway, notifier, currency)

	estimateHandler := handlers.NewEstimateHandler(estimateUseCase)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceSyncUseCase)
	webhookHandler := handlers.NewWebhookHandler(invoiceSyncUseCase)
	adminHandler := handlers.NewAdminHandler(invoiceSyncUseCase)

	auth := middleware.NewAuthMiddleware(os.Getenv("JWT_SECRET"))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	// The processor calls the webhook unauthenticated; the payload is
	// trusted only after signature verification.
	v1.POST("/invoices/webhook", webhookHandler.HandleWebhook)

	authenticated := v1.Group("", auth.Authenticate())
	addBillingRoutes(authenticated, estimateHandler, invoiceHandler)

	admin := authenticated.Group("/admin", auth.RequireAdmin())
	addAdminRoutes(admin, adminHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
