package main

import (
	_ "clientdesk/docs"
	"clientdesk/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           ClientDesk Billing API
// @version         1.0
// @description     Client-services billing core (estimates, invoices, payments, projects) backed by DynamoDB and Stripe.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	routes.Run()
}
