package main

import (
	_ "github.com/firusaleh/hummert-umzug-app-sub002/docs"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Hummert Umzug Billing API
// @version         1.0
// @description     Back-office billing for a moving company: quotes, invoices with dunning, and project cost approvals, backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
