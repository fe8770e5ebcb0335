package routes

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/firusaleh/hummert-umzug-app-sub002/docs" // This will be auto-generated
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/adapter/http/handlers"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/adapter/persistence/repository"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/infrastructure/config"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/infrastructure/database"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/infrastructure/logger"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/infrastructure/payments"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase/interfaces"
)

var router = gin.Default()

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	setMiddlewares(zlog)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := getRoutes(cfg, zlog); err != nil {
		zlog.Fatalw("failed to wire routes", "error", err)
	}

	if err := router.Run(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
		zlog.Fatalw("failed to start the application", "error", err)
	}
}

func getRoutes(cfg *config.Config, zlog *zap.SugaredLogger) error {
	ddb, err := database.ConnectDynamoDB(context.Background())
	if err != nil {
		return fmt.Errorf("connect dynamodb: %w", err)
	}

	quoteRepo := repository.NewQuoteDynamoRepository(ddb, cfg.Tables.Quotes)
	invoiceRepo := repository.NewInvoiceDynamoRepository(ddb, cfg.Tables.Invoices)
	costRecordRepo := repository.NewCostRecordDynamoRepository(ddb, cfg.Tables.CostRecords)
	sequenceRepo := repository.NewSequenceDynamoRepository(ddb, cfg.Tables.Sequences)

	numbering := usecase.NewNumberingService(sequenceRepo)

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"), zlog)
	if err != nil {
		zlog.Warnw("payment gateway not configured", "error", err)
	} else {
		gateway = mpGateway
	}

	fees := make([]decimal.Decimal, len(cfg.Billing.ReminderFees))
	for i, fee := range cfg.Billing.ReminderFees {
		fees[i] = decimal.NewFromFloat(fee)
	}
	threshold := decimal.NewFromFloat(cfg.Billing.ApprovalThreshold)

	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, numbering, cfg.Billing.QuoteValidityDays, zlog)
	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo, numbering, gateway,
		cfg.Billing.InvoiceDueDays, cfg.Billing.DunningCadenceDays, zlog)
	dunningUseCase := usecase.NewDunningUseCase(invoiceRepo, cfg.Billing.DunningCadenceDays, fees, zlog)
	costRecordUseCase := usecase.NewCostRecordUseCase(costRecordRepo, numbering, threshold, zlog)

	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceUseCase, dunningUseCase)
	costRecordHandler := handlers.NewCostRecordHandler(costRecordUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBillingRoutes(v1, quoteHandler, invoiceHandler, costRecordHandler)
	return nil
}

func setMiddlewares(zlog *zap.SugaredLogger) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		zlog.Errorw("recovered from panic", "panic", recovered)
		c.AbortWithStatus(500)
	}))
}
