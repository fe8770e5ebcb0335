package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/adapter/http/handlers"
)

const (
	PathQuotes       = "/quotes"
	PathInvoices     = "/invoices"
	PathProjectCosts = "/project-costs"
)

func addBillingRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler, invoiceHandler *handlers.InvoiceHandler, costRecordHandler *handlers.CostRecordHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PUT("/:id/items", quoteHandler.UpdateQuoteItems)
		quotes.PATCH("/:id/review", quoteHandler.SubmitForReview)
		quotes.PATCH("/:id/send", quoteHandler.SendQuote)
		quotes.PATCH("/:id/follow-up", quoteHandler.FollowUp)
		quotes.PATCH("/:id/negotiation", quoteHandler.StartNegotiation)
		quotes.PATCH("/:id/accept", quoteHandler.AcceptQuote)
		quotes.PATCH("/:id/reject", quoteHandler.RejectQuote)
		quotes.POST("/:id/versions", quoteHandler.NewQuoteVersion)
		quotes.POST("/sweep-expired", quoteHandler.SweepExpired)
	}

	invoices := rg.Group(PathInvoices)
	{
		invoices.POST("", invoiceHandler.CreateInvoice)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
		invoices.PUT("/:id/items", invoiceHandler.UpdateInvoiceItems)
		invoices.PATCH("/:id/send", invoiceHandler.SendInvoice)
		invoices.POST("/:id/payments", invoiceHandler.RecordPayment)
		invoices.POST("/:id/payments/online", invoiceHandler.RecordOnlinePayment)
		invoices.POST("/:id/reminders", invoiceHandler.RaiseReminder)
		invoices.PATCH("/:id/cancel", invoiceHandler.CancelInvoice)
		invoices.POST("/:id/duplicate", invoiceHandler.DuplicateInvoice)
		invoices.POST("/dunning-run", invoiceHandler.RunDunning)
	}

	projectCosts := rg.Group(PathProjectCosts)
	{
		projectCosts.POST("", costRecordHandler.CreateCostRecord)
		projectCosts.GET("/:id", costRecordHandler.GetCostRecord)
		projectCosts.PATCH("/:id/approve", costRecordHandler.ApproveCostRecord)
		projectCosts.PATCH("/:id/reject", costRecordHandler.RejectCostRecord)
		projectCosts.PATCH("/:id/mark-paid", costRecordHandler.MarkCostRecordPaid)
		projectCosts.PATCH("/:id/cancel", costRecordHandler.CancelCostRecord)
	}
}
