package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	request "github.com/firusaleh/hummert-umzug-app-sub002/internal/adapter/http/dto/request"
	response "github.com/firusaleh/hummert-umzug-app-sub002/internal/adapter/http/dto/response"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/money"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase/interfaces"
	"github.com/firusaleh/hummert-umzug-app-sub002/pkg"
)

var errInvalidInvoicePayload = pkg.NewDomainErrorSimple("INVALID_INVOICE_INPUT", "Invalid invoice payload", http.StatusBadRequest)

// InvoiceHandler handles HTTP requests for invoices (Rechnungen), including
// the dunning batch endpoint.
type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
	dunning usecase.IDunningUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase, dunning usecase.IDunningUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc, dunning: dunning}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var payload request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	items, err := request.ToLineItems(payload.Items)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	in := usecase.CreateInvoiceInput{
		CustomerID:      payload.CustomerID,
		ProjectID:       payload.ProjectID,
		QuoteID:         payload.QuoteID,
		Items:           items,
		DiscountPercent: payload.DiscountPercent,
		DiscountAmount:  payload.DiscountAmount,
		Notes:           payload.Notes,
		Actor:           payload.Actor,
	}
	if payload.DueDate != nil {
		in.DueDate = *payload.DueDate
	}

	invoice, err := h.usecase.Create(c.Request.Context(), in)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(invoice))
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

func (h *InvoiceHandler) UpdateInvoiceItems(c *gin.Context) {
	var payload request.UpdateInvoiceItemsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	items, err := request.ToLineItems(payload.Items)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	invoice, err := h.usecase.UpdateItems(c.Request.Context(), c.Param("id"),
		items, payload.DiscountPercent, payload.DiscountAmount)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

func (h *InvoiceHandler) SendInvoice(c *gin.Context) {
	var payload request.SendRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	invoice, err := h.usecase.Send(c.Request.Context(), c.Param("id"), payload.Channel, payload.Recipient, payload.Actor)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	var payload request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	var paidAt time.Time
	if payload.PaidAt != nil {
		paidAt = *payload.PaidAt
	}

	invoice, err := h.usecase.RecordPayment(c.Request.Context(), c.Param("id"),
		payload.Amount, paidAt, payload.Method, payload.Reference)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(invoice))
}

// RecordOnlinePayment captures the outstanding amount through the payment
// gateway; the raw provider payload is forwarded as-is.
func (h *InvoiceHandler) RecordOnlinePayment(c *gin.Context) {
	var payload request.OnlinePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	invoice, err := h.usecase.RecordOnlinePayment(c.Request.Context(), c.Param("id"), payload.Payload)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(invoice))
}

func (h *InvoiceHandler) RaiseReminder(c *gin.Context) {
	var payload request.RaiseReminderRequest
	_ = c.ShouldBindJSON(&payload)

	invoice, err := h.usecase.RaiseReminder(c.Request.Context(), c.Param("id"), payload.Fee)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

func (h *InvoiceHandler) CancelInvoice(c *gin.Context) {
	var payload request.CancelInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	invoice, err := h.usecase.Cancel(c.Request.Context(), c.Param("id"), payload.Reason, payload.Actor)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

func (h *InvoiceHandler) DuplicateInvoice(c *gin.Context) {
	invoice, err := h.usecase.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(invoice))
}

// RunDunning escalates every due invoice one reminder level. Meant to be hit
// by a scheduler; the run is idempotent within the cadence window.
func (h *InvoiceHandler) RunDunning(c *gin.Context) {
	var payload request.DunningRunRequest
	_ = c.ShouldBindJSON(&payload)

	var cutoff time.Time
	if payload.Cutoff != nil {
		cutoff = *payload.Cutoff
	}

	results, err := h.dunning.Run(c.Request.Context(), cutoff)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromDunningResults(results))
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceID),
		errors.Is(err, request.ErrInvalidQuantity),
		errors.Is(err, request.ErrInvalidTaxRate),
		errors.Is(err, entities.ErrEmptyDocument),
		errors.Is(err, money.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrMaxRemindersExceeded):
		return pkg.NewDomainErrorSimple("MAX_REMINDERS_EXCEEDED", "Maximum reminder level reached", http.StatusConflict)
	case errors.Is(err, entities.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Operation not allowed in the current status", http.StatusConflict)
	case errors.Is(err, interfaces.ErrVersionConflict):
		return pkg.NewDomainErrorSimple("VERSION_CONFLICT", "Invoice was modified concurrently", http.StatusConflict)
	case errors.Is(err, usecase.ErrGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("GATEWAY_NOT_CONFIGURED", "Payment gateway not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrOnlinePaymentNotApproved):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_APPROVED", "Payment was not approved by the provider", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrExhaustedSequence):
		return pkg.NewDomainError("SEQUENCE_EXHAUSTED", "Document number sequence exhausted", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
