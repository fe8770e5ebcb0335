package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	request "github.com/firusaleh/hummert-umzug-app-sub002/internal/adapter/http/dto/request"
	response "github.com/firusaleh/hummert-umzug-app-sub002/internal/adapter/http/dto/response"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/money"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase/interfaces"
	"github.com/firusaleh/hummert-umzug-app-sub002/pkg"
)

var errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)

// QuoteHandler handles HTTP requests for quotes (Angebote).
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	items, err := request.ToLineItems(payload.Items)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	optional, err := request.ToLineItems(payload.OptionalItems)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	in := usecase.CreateQuoteInput{
		CustomerID:      payload.CustomerID,
		ProjectID:       payload.ProjectID,
		Items:           items,
		OptionalItems:   optional,
		DiscountPercent: payload.DiscountPercent,
		DiscountAmount:  payload.DiscountAmount,
		Notes:           payload.Notes,
		Actor:           payload.Actor,
	}
	if payload.ValidUntil != nil {
		in.ValidUntil = *payload.ValidUntil
	}

	quote, err := h.usecase.Create(c.Request.Context(), in)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) UpdateQuoteItems(c *gin.Context) {
	var payload request.UpdateQuoteItemsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	items, err := request.ToLineItems(payload.Items)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	optional, err := request.ToLineItems(payload.OptionalItems)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	quote, err := h.usecase.UpdateItems(c.Request.Context(), c.Param("id"),
		items, optional, payload.DiscountPercent, payload.DiscountAmount)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) SubmitForReview(c *gin.Context) {
	var payload request.NewVersionRequest
	_ = c.ShouldBindJSON(&payload)

	quote, err := h.usecase.SubmitForReview(c.Request.Context(), c.Param("id"), payload.Actor)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) SendQuote(c *gin.Context) {
	var payload request.SendRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.Send(c.Request.Context(), c.Param("id"), payload.Channel, payload.Recipient, payload.Actor)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) FollowUp(c *gin.Context) {
	var payload request.FollowUpRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.FollowUp(c.Request.Context(), c.Param("id"),
		payload.Kind, payload.Outcome, payload.NextStep, payload.Actor)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) StartNegotiation(c *gin.Context) {
	var payload request.NegotiationRequest
	_ = c.ShouldBindJSON(&payload)

	quote, err := h.usecase.StartNegotiation(c.Request.Context(), c.Param("id"), payload.Actor, payload.Note)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	var payload request.AcceptQuoteRequest
	_ = c.ShouldBindJSON(&payload)

	quote, err := h.usecase.Accept(c.Request.Context(), c.Param("id"), payload.ReferenceOrderID, payload.Actor)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	var payload request.RejectQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.Reject(c.Request.Context(), c.Param("id"), payload.Reason, payload.Actor)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) NewQuoteVersion(c *gin.Context) {
	var payload request.NewVersionRequest
	_ = c.ShouldBindJSON(&payload)

	quote, err := h.usecase.NewVersion(c.Request.Context(), c.Param("id"), payload.Actor)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

// SweepExpired expires every quote past its validity date. Meant to be hit
// by a scheduler; running it twice is harmless.
func (h *QuoteHandler) SweepExpired(c *gin.Context) {
	expired, err := h.usecase.SweepExpired(c.Request.Context())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.SweepResponse{Expired: expired})
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID),
		errors.Is(err, request.ErrInvalidQuantity),
		errors.Is(err, request.ErrInvalidTaxRate),
		errors.Is(err, money.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotDraft):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_EDITABLE", "Quote is no longer editable", http.StatusConflict)
	case errors.Is(err, entities.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Operation not allowed in the current status", http.StatusConflict)
	case errors.Is(err, interfaces.ErrVersionConflict):
		return pkg.NewDomainErrorSimple("VERSION_CONFLICT", "Quote was modified concurrently", http.StatusConflict)
	case errors.Is(err, usecase.ErrExhaustedSequence):
		return pkg.NewDomainError("SEQUENCE_EXHAUSTED", "Document number sequence exhausted", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
