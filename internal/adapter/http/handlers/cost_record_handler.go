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

var errInvalidCostRecordPayload = pkg.NewDomainErrorSimple("INVALID_COST_RECORD_INPUT", "Invalid cost record payload", http.StatusBadRequest)

// CostRecordHandler handles HTTP requests for project costs (Projektkosten).
type CostRecordHandler struct {
	usecase usecase.ICostRecordUseCase
}

func NewCostRecordHandler(uc usecase.ICostRecordUseCase) *CostRecordHandler {
	return &CostRecordHandler{usecase: uc}
}

func (h *CostRecordHandler) CreateCostRecord(c *gin.Context) {
	var payload request.CreateCostRecordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCostRecordPayload.HTTPStatus, errInvalidCostRecordPayload.ToHTTPError())
		return
	}

	record, err := h.usecase.Create(c.Request.Context(), usecase.CreateCostRecordInput{
		ProjectID:   payload.ProjectID,
		Category:    payload.Category,
		Description: payload.Description,
		NetAmount:   payload.NetAmount,
		TaxRate:     payload.TaxRate,
		CreatedBy:   payload.CreatedBy,
	})
	if err != nil {
		appErr := mapCostRecordError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromCostRecord(record))
}

func (h *CostRecordHandler) GetCostRecord(c *gin.Context) {
	record, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapCostRecordError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCostRecord(record))
}

func (h *CostRecordHandler) ApproveCostRecord(c *gin.Context) {
	var payload request.ApproveCostRecordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCostRecordPayload.HTTPStatus, errInvalidCostRecordPayload.ToHTTPError())
		return
	}

	record, err := h.usecase.Approve(c.Request.Context(), c.Param("id"), payload.Actor, payload.Comment)
	if err != nil {
		appErr := mapCostRecordError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCostRecord(record))
}

func (h *CostRecordHandler) RejectCostRecord(c *gin.Context) {
	var payload request.RejectCostRecordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCostRecordPayload.HTTPStatus, errInvalidCostRecordPayload.ToHTTPError())
		return
	}

	record, err := h.usecase.Reject(c.Request.Context(), c.Param("id"), payload.Actor, payload.Reason)
	if err != nil {
		appErr := mapCostRecordError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCostRecord(record))
}

func (h *CostRecordHandler) MarkCostRecordPaid(c *gin.Context) {
	var payload request.MarkCostRecordPaidRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCostRecordPayload.HTTPStatus, errInvalidCostRecordPayload.ToHTTPError())
		return
	}

	record, err := h.usecase.MarkPaid(c.Request.Context(), c.Param("id"), payload.PaymentDetail, payload.Actor)
	if err != nil {
		appErr := mapCostRecordError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCostRecord(record))
}

func (h *CostRecordHandler) CancelCostRecord(c *gin.Context) {
	var payload request.CancelCostRecordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCostRecordPayload.HTTPStatus, errInvalidCostRecordPayload.ToHTTPError())
		return
	}

	record, err := h.usecase.Cancel(c.Request.Context(), c.Param("id"), payload.Actor, payload.Reason)
	if err != nil {
		appErr := mapCostRecordError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCostRecord(record))
}

func mapCostRecordError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCostRecordID), errors.Is(err, money.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCostRecordNotFound):
		return pkg.NewDomainErrorSimple("COST_RECORD_NOT_FOUND", "Cost record not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Operation not allowed in the current status", http.StatusConflict)
	case errors.Is(err, interfaces.ErrVersionConflict):
		return pkg.NewDomainErrorSimple("VERSION_CONFLICT", "Cost record was modified concurrently", http.StatusConflict)
	case errors.Is(err, usecase.ErrExhaustedSequence):
		return pkg.NewDomainError("SEQUENCE_EXHAUSTED", "Document number sequence exhausted", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
