package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/adapter/http/handlers/mocks"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase"
)

func sampleCostRecord() *entities.CostRecord {
	now := time.Now().UTC()
	c := &entities.CostRecord{
		ID:             "cost-1",
		Number:         "PK-2026-000001",
		ProjectID:      "proj-1",
		Category:       "fuel",
		NetAmount:      decimal.NewFromInt(100),
		TaxRate:        decimal.NewFromInt(19),
		ApprovalStatus: entities.CostApprovalOpen,
		PaymentStatus:  entities.CostPaymentUnpaid,
		CreatedBy:      "max",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := c.Recalculate(); err != nil {
		panic(err)
	}
	return c
}

func TestCostRecordHandler_CreateCostRecord(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICostRecordUseCase(ctrl)
		h := NewCostRecordHandler(uc)

		r := gin.New()
		r.POST("/v1/project-costs", h.CreateCostRecord)

		req := httptest.NewRequest(http.MethodPost, "/v1/project-costs", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICostRecordUseCase(ctrl)
		h := NewCostRecordHandler(uc)

		r := gin.New()
		r.POST("/v1/project-costs", h.CreateCostRecord)

		req := httptest.NewRequest(http.MethodPost, "/v1/project-costs", bytes.NewBufferString(`{"project_id":"proj-1","net_amount":"100","created_by":"max"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICostRecordUseCase(ctrl)
		h := NewCostRecordHandler(uc)

		r := gin.New()
		r.POST("/v1/project-costs", h.CreateCostRecord)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, in usecase.CreateCostRecordInput) (*entities.CostRecord, error) {
				if in.Category != "fuel" || !in.NetAmount.Equal(decimal.NewFromInt(100)) {
					t.Fatalf("unexpected input: %+v", in)
				}
				return sampleCostRecord(), nil
			},
		)

		req := httptest.NewRequest(http.MethodPost, "/v1/project-costs", bytes.NewBufferString(`{"project_id":"proj-1","category":"fuel","net_amount":"100","tax_rate":"19","created_by":"max"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["number"] != "PK-2026-000001" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
		if body["gross_amount"] != "119.00" {
			t.Fatalf("unexpected gross amount: %v", body["gross_amount"])
		}
	})
}

func TestCostRecordHandler_Approval(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("approve success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICostRecordUseCase(ctrl)
		h := NewCostRecordHandler(uc)

		r := gin.New()
		r.PATCH("/v1/project-costs/:id/approve", h.ApproveCostRecord)

		approved := sampleCostRecord()
		approved.ApprovalStatus = entities.CostApprovalApproved
		uc.EXPECT().Approve(gomock.Any(), "cost-1", "chef", "ok").Return(approved, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/project-costs/cost-1/approve", bytes.NewBufferString(`{"actor":"chef","comment":"ok"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("approve requires actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICostRecordUseCase(ctrl)
		h := NewCostRecordHandler(uc)

		r := gin.New()
		r.PATCH("/v1/project-costs/:id/approve", h.ApproveCostRecord)

		req := httptest.NewRequest(http.MethodPatch, "/v1/project-costs/cost-1/approve", bytes.NewBufferString(`{"comment":"ok"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("reject on decided record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICostRecordUseCase(ctrl)
		h := NewCostRecordHandler(uc)

		r := gin.New()
		r.PATCH("/v1/project-costs/:id/reject", h.RejectCostRecord)

		uc.EXPECT().Reject(gomock.Any(), "cost-1", "chef", "too expensive").Return(nil, entities.ErrInvalidTransition)

		req := httptest.NewRequest(http.MethodPatch, "/v1/project-costs/cost-1/reject", bytes.NewBufferString(`{"actor":"chef","reason":"too expensive"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("mark paid not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICostRecordUseCase(ctrl)
		h := NewCostRecordHandler(uc)

		r := gin.New()
		r.PATCH("/v1/project-costs/:id/mark-paid", h.MarkCostRecordPaid)

		uc.EXPECT().MarkPaid(gomock.Any(), "cost-404", "SEPA", "buchhaltung").Return(nil, usecase.ErrCostRecordNotFound)

		req := httptest.NewRequest(http.MethodPatch, "/v1/project-costs/cost-404/mark-paid", bytes.NewBufferString(`{"actor":"buchhaltung","payment_detail":"SEPA"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestMapCostRecordError(t *testing.T) {
	if got := mapCostRecordError(usecase.ErrInvalidCostRecordID); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapCostRecordError(usecase.ErrCostRecordNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapCostRecordError(entities.ErrInvalidTransition); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapCostRecordError(errors.New("x")); got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
}
