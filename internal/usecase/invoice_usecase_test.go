package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/money"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase/interfaces"
	mock_interfaces "github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase/interfaces/mocks"
)

func invoiceItems() []entities.LineItem {
	return []entities.LineItem{
		{Description: "Transport", Quantity: dec("1"), UnitPrice: dec("200"), TaxRate: dec("19")},
		{Description: "Kartons", Quantity: dec("20"), UnitPrice: dec("2.50"), TaxRate: dec("7")},
	}
}

func storedInvoice(status entities.InvoiceStatus) *entities.Invoice {
	inv := &entities.Invoice{
		ID:         "inv-1",
		Number:     "RG-2026-000001",
		CustomerID: "cust-1",
		Status:     status,
		IssueDate:  testNow.AddDate(0, 0, -10),
		DueDate:    testNow.AddDate(0, 0, 4),
		Items:      invoiceItems(),
		Version:    3,
	}
	if err := inv.Recalculate(testNow); err != nil {
		panic(err)
	}
	inv.Status = status
	return inv
}

type invoiceUseCaseMocks struct {
	repo      *mock_interfaces.MockIInvoiceRepository
	sequences *mock_interfaces.MockISequenceRepository
	gateway   *mock_interfaces.MockIPaymentGateway
}

func newInvoiceUseCaseForTest(t *testing.T, withGateway bool) (*InvoiceUseCase, invoiceUseCaseMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := invoiceUseCaseMocks{
		repo:      mock_interfaces.NewMockIInvoiceRepository(ctrl),
		sequences: mock_interfaces.NewMockISequenceRepository(ctrl),
	}
	var gateway interfaces.IPaymentGateway
	if withGateway {
		m.gateway = mock_interfaces.NewMockIPaymentGateway(ctrl)
		gateway = m.gateway
	}

	uc := NewInvoiceUseCase(m.repo, NewNumberingService(m.sequences), gateway, 14, 14, zap.NewNop().Sugar())
	uc.now = func() time.Time { return testNow }
	return uc, m
}

func TestInvoiceUseCase_Create(t *testing.T) {
	uc, m := newInvoiceUseCaseForTest(t, false)

	m.sequences.EXPECT().NextSequence(gomock.Any(), "RG-2026").Return(int64(42), nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, inv *entities.Invoice) error {
			if inv.Number != "RG-2026-000042" {
				t.Fatalf("number = %q", inv.Number)
			}
			if inv.Status != entities.InvoiceStatusDraft {
				t.Fatalf("status = %s", inv.Status)
			}
			if !inv.GrossTotal.Equal(dec("291.50")) {
				t.Fatalf("gross = %s", inv.GrossTotal)
			}
			return nil
		},
	)

	inv, err := uc.Create(context.Background(), CreateInvoiceInput{
		CustomerID: "cust-1",
		Items:      invoiceItems(),
		Actor:      "anna",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !inv.OutstandingAmount.Equal(dec("291.50")) {
		t.Fatalf("outstanding = %s", inv.OutstandingAmount)
	}
}

func TestInvoiceUseCase_Send(t *testing.T) {
	uc, m := newInvoiceUseCaseForTest(t, false)

	inv := storedInvoice(entities.InvoiceStatusDraft)
	inv.DueDate = time.Time{}
	m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)
	m.repo.EXPECT().Save(gomock.Any(), inv).Return(nil)

	got, err := uc.Send(context.Background(), "inv-1", "email", "kunde@example.com", "anna")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.Status != entities.InvoiceStatusSent {
		t.Fatalf("status = %s", got.Status)
	}
	if !got.DueDate.Equal(testNow.AddDate(0, 0, 14)) {
		t.Fatalf("due date = %s", got.DueDate)
	}
}

func TestInvoiceUseCase_RecordPayment(t *testing.T) {
	t.Run("partial payment", func(t *testing.T) {
		uc, m := newInvoiceUseCaseForTest(t, false)

		m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(storedInvoice(entities.InvoiceStatusSent), nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		inv, err := uc.RecordPayment(context.Background(), "inv-1", dec("150"), time.Time{}, "bank_transfer", "ref-1")
		if err != nil {
			t.Fatalf("record payment: %v", err)
		}
		if inv.Status != entities.InvoiceStatusPartiallyPaid {
			t.Fatalf("status = %s", inv.Status)
		}
		if !inv.OutstandingAmount.Equal(dec("141.50")) {
			t.Fatalf("outstanding = %s", inv.OutstandingAmount)
		}
		if len(inv.Payments) != 1 || inv.Payments[0].Date.IsZero() {
			t.Fatalf("ledger = %+v", inv.Payments)
		}
	})

	t.Run("invalid amount leaves ledger untouched", func(t *testing.T) {
		uc, m := newInvoiceUseCaseForTest(t, false)
		m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(storedInvoice(entities.InvoiceStatusSent), nil)

		_, err := uc.RecordPayment(context.Background(), "inv-1", dec("-5"), testNow, "cash", "")
		if !errors.Is(err, money.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestInvoiceUseCase_RecordOnlinePayment(t *testing.T) {
	t.Run("approved payment settles outstanding amount", func(t *testing.T) {
		uc, m := newInvoiceUseCaseForTest(t, true)

		inv := storedInvoice(entities.InvoiceStatusSent)
		m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil).Times(2)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, body json.RawMessage) (string, string, json.RawMessage, error) {
				var req map[string]any
				if err := json.Unmarshal(body, &req); err != nil {
					t.Fatalf("unmarshal request: %v", err)
				}
				if req["external_reference"] != "RG-2026-000001" {
					t.Fatalf("external_reference = %v", req["external_reference"])
				}
				if req["transaction_amount"] != 291.50 {
					t.Fatalf("transaction_amount = %v", req["transaction_amount"])
				}
				return "mp-777", "approved", nil, nil
			},
		)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		got, err := uc.RecordOnlinePayment(context.Background(), "inv-1", json.RawMessage(`{"transaction_amount": 1}`))
		if err != nil {
			t.Fatalf("online payment: %v", err)
		}
		if got.Status != entities.InvoiceStatusPaid {
			t.Fatalf("status = %s", got.Status)
		}
		if got.Payments[0].Method != PaymentMethodOnline || got.Payments[0].Reference != "mp-777" {
			t.Fatalf("payment = %+v", got.Payments[0])
		}
	})

	t.Run("rejected by provider", func(t *testing.T) {
		uc, m := newInvoiceUseCaseForTest(t, true)

		m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(storedInvoice(entities.InvoiceStatusSent), nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-778", "rejected", nil, nil)

		_, err := uc.RecordOnlinePayment(context.Background(), "inv-1", nil)
		if !errors.Is(err, ErrOnlinePaymentNotApproved) {
			t.Fatalf("expected ErrOnlinePaymentNotApproved, got %v", err)
		}
	})

	t.Run("no gateway configured", func(t *testing.T) {
		uc, _ := newInvoiceUseCaseForTest(t, false)

		_, err := uc.RecordOnlinePayment(context.Background(), "inv-1", nil)
		if !errors.Is(err, ErrGatewayNotConfigured) {
			t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("drafts cannot be captured", func(t *testing.T) {
		uc, m := newInvoiceUseCaseForTest(t, true)
		m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(storedInvoice(entities.InvoiceStatusDraft), nil)

		_, err := uc.RecordOnlinePayment(context.Background(), "inv-1", nil)
		if !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestInvoiceUseCase_RaiseReminder(t *testing.T) {
	uc, m := newInvoiceUseCaseForTest(t, false)

	inv := storedInvoice(entities.InvoiceStatusOverdue)
	m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)
	m.repo.EXPECT().Save(gomock.Any(), inv).Return(nil)

	got, err := uc.RaiseReminder(context.Background(), "inv-1", dec("5"))
	if err != nil {
		t.Fatalf("raise reminder: %v", err)
	}
	if got.Status != entities.InvoiceStatusDunned || got.ReminderLevel() != 1 {
		t.Fatalf("status = %s, level = %d", got.Status, got.ReminderLevel())
	}
	if !got.DueDate.Equal(testNow.AddDate(0, 0, 14)) {
		t.Fatalf("due date = %s", got.DueDate)
	}
}

func TestInvoiceUseCase_Cancel(t *testing.T) {
	uc, m := newInvoiceUseCaseForTest(t, false)

	inv := storedInvoice(entities.InvoiceStatusSent)
	m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)
	m.repo.EXPECT().Save(gomock.Any(), inv).Return(nil)

	got, err := uc.Cancel(context.Background(), "inv-1", "duplicate booking", "anna")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got.Status != entities.InvoiceStatusCancelled {
		t.Fatalf("status = %s", got.Status)
	}
}

func TestInvoiceUseCase_Duplicate(t *testing.T) {
	uc, m := newInvoiceUseCaseForTest(t, false)

	src := storedInvoice(entities.InvoiceStatusPaid)
	src.Payments = []entities.Payment{{ID: "p-1", Amount: dec("291.50"), Date: testNow, Method: "cash"}}

	m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(src, nil)
	m.sequences.EXPECT().NextSequence(gomock.Any(), "RG-2026").Return(int64(43), nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, inv *entities.Invoice) error {
			if inv.ID == "" || inv.ID == src.ID {
				t.Fatalf("duplicate must get its own id, got %q", inv.ID)
			}
			if inv.Number != "RG-2026-000043" {
				t.Fatalf("number = %q", inv.Number)
			}
			if inv.Status != entities.InvoiceStatusDraft || len(inv.Payments) != 0 {
				t.Fatalf("duplicate not a clean draft: %s %+v", inv.Status, inv.Payments)
			}
			return nil
		},
	)

	if _, err := uc.Duplicate(context.Background(), "inv-1"); err != nil {
		t.Fatalf("duplicate: %v", err)
	}
}
