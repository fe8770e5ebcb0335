package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase/interfaces"
	mock_interfaces "github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase/interfaces/mocks"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func quoteItems() []entities.LineItem {
	return []entities.LineItem{
		{Description: "Umzugsservice", Quantity: dec("8"), UnitPrice: dec("45"), TaxRate: dec("19")},
	}
}

func storedQuote(status entities.QuoteStatus) *entities.Quote {
	q := &entities.Quote{
		ID:         "q-1",
		Number:     "AG-2026-000001",
		CustomerID: "cust-1",
		Status:     status,
		ValidUntil: testNow.AddDate(0, 0, 30),
		Items:      quoteItems(),
		Version:    2,
	}
	return q
}

func newQuoteUseCaseForTest(t *testing.T) (*QuoteUseCase, *mock_interfaces.MockIQuoteRepository, *mock_interfaces.MockISequenceRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
	sequences := mock_interfaces.NewMockISequenceRepository(ctrl)

	uc := NewQuoteUseCase(repo, NewNumberingService(sequences), 30, zap.NewNop().Sugar())
	uc.now = func() time.Time { return testNow }
	return uc, repo, sequences
}

func TestQuoteUseCase_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc, repo, sequences := newQuoteUseCaseForTest(t)

		sequences.EXPECT().NextSequence(gomock.Any(), "AG-2026").Return(int64(7), nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q *entities.Quote) error {
				if q.ID == "" || q.Number != "AG-2026-000007" {
					t.Fatalf("unexpected identity: %+v", q)
				}
				if q.Status != entities.QuoteStatusDraft {
					t.Fatalf("status = %s", q.Status)
				}
				if !q.GrossTotal.Equal(dec("428.40")) {
					t.Fatalf("gross = %s", q.GrossTotal)
				}
				if !q.ValidUntil.Equal(testNow.AddDate(0, 0, 30)) {
					t.Fatalf("valid until = %s", q.ValidUntil)
				}
				return nil
			},
		)

		q, err := uc.Create(context.Background(), CreateQuoteInput{
			CustomerID: " cust-1 ",
			Items:      quoteItems(),
			Actor:      "anna",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if q.CustomerID != "cust-1" {
			t.Fatalf("customer id not trimmed: %q", q.CustomerID)
		}
		if len(q.StatusHistory) != 1 || q.StatusHistory[0].Actor != "anna" {
			t.Fatalf("unexpected history: %+v", q.StatusHistory)
		}
	})

	t.Run("pricing error before any write", func(t *testing.T) {
		uc, _, _ := newQuoteUseCaseForTest(t)

		_, err := uc.Create(context.Background(), CreateQuoteInput{
			CustomerID: "cust-1",
			Items: []entities.LineItem{
				{Description: "broken", Quantity: dec("-1"), UnitPrice: dec("10"), TaxRate: dec("19")},
			},
		})
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("numbering failure aborts creation", func(t *testing.T) {
		uc, _, sequences := newQuoteUseCaseForTest(t)

		sequences.EXPECT().NextSequence(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("throttled"))

		_, err := uc.Create(context.Background(), CreateQuoteInput{
			CustomerID: "cust-1",
			Items:      quoteItems(),
		})
		if err == nil || err.Error() != "throttled" {
			t.Fatalf("expected throttled error, got %v", err)
		}
	})
}

func TestQuoteUseCase_GetByID(t *testing.T) {
	t.Run("blank id", func(t *testing.T) {
		uc, _, _ := newQuoteUseCaseForTest(t)
		_, err := uc.GetByID(context.Background(), "   ")
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc, repo, _ := newQuoteUseCaseForTest(t)
		repo.EXPECT().GetByID(gomock.Any(), "q-404").Return(nil, nil)

		_, err := uc.GetByID(context.Background(), "q-404")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("repo error passes through", func(t *testing.T) {
		uc, repo, _ := newQuoteUseCaseForTest(t)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(nil, errors.New("db"))

		_, err := uc.GetByID(context.Background(), "q-1")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestQuoteUseCase_UpdateItems(t *testing.T) {
	t.Run("only drafts and reviews editable", func(t *testing.T) {
		uc, repo, _ := newQuoteUseCaseForTest(t)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusSent), nil)

		_, err := uc.UpdateItems(context.Background(), "q-1", quoteItems(), nil, decimal.Zero, decimal.Zero)
		if !errors.Is(err, ErrQuoteNotDraft) {
			t.Fatalf("expected ErrQuoteNotDraft, got %v", err)
		}
	})

	t.Run("replaces lines and reprices", func(t *testing.T) {
		uc, repo, _ := newQuoteUseCaseForTest(t)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusDraft), nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q *entities.Quote) error {
				if !q.GrossTotal.Equal(dec("119")) {
					t.Fatalf("gross = %s", q.GrossTotal)
				}
				return nil
			},
		)

		q, err := uc.UpdateItems(context.Background(), "q-1", []entities.LineItem{
			{Description: "Pauschale", Quantity: dec("1"), UnitPrice: dec("100"), TaxRate: dec("19")},
		}, nil, decimal.Zero, decimal.Zero)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if len(q.Items) != 1 || q.Items[0].Description != "Pauschale" {
			t.Fatalf("items not replaced: %+v", q.Items)
		}
	})
}

func TestQuoteUseCase_Send(t *testing.T) {
	uc, repo, _ := newQuoteUseCaseForTest(t)
	repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusDraft), nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	q, err := uc.Send(context.Background(), "q-1", "email", "kunde@example.com", "anna")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if q.Status != entities.QuoteStatusSent {
		t.Fatalf("status = %s", q.Status)
	}
	if len(q.SendLog) != 1 {
		t.Fatalf("send log = %+v", q.SendLog)
	}
}

func TestQuoteUseCase_Accept(t *testing.T) {
	t.Run("records converted order", func(t *testing.T) {
		uc, repo, _ := newQuoteUseCaseForTest(t)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusNegotiation), nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		q, err := uc.Accept(context.Background(), "q-1", "order-9", "anna")
		if err != nil {
			t.Fatalf("accept: %v", err)
		}
		if q.Status != entities.QuoteStatusAccepted || q.ConvertedOrderID != "order-9" {
			t.Fatalf("unexpected quote: %s %q", q.Status, q.ConvertedOrderID)
		}
	})

	t.Run("terminal quote rejected without save", func(t *testing.T) {
		uc, repo, _ := newQuoteUseCaseForTest(t)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusExpired), nil)

		_, err := uc.Accept(context.Background(), "q-1", "order-9", "anna")
		if !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestQuoteUseCase_NewVersion(t *testing.T) {
	uc, repo, sequences := newQuoteUseCaseForTest(t)

	src := storedQuote(entities.QuoteStatusRejected)
	repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(src, nil)
	sequences.EXPECT().NextSequence(gomock.Any(), "AG-2026").Return(int64(8), nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q *entities.Quote) error {
			if q.ID == "" || q.ID == src.ID {
				t.Fatalf("new version must get its own id, got %q", q.ID)
			}
			if q.Number != "AG-2026-000008" {
				t.Fatalf("number = %q", q.Number)
			}
			if q.PredecessorID != "q-1" {
				t.Fatalf("predecessor = %q", q.PredecessorID)
			}
			if q.Status != entities.QuoteStatusDraft {
				t.Fatalf("status = %s", q.Status)
			}
			return nil
		},
	)

	if _, err := uc.NewVersion(context.Background(), "q-1", "anna"); err != nil {
		t.Fatalf("new version: %v", err)
	}
}

func TestQuoteUseCase_SweepExpired(t *testing.T) {
	t.Run("expires due quotes and skips lost races", func(t *testing.T) {
		uc, repo, _ := newQuoteUseCaseForTest(t)

		due1 := storedQuote(entities.QuoteStatusSent)
		due1.ID = "q-1"
		due1.ValidUntil = testNow.AddDate(0, 0, -1)
		due2 := storedQuote(entities.QuoteStatusFollowUp)
		due2.ID = "q-2"
		due2.ValidUntil = testNow.AddDate(0, 0, -3)

		repo.EXPECT().ListExpirable(gomock.Any(), testNow).Return([]*entities.Quote{due1, due2}, nil)
		repo.EXPECT().Save(gomock.Any(), due1).Return(nil)
		repo.EXPECT().Save(gomock.Any(), due2).Return(interfaces.ErrVersionConflict)

		expired, err := uc.SweepExpired(context.Background())
		if err != nil {
			t.Fatalf("sweep: %v", err)
		}
		if expired != 1 {
			t.Fatalf("expired = %d", expired)
		}
		if due1.Status != entities.QuoteStatusExpired {
			t.Fatalf("due1 status = %s", due1.Status)
		}
	})

	t.Run("list error", func(t *testing.T) {
		uc, repo, _ := newQuoteUseCaseForTest(t)
		repo.EXPECT().ListExpirable(gomock.Any(), gomock.Any()).Return(nil, errors.New("db"))

		if _, err := uc.SweepExpired(context.Background()); err == nil {
			t.Fatal("expected error")
		}
	})
}
