package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase/interfaces"
)

var (
	ErrQuoteNotFound  = errors.New("quote not found")
	ErrInvalidQuoteID = errors.New("invalid quote id")
	ErrQuoteNotDraft  = errors.New("quote is no longer editable")
)

// CreateQuoteInput carries everything needed to open a new draft quote.
type CreateQuoteInput struct {
	CustomerID      string
	ProjectID       string
	ValidUntil      time.Time
	Items           []entities.LineItem
	OptionalItems   []entities.LineItem
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	Notes           string
	Actor           string
}

// IQuoteUseCase exposes the quote (Angebot) lifecycle.
//
// Every mutating operation runs the load → mutate → recalculate → save cycle;
// totals are recomputed before each persistence, inside the optimistic
// concurrency boundary of Save.
type IQuoteUseCase interface {
	Create(ctx context.Context, in CreateQuoteInput) (*entities.Quote, error)
	GetByID(ctx context.Context, id string) (*entities.Quote, error)
	UpdateItems(ctx context.Context, id string, items, optional []entities.LineItem, discountPercent, discountAmount decimal.Decimal) (*entities.Quote, error)
	SubmitForReview(ctx context.Context, id, actor string) (*entities.Quote, error)
	Send(ctx context.Context, id, channel, recipient, actor string) (*entities.Quote, error)
	FollowUp(ctx context.Context, id, kind, outcome, nextStep, actor string) (*entities.Quote, error)
	StartNegotiation(ctx context.Context, id, actor, note string) (*entities.Quote, error)
	Accept(ctx context.Context, id, referenceOrderID, actor string) (*entities.Quote, error)
	Reject(ctx context.Context, id, reason, actor string) (*entities.Quote, error)
	NewVersion(ctx context.Context, id, actor string) (*entities.Quote, error)
	SweepExpired(ctx context.Context) (int, error)
}

type QuoteUseCase struct {
	repo         interfaces.IQuoteRepository
	numbering    *NumberingService
	validityDays int
	log          *zap.SugaredLogger

	now func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, numbering *NumberingService, validityDays int, log *zap.SugaredLogger) *QuoteUseCase {
	return &QuoteUseCase{
		repo:         repo,
		numbering:    numbering,
		validityDays: validityDays,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (u *QuoteUseCase) Create(ctx context.Context, in CreateQuoteInput) (*entities.Quote, error) {
	now := u.now()

	validUntil := in.ValidUntil
	if validUntil.IsZero() {
		validUntil = now.AddDate(0, 0, u.validityDays)
	}

	q := &entities.Quote{
		ID:              uuid.NewString(),
		CustomerID:      strings.TrimSpace(in.CustomerID),
		ProjectID:       strings.TrimSpace(in.ProjectID),
		IssueDate:       now,
		ValidUntil:      validUntil,
		Status:          entities.QuoteStatusDraft,
		Items:           in.Items,
		OptionalItems:   in.OptionalItems,
		DiscountPercent: in.DiscountPercent,
		DiscountAmount:  in.DiscountAmount,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	q.StatusHistory = append(q.StatusHistory, entities.StatusChange{
		Status:    string(entities.QuoteStatusDraft),
		Timestamp: now,
		Actor:     in.Actor,
	})

	if err := q.Recalculate(); err != nil {
		return nil, err
	}

	number, err := u.numbering.NextNumber(ctx, entities.DocumentTypeQuote, now.Year())
	if err != nil {
		return nil, err
	}
	q.Number = number

	if err := u.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	u.log.Infow("quote created", "quote_id", q.ID, "number", q.Number, "gross", q.GrossTotal.StringFixed(2))
	return q, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (*entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidQuoteID
	}
	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuoteNotFound
	}
	return q, nil
}

// mutate runs the shared load → mutate → recalculate → save cycle.
func (u *QuoteUseCase) mutate(ctx context.Context, id string, fn func(q *entities.Quote, now time.Time) error) (*entities.Quote, error) {
	q, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := u.now()
	if err := fn(q, now); err != nil {
		return nil, err
	}
	if err := q.Recalculate(); err != nil {
		return nil, err
	}
	q.UpdatedAt = now

	if err := u.repo.Save(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (u *QuoteUseCase) UpdateItems(ctx context.Context, id string, items, optional []entities.LineItem, discountPercent, discountAmount decimal.Decimal) (*entities.Quote, error) {
	return u.mutate(ctx, id, func(q *entities.Quote, _ time.Time) error {
		if !q.Mutable() {
			return ErrQuoteNotDraft
		}
		q.Items = items
		q.OptionalItems = optional
		q.DiscountPercent = discountPercent
		q.DiscountAmount = discountAmount
		return nil
	})
}

func (u *QuoteUseCase) SubmitForReview(ctx context.Context, id, actor string) (*entities.Quote, error) {
	return u.mutate(ctx, id, func(q *entities.Quote, now time.Time) error {
		return q.SubmitForReview(actor, now)
	})
}

func (u *QuoteUseCase) Send(ctx context.Context, id, channel, recipient, actor string) (*entities.Quote, error) {
	return u.mutate(ctx, id, func(q *entities.Quote, now time.Time) error {
		return q.Send(channel, recipient, actor, now)
	})
}

func (u *QuoteUseCase) FollowUp(ctx context.Context, id, kind, outcome, nextStep, actor string) (*entities.Quote, error) {
	return u.mutate(ctx, id, func(q *entities.Quote, now time.Time) error {
		return q.FollowUp(kind, outcome, nextStep, actor, now)
	})
}

func (u *QuoteUseCase) StartNegotiation(ctx context.Context, id, actor, note string) (*entities.Quote, error) {
	return u.mutate(ctx, id, func(q *entities.Quote, now time.Time) error {
		return q.StartNegotiation(actor, note, now)
	})
}

func (u *QuoteUseCase) Accept(ctx context.Context, id, referenceOrderID, actor string) (*entities.Quote, error) {
	return u.mutate(ctx, id, func(q *entities.Quote, now time.Time) error {
		return q.Accept(referenceOrderID, actor, now)
	})
}

func (u *QuoteUseCase) Reject(ctx context.Context, id, reason, actor string) (*entities.Quote, error) {
	return u.mutate(ctx, id, func(q *entities.Quote, now time.Time) error {
		return q.Reject(reason, actor, now)
	})
}

// NewVersion copies the quote into a fresh draft with its own number and a
// predecessor link. The source quote is read but never written.
func (u *QuoteUseCase) NewVersion(ctx context.Context, id, actor string) (*entities.Quote, error) {
	src, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := u.now()
	next := src.CopyForNewVersion(now)
	next.ID = uuid.NewString()
	next.ValidUntil = now.AddDate(0, 0, u.validityDays)
	next.StatusHistory = append(next.StatusHistory, entities.StatusChange{
		Status:    string(entities.QuoteStatusDraft),
		Timestamp: now,
		Actor:     actor,
		Reason:    "new version of " + src.Number,
	})

	if err := next.Recalculate(); err != nil {
		return nil, err
	}

	number, err := u.numbering.NextNumber(ctx, entities.DocumentTypeQuote, now.Year())
	if err != nil {
		return nil, err
	}
	next.Number = number

	if err := u.repo.Create(ctx, next); err != nil {
		return nil, err
	}
	u.log.Infow("quote version created", "quote_id", next.ID, "number", next.Number, "predecessor_id", src.ID)
	return next, nil
}

// SweepExpired expires every sendable quote whose validity date has passed.
// Safe to re-run on any cadence: already expired quotes are not selected
// again, and lost save races are skipped, not retried.
func (u *QuoteUseCase) SweepExpired(ctx context.Context) (int, error) {
	now := u.now()
	quotes, err := u.repo.ListExpirable(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, q := range quotes {
		changed, err := q.ExpireIfOverdue(now)
		if err != nil || !changed {
			continue
		}
		q.UpdatedAt = now
		if err := u.repo.Save(ctx, q); err != nil {
			if errors.Is(err, interfaces.ErrVersionConflict) {
				u.log.Warnw("quote expiry lost save race", "quote_id", q.ID)
				continue
			}
			return expired, err
		}
		expired++
	}
	u.log.Infow("quote expiry sweep done", "checked", len(quotes), "expired", expired)
	return expired, nil
}
