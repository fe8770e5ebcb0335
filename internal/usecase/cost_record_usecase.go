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
	ErrCostRecordNotFound  = errors.New("cost record not found")
	ErrInvalidCostRecordID = errors.New("invalid cost record id")
)

// CreateCostRecordInput carries a new expense entry.
type CreateCostRecordInput struct {
	ProjectID   string
	Category    string
	Description string
	NetAmount   decimal.Decimal
	TaxRate     decimal.Decimal
	CreatedBy   string
}

// ICostRecordUseCase exposes the cost approval workflow (Projektkosten).
type ICostRecordUseCase interface {
	Create(ctx context.Context, in CreateCostRecordInput) (*entities.CostRecord, error)
	GetByID(ctx context.Context, id string) (*entities.CostRecord, error)
	Approve(ctx context.Context, id, actor, comment string) (*entities.CostRecord, error)
	Reject(ctx context.Context, id, actor, reason string) (*entities.CostRecord, error)
	MarkPaid(ctx context.Context, id, paymentDetail, actor string) (*entities.CostRecord, error)
	Cancel(ctx context.Context, id, actor, reason string) (*entities.CostRecord, error)
}

type CostRecordUseCase struct {
	repo      interfaces.ICostRecordRepository
	numbering *NumberingService
	threshold decimal.Decimal
	log       *zap.SugaredLogger

	now func() time.Time
}

var _ ICostRecordUseCase = (*CostRecordUseCase)(nil)

func NewCostRecordUseCase(repo interfaces.ICostRecordRepository, numbering *NumberingService, threshold decimal.Decimal, log *zap.SugaredLogger) *CostRecordUseCase {
	return &CostRecordUseCase{
		repo:      repo,
		numbering: numbering,
		threshold: threshold,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create opens a new cost record. Records at or under the approval threshold
// are pre-approved; everything above starts open and waits for an approver.
func (u *CostRecordUseCase) Create(ctx context.Context, in CreateCostRecordInput) (*entities.CostRecord, error) {
	now := u.now()

	c := &entities.CostRecord{
		ID:             uuid.NewString(),
		ProjectID:      strings.TrimSpace(in.ProjectID),
		Category:       strings.TrimSpace(in.Category),
		Description:    in.Description,
		NetAmount:      in.NetAmount,
		TaxRate:        in.TaxRate,
		ApprovalStatus: entities.CostApprovalOpen,
		PaymentStatus:  entities.CostPaymentUnpaid,
		CreatedBy:      in.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := c.Recalculate(); err != nil {
		return nil, err
	}

	if !c.RequiresApproval(u.threshold) {
		c.ApprovalStatus = entities.CostApprovalApproved
		c.History = append(c.History, entities.AuditEntry{
			Action:    "auto_approved",
			Actor:     entities.ActorSystem,
			Comment:   "gross amount within approval threshold",
			Timestamp: now,
		})
	}
	c.History = append(c.History, entities.AuditEntry{
		Action:    "created",
		Actor:     in.CreatedBy,
		Timestamp: now,
	})

	number, err := u.numbering.NextNumber(ctx, entities.DocumentTypeCostRecord, now.Year())
	if err != nil {
		return nil, err
	}
	c.Number = number

	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	u.log.Infow("cost record created", "cost_record_id", c.ID, "number", c.Number,
		"gross", c.GrossAmount.StringFixed(2), "approval_status", c.ApprovalStatus)
	return c, nil
}

func (u *CostRecordUseCase) GetByID(ctx context.Context, id string) (*entities.CostRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidCostRecordID
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCostRecordNotFound
	}
	return c, nil
}

func (u *CostRecordUseCase) mutate(ctx context.Context, id string, fn func(c *entities.CostRecord, now time.Time) error) (*entities.CostRecord, error) {
	c, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := u.now()
	if err := fn(c, now); err != nil {
		return nil, err
	}
	if err := c.Recalculate(); err != nil {
		return nil, err
	}
	c.UpdatedAt = now

	if err := u.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *CostRecordUseCase) Approve(ctx context.Context, id, actor, comment string) (*entities.CostRecord, error) {
	return u.mutate(ctx, id, func(c *entities.CostRecord, now time.Time) error {
		return c.Approve(actor, comment, now)
	})
}

func (u *CostRecordUseCase) Reject(ctx context.Context, id, actor, reason string) (*entities.CostRecord, error) {
	return u.mutate(ctx, id, func(c *entities.CostRecord, now time.Time) error {
		return c.Reject(actor, reason, now)
	})
}

func (u *CostRecordUseCase) MarkPaid(ctx context.Context, id, paymentDetail, actor string) (*entities.CostRecord, error) {
	return u.mutate(ctx, id, func(c *entities.CostRecord, now time.Time) error {
		return c.MarkPaid(paymentDetail, actor, now)
	})
}

func (u *CostRecordUseCase) Cancel(ctx context.Context, id, actor, reason string) (*entities.CostRecord, error) {
	return u.mutate(ctx, id, func(c *entities.CostRecord, now time.Time) error {
		return c.Cancel(actor, reason, now)
	})
}
