package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase/interfaces"
)

var (
	ErrInvoiceNotFound          = errors.New("invoice not found")
	ErrInvalidInvoiceID         = errors.New("invalid invoice id")
	ErrGatewayNotConfigured     = errors.New("payment gateway not configured")
	ErrOnlinePaymentNotApproved = errors.New("online payment not approved by provider")
)

// PaymentMethodOnline marks ledger entries captured through the payment
// gateway rather than recorded manually.
const PaymentMethodOnline = "online"

// CreateInvoiceInput carries everything needed to open a new draft invoice.
type CreateInvoiceInput struct {
	CustomerID      string
	ProjectID       string
	QuoteID         string
	DueDate         time.Time
	Items           []entities.LineItem
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	Notes           string
	Actor           string
}

// IInvoiceUseCase exposes the invoice (Rechnung) lifecycle.
type IInvoiceUseCase interface {
	Create(ctx context.Context, in CreateInvoiceInput) (*entities.Invoice, error)
	GetByID(ctx context.Context, id string) (*entities.Invoice, error)
	UpdateItems(ctx context.Context, id string, items []entities.LineItem, discountPercent, discountAmount decimal.Decimal) (*entities.Invoice, error)
	Send(ctx context.Context, id, channel, recipient, actor string) (*entities.Invoice, error)
	RecordPayment(ctx context.Context, id string, amount decimal.Decimal, date time.Time, method, reference string) (*entities.Invoice, error)
	RecordOnlinePayment(ctx context.Context, id string, payload json.RawMessage) (*entities.Invoice, error)
	RaiseReminder(ctx context.Context, id string, fee decimal.Decimal) (*entities.Invoice, error)
	Cancel(ctx context.Context, id, reason, actor string) (*entities.Invoice, error)
	Duplicate(ctx context.Context, id string) (*entities.Invoice, error)
}

type InvoiceUseCase struct {
	repo        interfaces.IInvoiceRepository
	numbering   *NumberingService
	gateway     interfaces.IPaymentGateway
	dueDays     int
	cadenceDays int
	log         *zap.SugaredLogger

	now func() time.Time
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(repo interfaces.IInvoiceRepository, numbering *NumberingService, gateway interfaces.IPaymentGateway, dueDays, cadenceDays int, log *zap.SugaredLogger) *InvoiceUseCase {
	return &InvoiceUseCase{
		repo:        repo,
		numbering:   numbering,
		gateway:     gateway,
		dueDays:     dueDays,
		cadenceDays: cadenceDays,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (u *InvoiceUseCase) Create(ctx context.Context, in CreateInvoiceInput) (*entities.Invoice, error) {
	now := u.now()

	inv := &entities.Invoice{
		ID:              uuid.NewString(),
		CustomerID:      strings.TrimSpace(in.CustomerID),
		ProjectID:       strings.TrimSpace(in.ProjectID),
		QuoteID:         strings.TrimSpace(in.QuoteID),
		IssueDate:       now,
		DueDate:         in.DueDate,
		Status:          entities.InvoiceStatusDraft,
		Items:           in.Items,
		DiscountPercent: in.DiscountPercent,
		DiscountAmount:  in.DiscountAmount,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	inv.StatusHistory = append(inv.StatusHistory, entities.StatusChange{
		Status:    string(entities.InvoiceStatusDraft),
		Timestamp: now,
		Actor:     in.Actor,
	})

	if err := inv.Recalculate(now); err != nil {
		return nil, err
	}

	number, err := u.numbering.NextNumber(ctx, entities.DocumentTypeInvoice, now.Year())
	if err != nil {
		return nil, err
	}
	inv.Number = number

	if err := u.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	u.log.Infow("invoice created", "invoice_id", inv.ID, "number", inv.Number, "gross", inv.GrossTotal.StringFixed(2))
	return inv, nil
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (*entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidInvoiceID
	}
	inv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) mutate(ctx context.Context, id string, fn func(inv *entities.Invoice, now time.Time) error) (*entities.Invoice, error) {
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := u.now()
	if err := fn(inv, now); err != nil {
		return nil, err
	}
	if err := inv.Recalculate(now); err != nil {
		return nil, err
	}
	inv.UpdatedAt = now

	if err := u.repo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (u *InvoiceUseCase) UpdateItems(ctx context.Context, id string, items []entities.LineItem, discountPercent, discountAmount decimal.Decimal) (*entities.Invoice, error) {
	return u.mutate(ctx, id, func(inv *entities.Invoice, _ time.Time) error {
		if inv.Status != entities.InvoiceStatusDraft {
			return entities.ErrInvalidTransition
		}
		inv.Items = items
		inv.DiscountPercent = discountPercent
		inv.DiscountAmount = discountAmount
		return nil
	})
}

func (u *InvoiceUseCase) Send(ctx context.Context, id, channel, recipient, actor string) (*entities.Invoice, error) {
	return u.mutate(ctx, id, func(inv *entities.Invoice, now time.Time) error {
		return inv.Send(channel, recipient, actor, u.dueDays, now)
	})
}

func (u *InvoiceUseCase) RecordPayment(ctx context.Context, id string, amount decimal.Decimal, date time.Time, method, reference string) (*entities.Invoice, error) {
	return u.mutate(ctx, id, func(inv *entities.Invoice, now time.Time) error {
		if date.IsZero() {
			date = now
		}
		return inv.RecordPayment(entities.Payment{
			ID:        uuid.NewString(),
			Amount:    amount,
			Date:      date,
			Method:    method,
			Reference: reference,
		}, now)
	})
}

// RecordOnlinePayment captures the invoice's outstanding amount through the
// payment gateway and, once the provider approves, records it in the ledger
// with the provider payment ID as reference.
func (u *InvoiceUseCase) RecordOnlinePayment(ctx context.Context, id string, payload json.RawMessage) (*entities.Invoice, error) {
	if u.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}

	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status.Terminal() || inv.Status == entities.InvoiceStatusDraft {
		return nil, entities.ErrInvalidTransition
	}

	amount := inv.OutstandingAmount
	if !amount.IsPositive() {
		return nil, entities.ErrInvalidTransition
	}

	// The invoice in the database is the source of truth for the amount;
	// whatever the caller put in the payload is overridden.
	req := map[string]any{}
	if len(payload) > 0 && json.Valid(payload) {
		if err := json.Unmarshal(payload, &req); err != nil {
			req = map[string]any{}
		}
	}
	req["external_reference"] = inv.Number
	if _, ok := req["description"]; !ok {
		req["description"] = fmt.Sprintf("Invoice %s", inv.Number)
	}
	req["transaction_amount"], _ = amount.Float64()
	enriched, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	providerPaymentID, providerStatus, _, err := u.gateway.CreatePayment(ctx, enriched)
	if err != nil {
		u.log.Errorw("online payment capture failed", "invoice_id", inv.ID, "error", err)
		return nil, err
	}
	if providerStatus != "approved" {
		u.log.Warnw("online payment not approved", "invoice_id", inv.ID, "provider_status", providerStatus)
		return nil, ErrOnlinePaymentNotApproved
	}

	return u.RecordPayment(ctx, id, amount, u.now(), PaymentMethodOnline, providerPaymentID)
}

func (u *InvoiceUseCase) RaiseReminder(ctx context.Context, id string, fee decimal.Decimal) (*entities.Invoice, error) {
	return u.mutate(ctx, id, func(inv *entities.Invoice, now time.Time) error {
		return inv.RaiseReminder(fee, u.cadenceDays, now)
	})
}

func (u *InvoiceUseCase) Cancel(ctx context.Context, id, reason, actor string) (*entities.Invoice, error) {
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := u.now()
	if err := inv.Cancel(reason, actor, now); err != nil {
		return nil, err
	}
	inv.UpdatedAt = now

	// No recalculation here: balance derivation must never override a
	// cancellation, and the voided totals stay as issued.
	if err := u.repo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Duplicate opens a fresh draft with the same lines but its own number and
// an empty ledger.
func (u *InvoiceUseCase) Duplicate(ctx context.Context, id string) (*entities.Invoice, error) {
	src, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := u.now()
	dup := src.CopyAsDraft(now)
	dup.ID = uuid.NewString()

	if err := dup.Recalculate(now); err != nil {
		return nil, err
	}

	number, err := u.numbering.NextNumber(ctx, entities.DocumentTypeInvoice, now.Year())
	if err != nil {
		return nil, err
	}
	dup.Number = number

	if err := u.repo.Create(ctx, dup); err != nil {
		return nil, err
	}
	u.log.Infow("invoice duplicated", "invoice_id", dup.ID, "number", dup.Number, "source_id", src.ID)
	return dup, nil
}
