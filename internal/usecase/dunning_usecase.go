package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase/interfaces"
)

// DunningResult reports what happened to one invoice during a batch run.
type DunningResult struct {
	InvoiceID string `json:"invoice_id"`
	Number    string `json:"number"`
	Level     int    `json:"level,omitempty"`
	Skipped   string `json:"skipped,omitempty"`
	Error     string `json:"error,omitempty"`
}

// IDunningUseCase runs the reminder escalation batch.
type IDunningUseCase interface {
	Run(ctx context.Context, cutoff time.Time) ([]DunningResult, error)
}

// DunningUseCase escalates unpaid invoices past their due date through
// reminder levels 1-3. The run is idempotent within the cadence window: an
// invoice whose latest reminder is younger than the cadence is skipped, so an
// external scheduler may fire the batch on any cadence without
// double-escalating.
type DunningUseCase struct {
	invoices    interfaces.IInvoiceRepository
	cadenceDays int
	fees        []decimal.Decimal
	log         *zap.SugaredLogger

	now func() time.Time
}

var _ IDunningUseCase = (*DunningUseCase)(nil)

func NewDunningUseCase(invoices interfaces.IInvoiceRepository, cadenceDays int, fees []decimal.Decimal, log *zap.SugaredLogger) *DunningUseCase {
	return &DunningUseCase{
		invoices:    invoices,
		cadenceDays: cadenceDays,
		fees:        fees,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (u *DunningUseCase) feeForLevel(level int) decimal.Decimal {
	if level-1 < len(u.fees) {
		return u.fees[level-1]
	}
	return decimal.Zero
}

func (u *DunningUseCase) Run(ctx context.Context, cutoff time.Time) ([]DunningResult, error) {
	if cutoff.IsZero() {
		cutoff = u.now()
	}

	invoices, err := u.invoices.ListDunnable(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	now := u.now()
	window := time.Duration(u.cadenceDays) * 24 * time.Hour
	results := make([]DunningResult, 0, len(invoices))

	for _, inv := range invoices {
		res := DunningResult{InvoiceID: inv.ID, Number: inv.Number}

		if inv.ReminderLevel() >= entities.MaxReminderLevel {
			res.Skipped = "max reminder level reached"
			results = append(results, res)
			continue
		}
		if last, ok := inv.LastReminderAt(); ok && now.Sub(last) < window {
			res.Skipped = "reminder raised within cadence window"
			results = append(results, res)
			continue
		}

		level := inv.ReminderLevel() + 1
		if err := inv.RaiseReminder(u.feeForLevel(level), u.cadenceDays, now); err != nil {
			res.Error = err.Error()
			results = append(results, res)
			continue
		}
		inv.UpdatedAt = now

		if err := u.invoices.Save(ctx, inv); err != nil {
			if errors.Is(err, interfaces.ErrVersionConflict) {
				// A concurrent writer changed the invoice; the next run
				// picks it up again with fresh state.
				res.Error = "lost save race"
				results = append(results, res)
				continue
			}
			return results, err
		}

		res.Level = level
		results = append(results, res)
		u.log.Infow("reminder raised", "invoice_id", inv.ID, "number", inv.Number, "level", level)
	}

	return results, nil
}
