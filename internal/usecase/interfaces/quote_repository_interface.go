package interfaces

import (
	"context"
	"time"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
)

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// GetByID returns nil when no quote exists. Save performs an optimistic
// concurrency check on the quote's version and bumps it on success;
// a lost race surfaces as ErrVersionConflict.
type IQuoteRepository interface {
	Create(ctx context.Context, q *entities.Quote) error
	GetByID(ctx context.Context, id string) (*entities.Quote, error)
	Save(ctx context.Context, q *entities.Quote) error
	// ListExpirable returns quotes in a sendable state whose validity date
	// lies before the cutoff; consumed by the expiry sweep.
	ListExpirable(ctx context.Context, cutoff time.Time) ([]*entities.Quote, error)
}
