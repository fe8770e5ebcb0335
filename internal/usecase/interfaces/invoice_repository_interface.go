package interfaces

import (
	"context"
	"time"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
)

// IInvoiceRepository abstracts DynamoDB persistence for Invoice.
//
// Same contract as IQuoteRepository: nil for missing documents,
// version-checked Save, ErrVersionConflict on lost races.
type IInvoiceRepository interface {
	Create(ctx context.Context, inv *entities.Invoice) error
	GetByID(ctx context.Context, id string) (*entities.Invoice, error)
	Save(ctx context.Context, inv *entities.Invoice) error
	// ListDunnable returns unpaid, uncancelled invoices whose due date lies
	// before the cutoff; consumed by the dunning batch run.
	ListDunnable(ctx context.Context, cutoff time.Time) ([]*entities.Invoice, error)
}
