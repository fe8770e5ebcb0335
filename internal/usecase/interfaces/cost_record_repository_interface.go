package interfaces

import (
	"context"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
)

// ICostRecordRepository abstracts DynamoDB persistence for CostRecord.
type ICostRecordRepository interface {
	Create(ctx context.Context, c *entities.CostRecord) error
	GetByID(ctx context.Context, id string) (*entities.CostRecord, error)
	Save(ctx context.Context, c *entities.CostRecord) error
}
