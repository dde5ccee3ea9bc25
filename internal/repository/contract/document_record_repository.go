package contract

import (
	"context"

	"rams-generator-be/internal/entity"

	"github.com/google/uuid"
)

// IDocumentRecordRepository defines archive operations for generated
// document metadata
type IDocumentRecordRepository interface {
	Create(ctx context.Context, record *entity.DocumentRecord) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.DocumentRecord, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.DocumentRecord, error)
	Count(ctx context.Context) (int64, error)
}
