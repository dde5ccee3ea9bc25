package implementation

import (
	"context"

	"rams-generator-be/internal/entity"
	"rams-generator-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type documentRecordRepository struct {
	db *gorm.DB
}

// NewDocumentRecordRepository creates a new document archive repository
func NewDocumentRecordRepository(db *gorm.DB) contract.IDocumentRecordRepository {
	return &documentRecordRepository{db: db}
}

func (r *documentRecordRepository) Create(ctx context.Context, record *entity.DocumentRecord) error {
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *documentRecordRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.DocumentRecord, error) {
	var record entity.DocumentRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *documentRecordRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.DocumentRecord, error) {
	var records []*entity.DocumentRecord
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *documentRecordRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DocumentRecord{}).Count(&count).Error
	return count, err
}
