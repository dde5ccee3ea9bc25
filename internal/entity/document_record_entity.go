package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentRecord is the archive row kept for every generated document. The
// binary itself is returned to the caller and not persisted.
type DocumentRecord struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Source          string    `gorm:"type:varchar(32);not null" json:"source"` // "single_shot" | "interview" | "manual"
	TaskDescription string    `gorm:"type:text" json:"task_description"`
	SizeBytes       int       `gorm:"not null" json:"size_bytes"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}

func (DocumentRecord) TableName() string {
	return "document_records"
}
