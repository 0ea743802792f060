package types

import (
	"time"

	"github.com/google/uuid"
)

// Document is immutable after creation. Ingestion commits the document and all
// of its chunks in one transaction, so a failed ingestion leaves no row here.
type Document struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Filename    string    `gorm:"column:filename;not null" json:"filename"`
	ContentType string    `gorm:"column:content_type" json:"content_type"`
	SizeBytes   int64     `gorm:"column:size_bytes" json:"size_bytes"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Document) TableName() string {
	return "document"
}
