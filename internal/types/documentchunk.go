package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DocumentChunk indices are contiguous ascending from 0 within a document.
type DocumentChunk struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"document_id"`
	Document   *Document      `gorm:"constraint:OnDelete:CASCADE;foreignKey:DocumentID;references:ID" json:"document,omitempty"`
	ChunkIndex int            `gorm:"column:chunk_index;not null" json:"chunk_index"`
	Text       string         `gorm:"column:text;not null" json:"text"`
	Embedding  Vector         `gorm:"column:embedding" json:"embedding"`
	Metadata   datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
}

func (DocumentChunk) TableName() string {
	return "document_chunk"
}
