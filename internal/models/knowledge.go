package models

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeDocument is one ingested institute document (program brochure,
// admissions FAQ, placement report) backing the FAQ branch. It records what
// was ingested into the vector store, not any conversation state.
type KnowledgeDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename   string    `gorm:"type:text" json:"filename"`
	Title      string    `gorm:"type:text" json:"title"`
	Category   string    `gorm:"type:text" json:"category"`
	FilePath   string    `gorm:"type:text" json:"file_path"`
	ChunkCount int       `gorm:"type:int" json:"chunk_count"`
	CreatedAt  time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (KnowledgeDocument) TableName() string {
	return "knowledge_documents"
}
