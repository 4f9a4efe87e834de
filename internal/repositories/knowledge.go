package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bbditm/resume-assistant/internal/models"
)

type KnowledgeRepository interface {
	Create(doc *models.KnowledgeDocument) error
	FindByID(id uuid.UUID) (*models.KnowledgeDocument, error)
	FindByFilename(filename string) (*models.KnowledgeDocument, error)
	List() ([]models.KnowledgeDocument, error)
	Delete(id uuid.UUID) error
}

type knowledgeRepository struct {
	db *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) KnowledgeRepository {
	return &knowledgeRepository{db: db}
}

// Create implements KnowledgeRepository.
func (r *knowledgeRepository) Create(doc *models.KnowledgeDocument) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create knowledge document: %w", err)
	}
	return nil
}

// FindByID implements KnowledgeRepository.
func (r *knowledgeRepository) FindByID(id uuid.UUID) (*models.KnowledgeDocument, error) {
	var doc models.KnowledgeDocument
	if err := r.db.Where("id = ?", id).First(&doc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("knowledge document not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find knowledge document: %w", err)
	}
	return &doc, nil
}

// FindByFilename implements KnowledgeRepository. Used by ingestion to skip
// documents already registered.
func (r *knowledgeRepository) FindByFilename(filename string) (*models.KnowledgeDocument, error) {
	var doc models.KnowledgeDocument
	if err := r.db.Where("filename = ?", filename).First(&doc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find knowledge document: %w", err)
	}
	return &doc, nil
}

// List implements KnowledgeRepository.
func (r *knowledgeRepository) List() ([]models.KnowledgeDocument, error) {
	var docs []models.KnowledgeDocument
	if err := r.db.Order("created_at ASC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list knowledge documents: %w", err)
	}
	return docs, nil
}

// Delete implements KnowledgeRepository.
func (r *knowledgeRepository) Delete(id uuid.UUID) error {
	if err := r.db.Delete(&models.KnowledgeDocument{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete knowledge document: %w", err)
	}
	return nil
}
