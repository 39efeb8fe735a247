package repository

import (
	"github.com/yukikurage/collab-dashboard-api/internal/models"
	"gorm.io/gorm"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// ListByProject lists project messages oldest first
func (r *GormMessageRepository) ListByProject(projectID uint64) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.
		Preload("Member").
		Preload("Member.User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Create creates a message
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}
