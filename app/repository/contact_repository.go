package repository

import (
	"gorm.io/gorm"

	"github.com/EdmilsonDev/CodeMentor/app/models"
)

// contactRepository implements the ContactRepository interface
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository instance
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// Create stores a contact form submission
func (r *contactRepository) Create(msg *models.ContactMessage) error {
	return r.db.Create(msg).Error
}

// List retrieves submissions with pagination, newest first
func (r *contactRepository) List(offset, limit int) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&messages).Error
	return messages, err
}
