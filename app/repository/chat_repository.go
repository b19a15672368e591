package repository

import (
	"gorm.io/gorm"

	"github.com/EdmilsonDev/CodeMentor/app/models"
)

// chatRepository implements the ChatRepository interface
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository instance
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// SaveMessage persists one chat turn
func (r *chatRepository) SaveMessage(msg *models.ChatMessage) error {
	return r.db.Create(msg).Error
}

// GetRecentByUser retrieves the most recent messages for a user in
// chronological order
func (r *chatRepository) GetRecentByUser(userID uint, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	// Reverse so the oldest message comes first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// CountByUser returns the number of messages stored for a user
func (r *chatRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ChatMessage{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// DeleteByUser removes all chat history for a user
func (r *chatRepository) DeleteByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.ChatMessage{}).Error
}
