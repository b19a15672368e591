package models

import "time"

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage stores one turn of a user's assistant conversation. History is
// a paid-plan feature; the chat endpoint persists both sides of every
// completed exchange under the same correlation id.
type ChatMessage struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Role          string    `gorm:"type:varchar(16);not null" json:"role"`
	Content       string    `gorm:"type:longtext;not null" json:"content"`
	CorrelationID string    `gorm:"type:char(36);index" json:"correlation_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
