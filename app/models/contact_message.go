package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ContactMessage stores submissions from the public contact form.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Email     string    `gorm:"type:varchar(200);not null" json:"email" validate:"required,email,max=200"`
	Subject   string    `gorm:"type:varchar(255)" json:"subject" validate:"max=255"`
	Message   string    `gorm:"type:text;not null" json:"message" validate:"required,min=10,max=5000"`
	IPv4      string    `gorm:"type:varchar(15);default:null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (cm *ContactMessage) Validate() error {
	v := validator.New()
	return v.Struct(cm)
}
