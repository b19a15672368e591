package repository

import (
	"gorm.io/gorm"

	"github.com/EdmilsonDev/CodeMentor/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	GetByProvider(provider, providerUserID string) (*models.User, error)
	LinkProvider(account *models.ProviderAccount) error
}

// PageRepository defines the interface for page-related operations
type PageRepository interface {
	Create(page *models.Page) error
	GetByID(id uint) (*models.Page, error)
	GetBySlug(slug string) (*models.Page, error)
	GetActive() ([]models.Page, error)
	Update(page *models.Page) error
	SlugExists(slug string) (bool, error)
}

// ChatRepository defines the interface for chat history persistence
type ChatRepository interface {
	SaveMessage(msg *models.ChatMessage) error
	GetRecentByUser(userID uint, limit int) ([]models.ChatMessage, error)
	CountByUser(userID uint) (int64, error)
	DeleteByUser(userID uint) error
}

// ContactRepository defines the interface for contact form submissions
type ContactRepository interface {
	Create(msg *models.ContactMessage) error
	List(offset, limit int) ([]models.ContactMessage, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User    UserRepository
	Page    PageRepository
	Chat    ChatRepository
	Contact ContactRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Page:    NewPageRepository(db),
		Chat:    NewChatRepository(db),
		Contact: NewContactRepository(db),
	}
}
