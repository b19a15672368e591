package referral

import (
	"gorm.io/gorm"

	"github.com/EdmilsonDev/CodeMentor/app/models"
)

// Repository provides the invite code store operations used by the tracker.
type Repository interface {
	CreateCode(code *models.InviteCode) error
	GetByCode(code string) (*models.InviteCode, error)
	SaveCode(code *models.InviteCode) error
	ListByIssuer(userID uint) ([]models.InviteCode, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates an invite repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateCode(code *models.InviteCode) error {
	return r.db.Create(code).Error
}

func (r *gormRepository) GetByCode(code string) (*models.InviteCode, error) {
	var ic models.InviteCode
	if err := r.db.Where("code = ?", code).First(&ic).Error; err != nil {
		return nil, err
	}
	return &ic, nil
}

func (r *gormRepository) SaveCode(code *models.InviteCode) error {
	return r.db.Save(code).Error
}

func (r *gormRepository) ListByIssuer(userID uint) ([]models.InviteCode, error) {
	var codes []models.InviteCode
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&codes).Error
	return codes, err
}
