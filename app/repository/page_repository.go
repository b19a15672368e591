package repository

import (
	"gorm.io/gorm"

	"github.com/EdmilsonDev/CodeMentor/app/models"
)

type pageRepository struct {
	db *gorm.DB
}

// NewPageRepository creates a new page repository instance
func NewPageRepository(db *gorm.DB) PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) Create(page *models.Page) error {
	return r.db.Create(page).Error
}

func (r *pageRepository) GetByID(id uint) (*models.Page, error) {
	var page models.Page
	if err := r.db.First(&page, id).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// GetBySlug returns an active page; inactive pages are invisible to visitors.
func (r *pageRepository) GetBySlug(slug string) (*models.Page, error) {
	var page models.Page
	if err := r.db.Where("slug = ? AND is_active = ?", slug, true).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *pageRepository) GetActive() ([]models.Page, error) {
	var pages []models.Page
	err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&pages).Error
	return pages, err
}

func (r *pageRepository) Update(page *models.Page) error {
	return r.db.Save(page).Error
}

// SlugExists reports whether a slug is already taken.
func (r *pageRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Page{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
