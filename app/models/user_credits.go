package models

import (
	"time"

	"gorm.io/gorm"
)

// UserCredits is the per-user credit ledger: current balance, active plan
// and its expiry, plus a monotonically growing usage counter. One row per
// user, created lazily on first authenticated access.
type UserCredits struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Credits    int       `gorm:"not null;default:0" json:"credits"`
	Plan       string    `gorm:"type:varchar(50);not null;default:'free';index" json:"plan"`
	PlanExpiry time.Time `gorm:"not null" json:"plan_expiry"`
	TotalUsed  int       `gorm:"not null;default:0" json:"total_used"`
	LastReset  time.Time `gorm:"not null" json:"last_reset"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsExpired reports whether the plan window has passed at the given instant.
func (uc *UserCredits) IsExpired(now time.Time) bool {
	return uc.PlanExpiry.Before(now)
}

// GetUserCredits loads the ledger row for a user, or gorm.ErrRecordNotFound.
func GetUserCredits(db *gorm.DB, userID uint) (*UserCredits, error) {
	var uc UserCredits
	if err := db.Where("user_id = ?", userID).First(&uc).Error; err != nil {
		return nil, err
	}
	return &uc, nil
}
