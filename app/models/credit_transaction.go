package models

import "time"

const (
	TransactionUsage       = "usage"
	TransactionAddition    = "addition"
	TransactionPlanUpgrade = "plan_upgrade"
)

// CreditTransaction is an append-only audit record of every ledger mutation.
// Rows are never updated or deleted; the credits service writes one entry per
// consume/addition/upgrade. It is not consulted for authorization decisions.
type CreditTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Type        string    `gorm:"type:varchar(32);not null;index" json:"type"`
	Amount      int       `gorm:"not null" json:"amount"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	PlanID      string    `gorm:"type:varchar(50);default:''" json:"plan_id,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
