package models

import "time"

// Tracked action kinds. The list is open-ended; unknown kinds are stored
// as-is so the frontend can introduce new ones without a schema change.
const (
	ActionRegister     = "register"
	ActionLogin        = "login"
	ActionChatMessage  = "chat_message"
	ActionInviteIssued = "invite_issued"
	ActionInviteUsed   = "invite_used"
	ActionPlanUpgrade  = "plan_upgrade"
	ActionContact      = "contact"
)

// ActionLog is an append-only trail of tracked user actions. Every entry
// carries a unique correlation UUID returned to the caller. Entries are never
// read back for authorization; they exist for observability and debugging.
type ActionLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UUID         string    `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Action       string    `gorm:"type:varchar(64);not null;index" json:"action"`
	DataJSON     string    `gorm:"type:longtext" json:"data_json"`
	ReferralCode string    `gorm:"type:varchar(64);default:''" json:"referral_code,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
