package models

import (
	"encoding/json"
	"time"
)

// InviteCode is a shareable referral token. UsedBy grows monotonically with
// every redemption; codes stay active after use (invite links are
// multi-redeemable, there is no single-use cap).
type InviteCode struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Code       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	UsedByJSON string    `gorm:"type:longtext" json:"-"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// UsedBy decodes the redeemer list. An empty or malformed column yields an
// empty slice so callers never have to special-case fresh codes.
func (ic *InviteCode) UsedBy() []uint {
	if ic.UsedByJSON == "" {
		return []uint{}
	}
	var ids []uint
	if err := json.Unmarshal([]byte(ic.UsedByJSON), &ids); err != nil {
		return []uint{}
	}
	return ids
}

// AppendUsedBy records a redemption. No duplicate check: the same user id can
// appear more than once if the same code is redeemed twice.
func (ic *InviteCode) AppendUsedBy(userID uint) error {
	ids := append(ic.UsedBy(), userID)
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	ic.UsedByJSON = string(raw)
	return nil
}

// UseCount returns the number of recorded redemptions.
func (ic *InviteCode) UseCount() int {
	return len(ic.UsedBy())
}
