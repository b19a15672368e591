package referral

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/EdmilsonDev/CodeMentor/app/models"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/env"
)

// Bonus credits awarded on redemption: the issuer earns IssuerBonus for each
// redeemer, the redeemer starts with RedeemerBonus extra.
const (
	IssuerBonus   = 5
	RedeemerBonus = 10
)

// CreditAwarder is the slice of the credits service the tracker needs.
type CreditAwarder interface {
	AddCredits(ctx context.Context, userID uint, amount int, description string)
}

// Service issues invite codes and awards referral bonuses on redemption.
// Codes are multi-use: redemption appends to the redeemer list without
// deactivating the code, and the same user redeeming twice is awarded twice.
type Service struct {
	repo    Repository
	credits CreditAwarder
}

// Stats aggregates a user's invite activity. TotalCreditsEarned is derived
// from the codes' redeemer lists, not from the ledger's transaction log, so
// it can drift from actually awarded credits after a partial failure.
type Stats struct {
	TotalIssued        int                 `json:"total_issued"`
	ActiveCount        int                 `json:"active_count"`
	TotalCreditsEarned int                 `json:"total_credits_earned"`
	RecentCodes        []models.InviteCode `json:"recent_codes"`
}

// NewService creates an invite tracker from an injected repository and
// credits service.
func NewService(repo Repository, credits CreditAwarder) *Service {
	return &Service{repo: repo, credits: credits}
}

// NewServiceFromDB creates an invite tracker bound to the given DB handle.
func NewServiceFromDB(db *gorm.DB, credits CreditAwarder) *Service {
	return NewService(NewRepository(db), credits)
}

// IssueToken generates a fresh invite code for the issuer. There is no limit
// on outstanding codes per user.
func (s *Service) IssueToken(ctx context.Context, issuerID uint) (*models.InviteCode, error) {
	if issuerID == 0 {
		return nil, errors.New("issuer user_id is required")
	}

	code := &models.InviteCode{
		Code:     uuid.NewString(),
		UserID:   issuerID,
		IsActive: true,
	}
	if err := s.repo.CreateCode(code); err != nil {
		return nil, err
	}
	return code, nil
}

// InviteLink renders the shareable URL for a code.
func InviteLink(code string) string {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		base = "http://localhost:" + env.GetEnv("APP_PORT", "4000")
	}
	return fmt.Sprintf("%s/?invite=%s", base, code)
}

// Redeem resolves a code and awards bonus credits to both parties. Returns
// false for unknown or inactive codes. The redeemer is appended to the
// code's list first; if either credit award then fails the code mutation is
// not rolled back, leaving an inconsistent but non-corrupting state.
func (s *Service) Redeem(ctx context.Context, code string, redeemerID uint) bool {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" || redeemerID == 0 {
		return false
	}

	ic, err := s.repo.GetByCode(trimmed)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("referral: redeem fetch failed for code %q: %v", trimmed, err)
		}
		return false
	}
	if !ic.IsActive {
		return false
	}

	if err := ic.AppendUsedBy(redeemerID); err != nil {
		log.Printf("referral: redeem append failed for code %q: %v", trimmed, err)
		return false
	}
	if err := s.repo.SaveCode(ic); err != nil {
		log.Printf("referral: redeem save failed for code %q: %v", trimmed, err)
		return false
	}

	s.credits.AddCredits(ctx, ic.UserID, IssuerBonus, "Bônus de convite")
	s.credits.AddCredits(ctx, redeemerID, RedeemerBonus, "Bônus de boas-vindas")
	return true
}

// Stats aggregates all codes issued by a user; the five most recent codes
// are included for display.
func (s *Service) Stats(ctx context.Context, issuerID uint) (*Stats, error) {
	codes, err := s.repo.ListByIssuer(issuerID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{RecentCodes: []models.InviteCode{}}
	for _, code := range codes {
		stats.TotalIssued++
		if code.IsActive {
			stats.ActiveCount++
		}
		stats.TotalCreditsEarned += IssuerBonus * code.UseCount()
	}
	if len(codes) > 5 {
		codes = codes[:5]
	}
	stats.RecentCodes = codes
	return stats, nil
}
