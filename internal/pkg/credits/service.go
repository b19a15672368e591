package credits

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/EdmilsonDev/CodeMentor/app/models"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/plans"
)

// Service is the entitlement engine: it decides whether a user may perform a
// gated action and applies all ledger mutations (deduction, top-up, upgrade,
// reset). Each operation independently fetches current state and writes it
// back; two concurrent calls for the same user can interleave.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a credits service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceFromDB creates a credits service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// Initialize creates the free-tier ledger for a user on first authenticated
// access. Calling it again for an existing ledger is a no-op.
func (s *Service) Initialize(ctx context.Context, userID uint) error {
	if userID == 0 {
		return errors.New("user_id is required")
	}

	free := plans.Free()
	now := s.now()
	ledger := &models.UserCredits{
		UserID:     userID,
		Credits:    free.Credits,
		Plan:       string(free.ID),
		PlanExpiry: now.Add(free.Duration),
		TotalUsed:  0,
		LastReset:  now,
	}
	return s.repo.CreateLedgerIfNotExists(ledger)
}

// Get returns the ledger for a user.
func (s *Service) Get(ctx context.Context, userID uint) (*models.UserCredits, error) {
	return s.repo.GetLedger(userID)
}

// Authorize decides whether the user may perform one gated action right now.
// An expired plan is reset to the free tier before the call is denied with
// ReasonPlanExpired; the next call then evaluates against the fresh
// free-tier state. Authorize never deducts credits.
func (s *Service) Authorize(ctx context.Context, userID uint) Decision {
	ledger, err := s.repo.GetLedger(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Decision{Allowed: false, Reason: ReasonUserNotFound}
		}
		log.Printf("credits: authorize fetch failed for user %d: %v", userID, err)
		return Decision{Allowed: false, Reason: ReasonInternalError}
	}

	if ledger.IsExpired(s.now()) {
		s.applyFreeReset(ledger)
		if err := s.repo.SaveLedger(ledger); err != nil {
			log.Printf("credits: expiry reset failed for user %d: %v", userID, err)
			return Decision{Allowed: false, Reason: ReasonInternalError}
		}
		return Decision{Allowed: false, Reason: ReasonPlanExpired}
	}

	if ledger.Credits <= 0 {
		return Decision{Allowed: false, Reason: ReasonInsufficientCredits}
	}

	return Decision{Allowed: true}
}

// Consume deducts amount credits after a gated action. It re-fetches the
// ledger (no caching across Authorize and Consume) and refuses without
// mutation if the balance does not cover the amount. Consume does not check
// plan expiry; callers must go through Authorize first.
func (s *Service) Consume(ctx context.Context, userID uint, amount int) bool {
	if amount <= 0 {
		return false
	}

	ledger, err := s.repo.GetLedger(userID)
	if err != nil {
		log.Printf("credits: consume fetch failed for user %d: %v", userID, err)
		return false
	}
	if ledger.Credits < amount {
		return false
	}

	ledger.Credits -= amount
	ledger.TotalUsed += amount
	if err := s.repo.SaveLedger(ledger); err != nil {
		log.Printf("credits: consume save failed for user %d: %v", userID, err)
		return false
	}

	s.appendTransaction(userID, models.TransactionUsage, -amount, "Uso do chatbot", "")
	return true
}

// AddCredits tops up the balance by a positive amount. There is no cap on
// the resulting balance. Failures are logged and swallowed; callers should
// ensure Initialize ran first.
func (s *Service) AddCredits(ctx context.Context, userID uint, amount int, description string) {
	if amount <= 0 {
		return
	}

	ledger, err := s.repo.GetLedger(userID)
	if err != nil {
		log.Printf("credits: add credits skipped for user %d: %v", userID, err)
		return
	}

	ledger.Credits += amount
	if err := s.repo.SaveLedger(ledger); err != nil {
		log.Printf("credits: add credits save failed for user %d: %v", userID, err)
		return
	}

	s.appendTransaction(userID, models.TransactionAddition, amount, description, "")
}

// UpgradePlan moves the user onto the given catalog tier. The balance is
// replaced with the tier's allotment, not added to; the expiry window starts
// fresh from now. Returns false for unknown plans or store failures.
func (s *Service) UpgradePlan(ctx context.Context, userID uint, planID string) bool {
	tier, ok := plans.FindByID(planID)
	if !ok {
		return false
	}

	ledger, err := s.repo.GetLedger(userID)
	if err != nil {
		log.Printf("credits: upgrade fetch failed for user %d: %v", userID, err)
		return false
	}

	now := s.now()
	ledger.Plan = string(tier.ID)
	ledger.Credits = tier.Credits
	ledger.PlanExpiry = now.Add(tier.Duration)
	ledger.LastReset = now
	if err := s.repo.SaveLedger(ledger); err != nil {
		log.Printf("credits: upgrade save failed for user %d: %v", userID, err)
		return false
	}

	s.appendTransaction(userID, models.TransactionPlanUpgrade, tier.Credits,
		fmt.Sprintf("Upgrade para plano %s", tier.Name), string(tier.ID))
	return true
}

// ResetToFree unconditionally puts the ledger back on free-tier defaults
// with a fresh expiry window. Idempotent; failures are logged and swallowed.
func (s *Service) ResetToFree(ctx context.Context, userID uint) {
	ledger, err := s.repo.GetLedger(userID)
	if err != nil {
		log.Printf("credits: reset skipped for user %d: %v", userID, err)
		return
	}

	s.applyFreeReset(ledger)
	if err := s.repo.SaveLedger(ledger); err != nil {
		log.Printf("credits: reset save failed for user %d: %v", userID, err)
	}
}

// History returns the most recent audit entries for a user.
func (s *Service) History(ctx context.Context, userID uint, limit int) ([]models.CreditTransaction, error) {
	return s.repo.ListTransactionsByUser(userID, limit)
}

func (s *Service) applyFreeReset(ledger *models.UserCredits) {
	free := plans.Free()
	now := s.now()
	ledger.Plan = string(free.ID)
	ledger.Credits = free.Credits
	ledger.PlanExpiry = now.Add(free.Duration)
	ledger.LastReset = now
}

// appendTransaction writes an audit entry. The trail is best-effort
// bookkeeping: a failed append is logged but never fails the mutation that
// already happened.
func (s *Service) appendTransaction(userID uint, kind string, amount int, description, planID string) {
	tx := &models.CreditTransaction{
		UserID:      userID,
		Type:        kind,
		Amount:      amount,
		Description: description,
		PlanID:      planID,
	}
	if err := s.repo.AppendTransaction(tx); err != nil {
		log.Printf("credits: audit append failed for user %d (%s %d): %v", userID, kind, amount, err)
	}
}
