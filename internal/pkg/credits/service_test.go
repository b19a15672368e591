package credits

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/EdmilsonDev/CodeMentor/app/models"
)

// fakeRepository keeps ledgers in memory with the same last-write-wins
// semantics as the real store.
type fakeRepository struct {
	ledgers map[uint]models.UserCredits
	txs     []models.CreditTransaction
	saveErr error
	txErr   error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{ledgers: make(map[uint]models.UserCredits)}
}

func (f *fakeRepository) GetLedger(userID uint) (*models.UserCredits, error) {
	ledger, ok := f.ledgers[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := ledger
	return &copied, nil
}

func (f *fakeRepository) CreateLedgerIfNotExists(ledger *models.UserCredits) error {
	if _, ok := f.ledgers[ledger.UserID]; ok {
		return nil
	}
	f.ledgers[ledger.UserID] = *ledger
	return nil
}

func (f *fakeRepository) SaveLedger(ledger *models.UserCredits) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.ledgers[ledger.UserID] = *ledger
	return nil
}

func (f *fakeRepository) AppendTransaction(tx *models.CreditTransaction) error {
	if f.txErr != nil {
		return f.txErr
	}
	f.txs = append(f.txs, *tx)
	return nil
}

func (f *fakeRepository) ListTransactionsByUser(userID uint, limit int) ([]models.CreditTransaction, error) {
	var out []models.CreditTransaction
	for _, tx := range f.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newTestService(repo Repository, at time.Time) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return at }
	return svc
}

func TestInitializeCreatesFreeTierLedger(t *testing.T) {
	repo := newFakeRepository()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	require.NoError(t, svc.Initialize(context.Background(), 1))

	ledger := repo.ledgers[1]
	assert.Equal(t, 10, ledger.Credits)
	assert.Equal(t, "free", ledger.Plan)
	assert.Equal(t, now.Add(30*24*time.Hour), ledger.PlanExpiry)
	assert.Equal(t, 0, ledger.TotalUsed)
}

func TestInitializeIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	now := time.Now()
	svc := newTestService(repo, now)

	require.NoError(t, svc.Initialize(context.Background(), 1))
	require.True(t, svc.Consume(context.Background(), 1, 4))
	require.NoError(t, svc.Initialize(context.Background(), 1))

	assert.Equal(t, 6, repo.ledgers[1].Credits, "re-initialization must not reset an existing ledger")
}

func TestAuthorizeUnknownUser(t *testing.T) {
	svc := newTestService(newFakeRepository(), time.Now())

	decision := svc.Authorize(context.Background(), 42)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonUserNotFound, decision.Reason)
}

func TestAuthorizeZeroBalance(t *testing.T) {
	repo := newFakeRepository()
	now := time.Now()
	repo.ledgers[1] = models.UserCredits{UserID: 1, Credits: 0, Plan: "flash", PlanExpiry: now.Add(time.Hour)}
	svc := newTestService(repo, now)

	decision := svc.Authorize(context.Background(), 1)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonInsufficientCredits, decision.Reason)
}

func TestAuthorizeExpiredPlanResetsToFree(t *testing.T) {
	repo := newFakeRepository()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.ledgers[1] = models.UserCredits{
		UserID:     1,
		Credits:    80,
		Plan:       "flash",
		PlanExpiry: now.Add(-time.Minute),
		TotalUsed:  20,
	}
	svc := newTestService(repo, now)

	decision := svc.Authorize(context.Background(), 1)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonPlanExpired, decision.Reason)

	// The reset happened even though the triggering call was denied.
	ledger := repo.ledgers[1]
	assert.Equal(t, "free", ledger.Plan)
	assert.Equal(t, 10, ledger.Credits)
	assert.Equal(t, now.Add(30*24*time.Hour), ledger.PlanExpiry)

	// A second immediate call evaluates against the fresh free-tier state.
	second := svc.Authorize(context.Background(), 1)
	assert.True(t, second.Allowed)
}

func TestAuthorizeValidLedger(t *testing.T) {
	repo := newFakeRepository()
	now := time.Now()
	repo.ledgers[1] = models.UserCredits{UserID: 1, Credits: 3, Plan: "free", PlanExpiry: now.Add(time.Hour)}
	svc := newTestService(repo, now)

	decision := svc.Authorize(context.Background(), 1)

	assert.True(t, decision.Allowed)
	assert.Equal(t, ReasonNone, decision.Reason)
}

func TestConsumeScenario(t *testing.T) {
	// Fresh free-tier user: seven single consumes, then an over-draw.
	repo := newFakeRepository()
	now := time.Now()
	svc := newTestService(repo, now)
	require.NoError(t, svc.Initialize(context.Background(), 1))

	for i := 0; i < 7; i++ {
		require.True(t, svc.Consume(context.Background(), 1, 1))
	}

	ledger := repo.ledgers[1]
	assert.Equal(t, 3, ledger.Credits)
	assert.Equal(t, 7, ledger.TotalUsed)

	// Insufficient balance refuses without mutation.
	assert.False(t, svc.Consume(context.Background(), 1, 5))
	ledger = repo.ledgers[1]
	assert.Equal(t, 3, ledger.Credits)
	assert.Equal(t, 7, ledger.TotalUsed)
}

func TestConsumeNeverGoesNegative(t *testing.T) {
	repo := newFakeRepository()
	now := time.Now()
	repo.ledgers[1] = models.UserCredits{UserID: 1, Credits: 1, Plan: "free", PlanExpiry: now.Add(time.Hour)}
	svc := newTestService(repo, now)

	assert.False(t, svc.Consume(context.Background(), 1, 2))
	assert.Equal(t, 1, repo.ledgers[1].Credits)
}

func TestConsumeRejectsNonPositiveAmount(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, time.Now())

	assert.False(t, svc.Consume(context.Background(), 1, 0))
	assert.False(t, svc.Consume(context.Background(), 1, -3))
}

func TestConsumeDoesNotCheckExpiry(t *testing.T) {
	// Expiry is only detected by Authorize; Consume alone is not a safe gate.
	repo := newFakeRepository()
	now := time.Now()
	repo.ledgers[1] = models.UserCredits{UserID: 1, Credits: 5, Plan: "flash", PlanExpiry: now.Add(-time.Hour)}
	svc := newTestService(repo, now)

	assert.True(t, svc.Consume(context.Background(), 1, 1))
	assert.Equal(t, 4, repo.ledgers[1].Credits)
}

func TestConsumeWritesUsageAudit(t *testing.T) {
	repo := newFakeRepository()
	now := time.Now()
	svc := newTestService(repo, now)
	require.NoError(t, svc.Initialize(context.Background(), 1))

	require.True(t, svc.Consume(context.Background(), 1, 2))

	require.Len(t, repo.txs, 1)
	assert.Equal(t, models.TransactionUsage, repo.txs[0].Type)
	assert.Equal(t, -2, repo.txs[0].Amount)
}

func TestAddCredits(t *testing.T) {
	repo := newFakeRepository()
	now := time.Now()
	repo.ledgers[1] = models.UserCredits{UserID: 1, Credits: 3, Plan: "free", PlanExpiry: now.Add(time.Hour)}
	svc := newTestService(repo, now)

	svc.AddCredits(context.Background(), 1, 20, "bonus")

	assert.Equal(t, 23, repo.ledgers[1].Credits)
	require.Len(t, repo.txs, 1)
	assert.Equal(t, models.TransactionAddition, repo.txs[0].Type)
	assert.Equal(t, 20, repo.txs[0].Amount)
	assert.Equal(t, "bonus", repo.txs[0].Description)
}

func TestAddCreditsMissingLedgerIsSwallowed(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, time.Now())

	// Best-effort: no ledger, no panic, no audit entry.
	svc.AddCredits(context.Background(), 9, 5, "bonus")

	assert.Empty(t, repo.txs)
}

func TestUpgradePlanReplacesBalance(t *testing.T) {
	repo := newFakeRepository()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.ledgers[1] = models.UserCredits{UserID: 1, Credits: 7, Plan: "free", PlanExpiry: now.Add(time.Hour), TotalUsed: 3}
	svc := newTestService(repo, now)

	require.True(t, svc.UpgradePlan(context.Background(), 1, "pro"))

	ledger := repo.ledgers[1]
	assert.Equal(t, 500, ledger.Credits, "upgrade replaces the balance, it does not add")
	assert.Equal(t, "pro", ledger.Plan)
	assert.Equal(t, now.Add(30*24*time.Hour), ledger.PlanExpiry)
	assert.Equal(t, 3, ledger.TotalUsed, "usage counter is untouched by upgrades")

	require.Len(t, repo.txs, 1)
	assert.Equal(t, models.TransactionPlanUpgrade, repo.txs[0].Type)
	assert.Equal(t, "pro", repo.txs[0].PlanID)
}

func TestUpgradePlanUnknownPlan(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, time.Now())

	assert.False(t, svc.UpgradePlan(context.Background(), 1, "enterprise"))
}

func TestResetToFree(t *testing.T) {
	repo := newFakeRepository()
	now := time.Now()
	repo.ledgers[1] = models.UserCredits{UserID: 1, Credits: 400, Plan: "pro", PlanExpiry: now.Add(-time.Hour)}
	svc := newTestService(repo, now)

	svc.ResetToFree(context.Background(), 1)
	ledger := repo.ledgers[1]
	assert.Equal(t, "free", ledger.Plan)
	assert.Equal(t, 10, ledger.Credits)

	// Idempotent.
	svc.ResetToFree(context.Background(), 1)
	assert.Equal(t, 10, repo.ledgers[1].Credits)
}

func TestAuthorizeStoreFailure(t *testing.T) {
	repo := newFakeRepository()
	now := time.Now()
	repo.ledgers[1] = models.UserCredits{UserID: 1, Credits: 5, Plan: "flash", PlanExpiry: now.Add(-time.Hour)}
	repo.saveErr = errors.New("connection reset")
	svc := newTestService(repo, now)

	decision := svc.Authorize(context.Background(), 1)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonInternalError, decision.Reason)
}

func TestConsumeAuditFailureDoesNotUndoDeduction(t *testing.T) {
	// The audit trail is best-effort; a failed append leaves the already
	// persisted deduction in place. This is the stats-drift gap, preserved.
	repo := newFakeRepository()
	now := time.Now()
	svc := newTestService(repo, now)
	require.NoError(t, svc.Initialize(context.Background(), 1))
	repo.txErr = errors.New("insert failed")

	assert.True(t, svc.Consume(context.Background(), 1, 1))
	assert.Equal(t, 9, repo.ledgers[1].Credits)
	assert.Empty(t, repo.txs)
}
