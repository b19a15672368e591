package referral

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/EdmilsonDev/CodeMentor/app/models"
)

type fakeCodeStore struct {
	codes map[string]models.InviteCode
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: make(map[string]models.InviteCode)}
}

func (f *fakeCodeStore) CreateCode(code *models.InviteCode) error {
	f.codes[code.Code] = *code
	return nil
}

func (f *fakeCodeStore) GetByCode(code string) (*models.InviteCode, error) {
	ic, ok := f.codes[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := ic
	return &copied, nil
}

func (f *fakeCodeStore) SaveCode(code *models.InviteCode) error {
	f.codes[code.Code] = *code
	return nil
}

func (f *fakeCodeStore) ListByIssuer(userID uint) ([]models.InviteCode, error) {
	var out []models.InviteCode
	for _, ic := range f.codes {
		if ic.UserID == userID {
			out = append(out, ic)
		}
	}
	return out, nil
}

type fakeAwarder struct {
	awards map[uint]int
}

func newFakeAwarder() *fakeAwarder {
	return &fakeAwarder{awards: make(map[uint]int)}
}

func (f *fakeAwarder) AddCredits(_ context.Context, userID uint, amount int, _ string) {
	f.awards[userID] += amount
}

func TestIssueToken(t *testing.T) {
	store := newFakeCodeStore()
	svc := NewService(store, newFakeAwarder())

	code, err := svc.IssueToken(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, code)

	assert.NotEmpty(t, code.Code)
	assert.True(t, code.IsActive)
	assert.Equal(t, uint(1), code.UserID)
	assert.Equal(t, 0, code.UseCount())
}

func TestIssueTokenCodesAreUnique(t *testing.T) {
	store := newFakeCodeStore()
	svc := NewService(store, newFakeAwarder())

	a, err := svc.IssueToken(context.Background(), 1)
	require.NoError(t, err)
	b, err := svc.IssueToken(context.Background(), 1)
	require.NoError(t, err)

	assert.NotEqual(t, a.Code, b.Code)
}

func TestRedeemAwardsBothParties(t *testing.T) {
	store := newFakeCodeStore()
	awarder := newFakeAwarder()
	svc := NewService(store, awarder)

	code, err := svc.IssueToken(context.Background(), 1)
	require.NoError(t, err)

	require.True(t, svc.Redeem(context.Background(), code.Code, 2))

	assert.Equal(t, IssuerBonus, awarder.awards[1])
	assert.Equal(t, RedeemerBonus, awarder.awards[2])

	stats, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, IssuerBonus, stats.TotalCreditsEarned)
}

func TestRedeemUnknownCode(t *testing.T) {
	svc := NewService(newFakeCodeStore(), newFakeAwarder())

	assert.False(t, svc.Redeem(context.Background(), "nope", 2))
}

func TestRedeemInactiveCode(t *testing.T) {
	store := newFakeCodeStore()
	store.codes["dead"] = models.InviteCode{Code: "dead", UserID: 1, IsActive: false}
	svc := NewService(store, newFakeAwarder())

	assert.False(t, svc.Redeem(context.Background(), "dead", 2))
}

func TestRedeemLeavesCodeActive(t *testing.T) {
	// Invite links are multi-use: a redemption does not deactivate the code.
	store := newFakeCodeStore()
	svc := NewService(store, newFakeAwarder())

	code, err := svc.IssueToken(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, svc.Redeem(context.Background(), code.Code, 2))
	require.True(t, svc.Redeem(context.Background(), code.Code, 3))

	stored, err := store.GetByCode(code.Code)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.Equal(t, 2, stored.UseCount())
}

func TestRedeemSameUserTwiceAwardsTwice(t *testing.T) {
	// There is no guard against repeated redemption by the same user: the
	// second call pays out again. Known quirk, kept as observed behavior.
	store := newFakeCodeStore()
	awarder := newFakeAwarder()
	svc := NewService(store, awarder)

	code, err := svc.IssueToken(context.Background(), 1)
	require.NoError(t, err)

	require.True(t, svc.Redeem(context.Background(), code.Code, 2))
	require.True(t, svc.Redeem(context.Background(), code.Code, 2))

	assert.Equal(t, 2*IssuerBonus, awarder.awards[1])
	assert.Equal(t, 2*RedeemerBonus, awarder.awards[2])
}

func TestStatsAggregation(t *testing.T) {
	store := newFakeCodeStore()
	awarder := newFakeAwarder()
	svc := NewService(store, awarder)

	first, err := svc.IssueToken(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.IssueToken(context.Background(), 1)
	require.NoError(t, err)

	require.True(t, svc.Redeem(context.Background(), first.Code, 5))
	require.True(t, svc.Redeem(context.Background(), first.Code, 6))

	stats, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalIssued)
	assert.Equal(t, 2, stats.ActiveCount)
	assert.Equal(t, 2*IssuerBonus, stats.TotalCreditsEarned)
	assert.Len(t, stats.RecentCodes, 2)
}

func TestStatsEmptyIssuer(t *testing.T) {
	svc := NewService(newFakeCodeStore(), newFakeAwarder())

	stats, err := svc.Stats(context.Background(), 99)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalIssued)
	assert.Equal(t, 0, stats.TotalCreditsEarned)
	assert.Empty(t, stats.RecentCodes)
}
