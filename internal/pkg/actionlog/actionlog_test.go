package actionlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EdmilsonDev/CodeMentor/app/models"
)

type fakeStore struct {
	entries []models.ActionLog
	err     error
}

func (f *fakeStore) Append(_ context.Context, entry *models.ActionLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func TestRecordReturnsUniqueCorrelationIDs(t *testing.T) {
	store := &fakeStore{}
	logger := NewLogger(store)

	first, err := logger.Record(context.Background(), 1, models.ActionLogin, nil, "")
	require.NoError(t, err)
	second, err := logger.Record(context.Background(), 1, models.ActionLogin, nil, "")
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	require.Len(t, store.entries, 2)
	assert.Equal(t, first, store.entries[0].UUID)
}

func TestRecordSerializesPayload(t *testing.T) {
	store := &fakeStore{}
	logger := NewLogger(store)

	_, err := logger.Record(context.Background(), 7, models.ActionChatMessage, map[string]any{"chars": 42}, "")
	require.NoError(t, err)

	assert.JSONEq(t, `{"chars":42}`, store.entries[0].DataJSON)
}

func TestRecordNilPayload(t *testing.T) {
	store := &fakeStore{}
	logger := NewLogger(store)

	_, err := logger.Record(context.Background(), 7, models.ActionLogin, nil, "")
	require.NoError(t, err)

	assert.Equal(t, "{}", store.entries[0].DataJSON)
}

func TestRecordWithReferralCode(t *testing.T) {
	store := &fakeStore{}
	logger := NewLogger(store)

	_, err := logger.Record(context.Background(), 7, models.ActionRegister, nil, "abc-123")
	require.NoError(t, err)

	assert.Equal(t, "abc-123", store.entries[0].ReferralCode)
}

func TestRecordBestEffortSwallowsStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("insert failed")}
	logger := NewLogger(store)

	id := logger.RecordBestEffort(context.Background(), 7, models.ActionLogin, nil, "")

	assert.Empty(t, id)
}
