package actionlog

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/EdmilsonDev/CodeMentor/app/models"
)

// Store is the append-only sink for action records.
type Store interface {
	Append(ctx context.Context, entry *models.ActionLog) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates an action log store backed by GORM.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Append(ctx context.Context, entry *models.ActionLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

// Logger appends one immutable record per tracked user action. The trail is
// never read back for authorization decisions.
type Logger struct {
	store Store
}

// NewLogger creates an action logger from an injected store.
func NewLogger(store Store) *Logger {
	return &Logger{store: store}
}

// NewLoggerFromDB creates an action logger bound to the given DB handle.
func NewLoggerFromDB(db *gorm.DB) *Logger {
	return NewLogger(NewStore(db))
}

// Record appends an entry and returns its correlation UUID. The payload is
// stored as JSON; a nil payload is stored as an empty object. A referral
// code is attached only when present.
func (l *Logger) Record(ctx context.Context, userID uint, action string, payload any, referralCode string) (string, error) {
	correlationID := uuid.NewString()

	data := "{}"
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return "", err
		}
		data = string(raw)
	}

	entry := &models.ActionLog{
		UUID:         correlationID,
		UserID:       userID,
		Action:       action,
		DataJSON:     data,
		ReferralCode: referralCode,
	}
	if err := l.store.Append(ctx, entry); err != nil {
		return "", err
	}
	return correlationID, nil
}

// RecordBestEffort is Record for call sites where a logging failure must not
// fail the surrounding operation.
func (l *Logger) RecordBestEffort(ctx context.Context, userID uint, action string, payload any, referralCode string) string {
	id, err := l.Record(ctx, userID, action, payload, referralCode)
	if err != nil {
		log.Printf("actionlog: record %q failed for user %d: %v", action, userID, err)
		return ""
	}
	return id
}
