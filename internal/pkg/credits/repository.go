package credits

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EdmilsonDev/CodeMentor/app/models"
)

// Repository provides the ledger store operations used by the credits
// service. Reads and writes are plain last-write-wins document semantics;
// there is no versioning or compare-and-swap.
type Repository interface {
	GetLedger(userID uint) (*models.UserCredits, error)
	CreateLedgerIfNotExists(ledger *models.UserCredits) error
	SaveLedger(ledger *models.UserCredits) error
	AppendTransaction(tx *models.CreditTransaction) error
	ListTransactionsByUser(userID uint, limit int) ([]models.CreditTransaction, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a ledger repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetLedger(userID uint) (*models.UserCredits, error) {
	return models.GetUserCredits(r.db, userID)
}

func (r *gormRepository) CreateLedgerIfNotExists(ledger *models.UserCredits) error {
	// Idempotent first-touch creation: a concurrent or repeated call is a
	// no-op if the row already exists.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(ledger).Error
}

func (r *gormRepository) SaveLedger(ledger *models.UserCredits) error {
	return r.db.Save(ledger).Error
}

func (r *gormRepository) AppendTransaction(tx *models.CreditTransaction) error {
	return r.db.Create(tx).Error
}

func (r *gormRepository) ListTransactionsByUser(userID uint, limit int) ([]models.CreditTransaction, error) {
	var txs []models.CreditTransaction
	q := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&txs).Error
	return txs, err
}
