package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is the persisted ledger row.
//
// The uniqueness of (raw_date, description) among non-deleted rows is a
// partial index created by migration 000002; GORM tags describe the
// columns only.
type Transaction struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RawDate        string    `gorm:"type:varchar(10);not null;column:raw_date"`
	ParsedDate     time.Time `gorm:"not null;index:ix_transactions_parsed_date,sort:desc"`
	Description    string    `gorm:"type:varchar(255);not null"`
	AmountMinor    int64     `gorm:"not null"`
	AmountRefMinor int64     `gorm:"not null;column:amount_ref_minor"`
	Currency       string    `gorm:"type:varchar(3);not null"`
	Deleted        bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
