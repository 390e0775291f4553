package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// LedgerEntry is an immutable record of a single balance-affecting event.
// Entries are append-only: they are never updated or deleted.
type LedgerEntry struct {
	ID            int64           `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	Type          TransactionType `db:"type"`
	AmountILS     int64           `db:"amount_ils"` // signed: credits positive, debits negative
	BalanceBefore int64           `db:"balance_before"`
	BalanceAfter  int64           `db:"balance_after"`
	Description   string          `db:"description"`
	CreatedAt     time.Time       `db:"created_at"`
}

// IsCredit returns true if the entry increased the balance
func (e *LedgerEntry) IsCredit() bool {
	return e.AmountILS > 0
}

// IsDebit returns true if the entry decreased the balance
func (e *LedgerEntry) IsDebit() bool {
	return e.AmountILS < 0
}

// Validate performs basic consistency checks on the entry
func (e *LedgerEntry) Validate() error {
	if e.AmountILS == 0 {
		return errors.New("amount cannot be zero")
	}

	if e.BalanceAfter != e.BalanceBefore+e.AmountILS {
		return errors.New("balance calculation is inconsistent")
	}

	if e.BalanceAfter < 0 {
		return errors.New("balance cannot be negative")
	}

	return nil
}
