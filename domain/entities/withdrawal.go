package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Withdrawal represents a crypto withdrawal awaiting admin processing.
// On confirmation the ILS amount is debited from the owning user exactly once;
// if the debit would overdraw, the request stays pending.
type Withdrawal struct {
	ID            int64           `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	CryptoType    string          `db:"crypto_type"`
	CryptoAmount  decimal.Decimal `db:"crypto_amount"`
	AmountILS     int64           `db:"ils_amount"`
	ExchangeRate  decimal.Decimal `db:"exchange_rate"`
	WalletAddress string          `db:"wallet_address"`
	Status        ApprovalStatus  `db:"status"`
	ProcessedBy   *uuid.UUID      `db:"processed_by"` // admin identity, nil while pending
	ProcessedAt   *time.Time      `db:"processed_at"`
	Notes         string          `db:"notes"`
	CreatedAt     time.Time       `db:"created_at"`
}

// IsPending returns true if the withdrawal still awaits a decision
func (w *Withdrawal) IsPending() bool {
	return w.Status == ApprovalStatusPending
}
