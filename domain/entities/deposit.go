package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApprovalStatus represents the lifecycle state of a deposit or withdrawal request
type ApprovalStatus string

const (
	ApprovalStatusPending   ApprovalStatus = "pending"
	ApprovalStatusConfirmed ApprovalStatus = "confirmed"
	ApprovalStatusRejected  ApprovalStatus = "rejected"
)

// IsTerminal returns true once the request can no longer change
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalStatusConfirmed || s == ApprovalStatusRejected
}

// Deposit represents a crypto deposit awaiting admin validation.
// On confirmation the ILS amount is credited to the owning user exactly once.
type Deposit struct {
	ID           int64           `db:"id"`
	UserID       uuid.UUID       `db:"user_id"`
	CryptoType   string          `db:"crypto_type"`
	CryptoAmount decimal.Decimal `db:"crypto_amount"`
	AmountILS    int64           `db:"ils_amount"`
	ExchangeRate decimal.Decimal `db:"exchange_rate"`
	Status       ApprovalStatus  `db:"status"`
	ValidatedBy  *uuid.UUID      `db:"validated_by"` // admin identity, nil while pending
	ValidatedAt  *time.Time      `db:"validated_at"`
	Notes        string          `db:"notes"`
	CreatedAt    time.Time       `db:"created_at"`
}

// IsPending returns true if the deposit still awaits a decision
func (d *Deposit) IsPending() bool {
	return d.Status == ApprovalStatusPending
}
