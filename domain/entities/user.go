package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account with its wallet balance
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	BalanceILS   int64     `db:"balance_ils"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// CanAfford checks if the user has sufficient balance for an amount
func (u *User) CanAfford(amount int64) bool {
	return u.BalanceILS >= amount
}

// HasPositiveBalance checks if the user has a positive balance
func (u *User) HasPositiveBalance() bool {
	return u.BalanceILS > 0
}

// CalculateNewBalance calculates what the balance would be after a change
func (u *User) CalculateNewBalance(changeAmount int64) int64 {
	return u.BalanceILS + changeAmount
}
