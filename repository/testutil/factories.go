package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lotto/domain/entities"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(email, username string) *entities.User {
	return &entities.User{
		Email:        email,
		Username:     username,
		PasswordHash: "$2a$04$testhashnotausablebcryptvalue",
		Role:         entities.RoleClient,
		BalanceILS:   1000,
	}
}

// CreateTestUserWithBalance creates a test user with a specific balance
func CreateTestUserWithBalance(email, username string, balance int64) *entities.User {
	user := CreateTestUser(email, username)
	user.BalanceILS = balance
	return user
}

// CreateTestAdmin creates a test user with the admin role
func CreateTestAdmin(email, username string) *entities.User {
	user := CreateTestUser(email, username)
	user.Role = entities.RoleAdmin
	return user
}

// CreateTestDeposit creates a pending test deposit for a user
func CreateTestDeposit(userID uuid.UUID, amountILS int64) *entities.Deposit {
	return &entities.Deposit{
		UserID:       userID,
		CryptoType:   "BTC",
		CryptoAmount: decimal.RequireFromString("0.00500000"),
		AmountILS:    amountILS,
		ExchangeRate: decimal.RequireFromString("240000"),
		Status:       entities.ApprovalStatusPending,
	}
}

// CreateTestWithdrawal creates a pending test withdrawal for a user
func CreateTestWithdrawal(userID uuid.UUID, amountILS int64) *entities.Withdrawal {
	return &entities.Withdrawal{
		UserID:        userID,
		CryptoType:    "ETH",
		CryptoAmount:  decimal.RequireFromString("0.10000000"),
		AmountILS:     amountILS,
		ExchangeRate:  decimal.RequireFromString("12000"),
		WalletAddress: "0x0000000000000000000000000000000000000001",
		Status:        entities.ApprovalStatusPending,
	}
}

// CreateTestTicket creates a test ticket for a user and draw
func CreateTestTicket(userID uuid.UUID, drawID int64, numbers []int32) *entities.Ticket {
	return &entities.Ticket{
		UserID:  userID,
		DrawID:  drawID,
		Numbers: numbers,
		CostILS: entities.TicketCostILS,
	}
}

// NextDrawDate returns a draw date comfortably in the future
func NextDrawDate() time.Time {
	return time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
}
