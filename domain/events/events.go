package events

import (
	"github.com/google/uuid"

	"lotto/domain/entities"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange EventType = "balance_change"
	EventTypeUserCreated   EventType = "user_created"
	EventTypeDrawSettled   EventType = "draw_settled"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          uuid.UUID                `json:"user_id"`
	OldBalance      int64                    `json:"old_balance"`
	NewBalance      int64                    `json:"new_balance"`
	TransactionType entities.TransactionType `json:"transaction_type"`
	ChangeAmount    int64                    `json:"change_amount"`
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserCreatedEvent represents a new user registration
type UserCreatedEvent struct {
	UserID   uuid.UUID     `json:"user_id"`
	Email    string        `json:"email"`
	Username string        `json:"username"`
	Role     entities.Role `json:"role"`
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// DrawSettledEvent represents a draw that was settled
type DrawSettledEvent struct {
	DrawID         int64   `json:"draw_id"`
	WinningNumbers []int32 `json:"winning_numbers"`
	WinnersPaid    int     `json:"winners_paid"`
	TotalPayout    int64   `json:"total_payout"`
}

func (e DrawSettledEvent) Type() EventType {
	return EventTypeDrawSettled
}
