package entities

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrScheduledDrawExists is returned when creating a draw while another draw
// is still scheduled. At most one scheduled draw exists at a time.
var ErrScheduledDrawExists = errors.New("a scheduled draw already exists")

// InsufficientFundsError is returned when a debit would take a user's balance
// below zero. The mutation is never applied.
type InsufficientFundsError struct {
	UserID    uuid.UUID
	Available int64
	Required  int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %s: have %d, need %d", e.UserID, e.Available, e.Required)
}

// InvalidSelectionError is returned when a ticket's number selection is malformed
type InvalidSelectionError struct {
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid number selection: %s", e.Reason)
}

// InvalidWinningNumbersError is returned when a draw result is malformed
type InvalidWinningNumbersError struct {
	Reason string
}

func (e *InvalidWinningNumbersError) Error() string {
	return fmt.Sprintf("invalid winning numbers: %s", e.Reason)
}

// DrawNotScheduledError is returned when settlement is attempted on a draw
// that is not in the scheduled state. This guards against double settlement.
type DrawNotScheduledError struct {
	DrawID int64
	Status DrawStatus
}

func (e *DrawNotScheduledError) Error() string {
	return fmt.Sprintf("draw %d is not scheduled (status %s)", e.DrawID, e.Status)
}

// AlreadyProcessedError is returned when a deposit or withdrawal decision is
// attempted on a request that already reached a terminal status.
type AlreadyProcessedError struct {
	Kind   string // "deposit" or "withdrawal"
	ID     int64
	Status ApprovalStatus
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("%s %d already processed (status %s)", e.Kind, e.ID, e.Status)
}

// NotFoundError is returned when a referenced entity does not exist
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
