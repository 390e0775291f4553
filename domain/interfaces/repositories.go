package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lotto/domain/entities"
	"lotto/domain/events"
)

// UserRepository defines data access for users and their balances
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID, returning nil when absent
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// GetByEmail retrieves a user by email, returning nil when absent
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// GetAll returns all users ordered by creation time
	GetAll(ctx context.Context) ([]*entities.User, error)

	// ApplyBalanceDelta atomically adds delta to the user's balance. The
	// update is conditional at the storage layer: it only succeeds when the
	// resulting balance is non-negative, so concurrent debits cannot
	// interleave into an overdraw. Returns the balance before and after.
	ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta int64) (balanceBefore, balanceAfter int64, err error)

	// Delete removes a user; owned tickets cascade
	Delete(ctx context.Context, id uuid.UUID) error
}

// DrawRepository defines data access for lottery draws
type DrawRepository interface {
	// Create inserts a new scheduled draw
	Create(ctx context.Context, drawDate time.Time, jackpotAmount int64) (*entities.Draw, error)

	// GetOrCreateScheduledDraw returns the current scheduled draw, creating
	// one for the given date when absent
	GetOrCreateScheduledDraw(ctx context.Context, drawDate time.Time, jackpotAmount int64) (*entities.Draw, error)

	// GetByID retrieves a draw by ID, returning nil when absent
	GetByID(ctx context.Context, id int64) (*entities.Draw, error)

	// GetByIDForUpdate retrieves a draw by ID with a row lock
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Draw, error)

	// CompleteDraw transitions a draw from scheduled to completed, recording
	// the winning numbers. The update is conditional on the scheduled status;
	// it reports false when the draw was not in that state.
	CompleteDraw(ctx context.Context, id int64, winningNumbers []int32) (bool, error)

	// Cancel transitions a scheduled draw to cancelled
	Cancel(ctx context.Context, id int64) (bool, error)

	// ListDueScheduled returns scheduled draws whose draw date has passed
	ListDueScheduled(ctx context.Context, asOf time.Time) ([]*entities.Draw, error)

	// GetAll returns all draws, newest first
	GetAll(ctx context.Context) ([]*entities.Draw, error)
}

// TicketRepository defines data access for lottery tickets
type TicketRepository interface {
	// Create inserts a new ticket
	Create(ctx context.Context, ticket *entities.Ticket) error

	// GetByID retrieves a ticket by ID, returning nil when absent
	GetByID(ctx context.Context, id int64) (*entities.Ticket, error)

	// GetByDraw returns all tickets belonging to a draw
	GetByDraw(ctx context.Context, drawID int64) ([]*entities.Ticket, error)

	// GetByUser returns a user's tickets, newest first
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Ticket, error)

	// RecordResult persists the settlement outcome on an unsettled ticket.
	// Conditional on the ticket not having been settled before; reports
	// false when it already was.
	RecordResult(ctx context.Context, ticketID int64, matches int32, winningAmount int64, isWinner bool) (bool, error)
}

// DepositRepository defines data access for crypto deposit requests
type DepositRepository interface {
	// Create inserts a new pending deposit
	Create(ctx context.Context, deposit *entities.Deposit) error

	// GetByID retrieves a deposit by ID, returning nil when absent
	GetByID(ctx context.Context, id int64) (*entities.Deposit, error)

	// ListByUser returns a user's deposits, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Deposit, error)

	// ListByStatus returns deposits in a given status, oldest first
	ListByStatus(ctx context.Context, status entities.ApprovalStatus) ([]*entities.Deposit, error)

	// Decide flips a pending deposit to a terminal status, recording the
	// deciding admin and timestamp. Conditional on the pending status;
	// reports false when the deposit was already processed.
	Decide(ctx context.Context, id int64, status entities.ApprovalStatus, adminID uuid.UUID, notes string) (bool, error)
}

// WithdrawalRepository defines data access for crypto withdrawal requests
type WithdrawalRepository interface {
	// Create inserts a new pending withdrawal
	Create(ctx context.Context, withdrawal *entities.Withdrawal) error

	// GetByID retrieves a withdrawal by ID, returning nil when absent
	GetByID(ctx context.Context, id int64) (*entities.Withdrawal, error)

	// ListByUser returns a user's withdrawals, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Withdrawal, error)

	// ListByStatus returns withdrawals in a given status, oldest first
	ListByStatus(ctx context.Context, status entities.ApprovalStatus) ([]*entities.Withdrawal, error)

	// Decide flips a pending withdrawal to a terminal status, recording the
	// deciding admin and timestamp. Conditional on the pending status;
	// reports false when the withdrawal was already processed.
	Decide(ctx context.Context, id int64, status entities.ApprovalStatus, adminID uuid.UUID, notes string) (bool, error)
}

// LedgerRepository defines append-only data access for ledger entries
type LedgerRepository interface {
	// Record appends one ledger entry. Entries are never updated or deleted.
	Record(ctx context.Context, entry *entities.LedgerEntry) error

	// ListByUser returns a user's ledger entries, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.LedgerEntry, error)

	// SumByUser returns the signed sum of a user's entries
	SumByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}
