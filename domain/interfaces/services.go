package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lotto/domain/entities"
)

// LedgerResult reports the balances surrounding a single ledger mutation
type LedgerResult struct {
	Entry         *entities.LedgerEntry
	BalanceBefore int64
	BalanceAfter  int64
}

// PurchaseResult reports a successful ticket purchase
type PurchaseResult struct {
	Ticket     *entities.Ticket
	Draw       *entities.Draw
	TotalCost  int64
	NewBalance int64
}

// TicketSettlement reports the outcome for one ticket of a settled draw
type TicketSettlement struct {
	TicketID      int64
	UserID        uuid.UUID
	Matches       int32
	WinningAmount int64
	IsWinner      bool
}

// TicketFailure records a per-ticket settlement failure. Failures do not
// abort the settlement of remaining tickets; they are surfaced for manual
// reconciliation.
type TicketFailure struct {
	TicketID int64
	UserID   uuid.UUID
	Reason   string
}

// SettlementReport summarizes the settlement of one draw
type SettlementReport struct {
	DrawID           int64
	WinningNumbers   []int32
	JackpotAmount    int64
	TicketsProcessed int
	WinnersPaid      int
	TotalPayout      int64
	Failures         []TicketFailure
}

// LedgerService is the single choke point for balance mutations. Every
// balance change in the system funnels through ApplyBalanceDelta.
type LedgerService interface {
	// ApplyBalanceDelta applies a signed amount to the user's balance and
	// appends exactly one ledger entry in the same unit of work. Debits that
	// would overdraw fail with *entities.InsufficientFundsError and leave
	// state unchanged.
	ApplyBalanceDelta(ctx context.Context, userID uuid.UUID, amountILS int64, txType entities.TransactionType, description string) (*LedgerResult, error)
}

// LotteryService implements ticket purchase and draw settlement logic
type LotteryService interface {
	// NextDrawTime returns the next draw slot (Thursday or Sunday 20:00)
	// strictly after now
	NextDrawTime(now time.Time) time.Time

	// CurrentDraw returns the scheduled draw tickets attach to, lazily
	// creating one when absent
	CurrentDraw(ctx context.Context) (*entities.Draw, error)

	// PurchaseTicket validates the selection, debits the fixed ticket cost
	// through the ledger and creates the ticket against the current draw
	PurchaseTicket(ctx context.Context, userID uuid.UUID, numbers []int32) (*PurchaseResult, error)

	// CompleteDraw validates the winning numbers and transitions the draw
	// from scheduled to completed, returning the draw's tickets. Fails with
	// *entities.DrawNotScheduledError when the draw is not scheduled.
	CompleteDraw(ctx context.Context, drawID int64, winningNumbers []int32) (*entities.Draw, []*entities.Ticket, error)

	// SettleTicket resolves one ticket against a completed draw's result,
	// persists the outcome and pays any prize through the ledger
	SettleTicket(ctx context.Context, draw *entities.Draw, ticket *entities.Ticket) (*TicketSettlement, error)
}

// ApprovalService implements admin decisions on deposits and withdrawals
type ApprovalService interface {
	// DecideDeposit confirms or rejects a pending deposit. Confirmation
	// credits the user's balance through the ledger.
	DecideDeposit(ctx context.Context, depositID int64, decision entities.ApprovalStatus, adminID uuid.UUID, notes string) (*entities.Deposit, error)

	// DecideWithdrawal confirms or rejects a pending withdrawal.
	// Confirmation debits the user's balance through the ledger; an
	// insufficient balance fails the approval and leaves the request pending.
	DecideWithdrawal(ctx context.Context, withdrawalID int64, decision entities.ApprovalStatus, adminID uuid.UUID, notes string) (*entities.Withdrawal, error)
}

// AuthService implements registration and credential verification
type AuthService interface {
	Register(ctx context.Context, email, username, password string) (*entities.User, error)
	Login(ctx context.Context, email, password string) (*entities.User, error)
}
