package application

import (
	"context"

	"lotto/domain/interfaces"
)

// UnitOfWork represents one database transaction. All repositories obtained
// from it share the transaction, so a set of writes either all commit or all
// roll back.
type UnitOfWork interface {
	// Begin starts the transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction. Safe to defer after Begin; it is
	// a no-op once the transaction has committed.
	Rollback() error

	UserRepository() interfaces.UserRepository
	DrawRepository() interfaces.DrawRepository
	TicketRepository() interfaces.TicketRepository
	DepositRepository() interfaces.DepositRepository
	WithdrawalRepository() interfaces.WithdrawalRepository
	LedgerRepository() interfaces.LedgerRepository
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
