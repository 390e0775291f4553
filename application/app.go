package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
	"lotto/domain/services"
)

// App wires domain services over units of work. Each operation runs inside
// one transaction: the repositories handed to the services are bound to that
// transaction, so an operation's writes commit or roll back together.
type App struct {
	uowFactory     UnitOfWorkFactory
	publisher      interfaces.EventPublisher
	defaultJackpot int64
	location       *time.Location
}

// NewApp creates the application facade
func NewApp(uowFactory UnitOfWorkFactory, publisher interfaces.EventPublisher, defaultJackpot int64, location *time.Location) *App {
	if location == nil {
		location = time.UTC
	}
	return &App{
		uowFactory:     uowFactory,
		publisher:      publisher,
		defaultJackpot: defaultJackpot,
		location:       location,
	}
}

func (a *App) ledgerService(uow UnitOfWork) interfaces.LedgerService {
	return services.NewLedgerService(uow.UserRepository(), uow.LedgerRepository(), a.publisher)
}

func (a *App) lotteryService(uow UnitOfWork) interfaces.LotteryService {
	return services.NewLotteryService(uow.DrawRepository(), uow.TicketRepository(), a.ledgerService(uow), a.defaultJackpot, a.location)
}

func (a *App) approvalService(uow UnitOfWork) interfaces.ApprovalService {
	return services.NewApprovalService(uow.DepositRepository(), uow.WithdrawalRepository(), a.ledgerService(uow))
}

// Register creates a new client account
func (a *App) Register(ctx context.Context, email, username, password string) (*entities.User, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := services.NewAuthService(uow.UserRepository(), a.publisher).Register(ctx, email, username, password)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return user, nil
}

// Login verifies credentials and returns the user
func (a *App) Login(ctx context.Context, email, password string) (*entities.User, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return services.NewAuthService(uow.UserRepository(), a.publisher).Login(ctx, email, password)
}

// GetUser returns a user by ID
func (a *App) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &entities.NotFoundError{Kind: "user", ID: id.String()}
	}
	return user, nil
}

// ListUsers returns all users
func (a *App) ListUsers(ctx context.Context) ([]*entities.User, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.UserRepository().GetAll(ctx)
}

// DeleteUser removes a user; their tickets, transfer requests and ledger
// entries cascade
func (a *App) DeleteUser(ctx context.Context, id uuid.UUID) error {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// PurchaseTicket buys a lottery ticket for a user. The debit, ledger entry
// and ticket land in the same transaction.
func (a *App) PurchaseTicket(ctx context.Context, userID uuid.UUID, numbers []int32) (*interfaces.PurchaseResult, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	result, err := a.lotteryService(uow).PurchaseTicket(ctx, userID, numbers)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

// CurrentDraw returns the scheduled draw new tickets attach to
func (a *App) CurrentDraw(ctx context.Context) (*entities.Draw, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	draw, err := a.lotteryService(uow).CurrentDraw(ctx)
	if err != nil {
		return nil, err
	}

	// The draw may have been created lazily.
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return draw, nil
}

// CreateDraw schedules a draw with a custom date and jackpot. A zero date
// falls back to the next draw slot, a non-positive jackpot to the default.
// Fails with ErrScheduledDrawExists while another draw is still scheduled.
func (a *App) CreateDraw(ctx context.Context, drawDate time.Time, jackpotAmount int64) (*entities.Draw, error) {
	if drawDate.IsZero() {
		drawDate = a.NextDrawTime(time.Now())
	}
	if jackpotAmount <= 0 {
		jackpotAmount = a.defaultJackpot
	}

	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	draw, err := uow.DrawRepository().Create(ctx, drawDate, jackpotAmount)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return draw, nil
}

// CancelDraw transitions a scheduled draw to cancelled. Its tickets are left
// unsettled; no payouts occur.
func (a *App) CancelDraw(ctx context.Context, drawID int64) (*entities.Draw, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	cancelled, err := uow.DrawRepository().Cancel(ctx, drawID)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		draw, err := uow.DrawRepository().GetByID(ctx, drawID)
		if err != nil {
			return nil, err
		}
		if draw == nil {
			return nil, &entities.NotFoundError{Kind: "draw", ID: fmt.Sprintf("%d", drawID)}
		}
		return nil, &entities.DrawNotScheduledError{DrawID: drawID, Status: draw.Status}
	}

	draw, err := uow.DrawRepository().GetByID(ctx, drawID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return draw, nil
}

// ListDraws returns all draws, newest first
func (a *App) ListDraws(ctx context.Context) ([]*entities.Draw, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.DrawRepository().GetAll(ctx)
}

// GetUserTickets returns a user's tickets, newest first
func (a *App) GetUserTickets(ctx context.Context, userID uuid.UUID) ([]*entities.Ticket, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.TicketRepository().GetByUser(ctx, userID)
}

// GetTransactionHistory returns a user's ledger entries, newest first
func (a *App) GetTransactionHistory(ctx context.Context, userID uuid.UUID) ([]*entities.LedgerEntry, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.LedgerRepository().ListByUser(ctx, userID)
}

// RequestDeposit files a pending crypto deposit for admin validation. The
// balance is only credited once an admin confirms.
func (a *App) RequestDeposit(ctx context.Context, userID uuid.UUID, cryptoType string, cryptoAmount decimal.Decimal, amountILS int64, exchangeRate decimal.Decimal) (*entities.Deposit, error) {
	if amountILS <= 0 {
		return nil, fmt.Errorf("deposit amount must be positive, got %d", amountILS)
	}
	if cryptoAmount.IsZero() || cryptoAmount.IsNegative() {
		return nil, fmt.Errorf("crypto amount must be positive, got %s", cryptoAmount)
	}

	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	deposit := &entities.Deposit{
		UserID:       userID,
		CryptoType:   cryptoType,
		CryptoAmount: cryptoAmount,
		AmountILS:    amountILS,
		ExchangeRate: exchangeRate,
		Status:       entities.ApprovalStatusPending,
	}
	if err := uow.DepositRepository().Create(ctx, deposit); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return deposit, nil
}

// RequestWithdrawal files a pending crypto withdrawal. The balance check here
// is advisory; the binding debit happens when an admin confirms, so a request
// can still fail at confirmation time if funds were spent in between.
func (a *App) RequestWithdrawal(ctx context.Context, userID uuid.UUID, cryptoType string, cryptoAmount decimal.Decimal, amountILS int64, exchangeRate decimal.Decimal, walletAddress string) (*entities.Withdrawal, error) {
	if amountILS <= 0 {
		return nil, fmt.Errorf("withdrawal amount must be positive, got %d", amountILS)
	}
	if walletAddress == "" {
		return nil, fmt.Errorf("wallet address is required")
	}

	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &entities.NotFoundError{Kind: "user", ID: userID.String()}
	}
	if !user.CanAfford(amountILS) {
		return nil, &entities.InsufficientFundsError{UserID: userID, Available: user.BalanceILS, Required: amountILS}
	}

	withdrawal := &entities.Withdrawal{
		UserID:        userID,
		CryptoType:    cryptoType,
		CryptoAmount:  cryptoAmount,
		AmountILS:     amountILS,
		ExchangeRate:  exchangeRate,
		WalletAddress: walletAddress,
		Status:        entities.ApprovalStatusPending,
	}
	if err := uow.WithdrawalRepository().Create(ctx, withdrawal); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return withdrawal, nil
}

// DecideDeposit confirms or rejects a pending deposit
func (a *App) DecideDeposit(ctx context.Context, depositID int64, decision entities.ApprovalStatus, adminID uuid.UUID, notes string) (*entities.Deposit, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	deposit, err := a.approvalService(uow).DecideDeposit(ctx, depositID, decision, adminID, notes)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return deposit, nil
}

// DecideWithdrawal confirms or rejects a pending withdrawal. An insufficient
// balance rolls the whole decision back, leaving the request pending.
func (a *App) DecideWithdrawal(ctx context.Context, withdrawalID int64, decision entities.ApprovalStatus, adminID uuid.UUID, notes string) (*entities.Withdrawal, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	withdrawal, err := a.approvalService(uow).DecideWithdrawal(ctx, withdrawalID, decision, adminID, notes)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return withdrawal, nil
}

// ListUserDeposits returns a user's deposits, newest first
func (a *App) ListUserDeposits(ctx context.Context, userID uuid.UUID) ([]*entities.Deposit, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.DepositRepository().ListByUser(ctx, userID)
}

// ListUserWithdrawals returns a user's withdrawals, newest first
func (a *App) ListUserWithdrawals(ctx context.Context, userID uuid.UUID) ([]*entities.Withdrawal, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.WithdrawalRepository().ListByUser(ctx, userID)
}

// ListDepositsByStatus returns deposits in a given status, oldest first
func (a *App) ListDepositsByStatus(ctx context.Context, status entities.ApprovalStatus) ([]*entities.Deposit, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.DepositRepository().ListByStatus(ctx, status)
}

// ListWithdrawalsByStatus returns withdrawals in a given status, oldest first
func (a *App) ListWithdrawalsByStatus(ctx context.Context, status entities.ApprovalStatus) ([]*entities.Withdrawal, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.WithdrawalRepository().ListByStatus(ctx, status)
}

// NextDrawTime returns the next draw slot after now
func (a *App) NextDrawTime(now time.Time) time.Time {
	// The schedule is pure computation; no transaction needed.
	return services.NewLotteryService(nil, nil, nil, a.defaultJackpot, a.location).NextDrawTime(now)
}
