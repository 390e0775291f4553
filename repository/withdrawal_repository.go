package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"lotto/database"
	"lotto/domain/entities"
)

// WithdrawalRepository implements crypto withdrawal request data access
type WithdrawalRepository struct {
	q Queryable
}

// NewWithdrawalRepository creates a new withdrawal repository backed by the pool
func NewWithdrawalRepository(db *database.DB) *WithdrawalRepository {
	return &WithdrawalRepository{q: db.Pool}
}

// newWithdrawalRepository creates a withdrawal repository bound to a transaction
func newWithdrawalRepository(tx Queryable) *WithdrawalRepository {
	return &WithdrawalRepository{q: tx}
}

const withdrawalColumns = `id, user_id, crypto_type, crypto_amount::text, ils_amount, exchange_rate::text, wallet_address, status, processed_by, processed_at, notes, created_at`

func scanWithdrawal(row pgx.Row) (*entities.Withdrawal, error) {
	var withdrawal entities.Withdrawal
	var cryptoAmount, exchangeRate string
	err := row.Scan(
		&withdrawal.ID,
		&withdrawal.UserID,
		&withdrawal.CryptoType,
		&cryptoAmount,
		&withdrawal.AmountILS,
		&exchangeRate,
		&withdrawal.WalletAddress,
		&withdrawal.Status,
		&withdrawal.ProcessedBy,
		&withdrawal.ProcessedAt,
		&withdrawal.Notes,
		&withdrawal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if withdrawal.CryptoAmount, err = decimal.NewFromString(cryptoAmount); err != nil {
		return nil, fmt.Errorf("failed to parse crypto amount %q: %w", cryptoAmount, err)
	}
	if withdrawal.ExchangeRate, err = decimal.NewFromString(exchangeRate); err != nil {
		return nil, fmt.Errorf("failed to parse exchange rate %q: %w", exchangeRate, err)
	}

	return &withdrawal, nil
}

// Create inserts a new pending withdrawal
func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal *entities.Withdrawal) error {
	query := `
		INSERT INTO crypto_withdrawals (user_id, crypto_type, crypto_amount, ils_amount, exchange_rate, wallet_address, notes)
		VALUES ($1, $2, $3::numeric, $4, $5::numeric, $6, $7)
		RETURNING id, status, created_at
	`

	err := r.q.QueryRow(ctx, query,
		withdrawal.UserID,
		withdrawal.CryptoType,
		withdrawal.CryptoAmount.String(),
		withdrawal.AmountILS,
		withdrawal.ExchangeRate.String(),
		withdrawal.WalletAddress,
		withdrawal.Notes,
	).Scan(&withdrawal.ID, &withdrawal.Status, &withdrawal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create withdrawal for user %s: %w", withdrawal.UserID, err)
	}

	return nil
}

// GetByID retrieves a withdrawal by ID
func (r *WithdrawalRepository) GetByID(ctx context.Context, id int64) (*entities.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM crypto_withdrawals WHERE id = $1`

	withdrawal, err := scanWithdrawal(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal by ID %d: %w", id, err)
	}

	return withdrawal, nil
}

// ListByUser returns a user's withdrawals, newest first
func (r *WithdrawalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM crypto_withdrawals WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectWithdrawals(rows)
}

// ListByStatus returns withdrawals in a given status, oldest first
func (r *WithdrawalRepository) ListByStatus(ctx context.Context, status entities.ApprovalStatus) ([]*entities.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM crypto_withdrawals WHERE status = $1 ORDER BY created_at ASC`

	rows, err := r.q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals with status %s: %w", status, err)
	}
	defer rows.Close()

	return collectWithdrawals(rows)
}

func collectWithdrawals(rows pgx.Rows) ([]*entities.Withdrawal, error) {
	var withdrawals []*entities.Withdrawal
	for rows.Next() {
		withdrawal, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal: %w", err)
		}
		withdrawals = append(withdrawals, withdrawal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate withdrawals: %w", err)
	}

	return withdrawals, nil
}

// Decide flips a pending withdrawal to a terminal status. The status
// predicate means two concurrent decisions cannot both succeed.
func (r *WithdrawalRepository) Decide(ctx context.Context, id int64, status entities.ApprovalStatus, adminID uuid.UUID, notes string) (bool, error) {
	query := `
		UPDATE crypto_withdrawals
		SET status = $2, processed_by = $3, processed_at = NOW(), notes = $4
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.q.Exec(ctx, query, id, status, adminID, notes)
	if err != nil {
		return false, fmt.Errorf("failed to decide withdrawal %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}
