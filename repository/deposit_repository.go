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

// DepositRepository implements crypto deposit request data access
type DepositRepository struct {
	q Queryable
}

// NewDepositRepository creates a new deposit repository backed by the pool
func NewDepositRepository(db *database.DB) *DepositRepository {
	return &DepositRepository{q: db.Pool}
}

// newDepositRepository creates a deposit repository bound to a transaction
func newDepositRepository(tx Queryable) *DepositRepository {
	return &DepositRepository{q: tx}
}

// Numeric columns come back as text and are parsed into decimals, which
// keeps crypto amounts exact instead of routing them through float64.
const depositColumns = `id, user_id, crypto_type, crypto_amount::text, ils_amount, exchange_rate::text, status, validated_by, validated_at, notes, created_at`

func scanDeposit(row pgx.Row) (*entities.Deposit, error) {
	var deposit entities.Deposit
	var cryptoAmount, exchangeRate string
	err := row.Scan(
		&deposit.ID,
		&deposit.UserID,
		&deposit.CryptoType,
		&cryptoAmount,
		&deposit.AmountILS,
		&exchangeRate,
		&deposit.Status,
		&deposit.ValidatedBy,
		&deposit.ValidatedAt,
		&deposit.Notes,
		&deposit.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if deposit.CryptoAmount, err = decimal.NewFromString(cryptoAmount); err != nil {
		return nil, fmt.Errorf("failed to parse crypto amount %q: %w", cryptoAmount, err)
	}
	if deposit.ExchangeRate, err = decimal.NewFromString(exchangeRate); err != nil {
		return nil, fmt.Errorf("failed to parse exchange rate %q: %w", exchangeRate, err)
	}

	return &deposit, nil
}

// Create inserts a new pending deposit
func (r *DepositRepository) Create(ctx context.Context, deposit *entities.Deposit) error {
	query := `
		INSERT INTO crypto_deposits (user_id, crypto_type, crypto_amount, ils_amount, exchange_rate, notes)
		VALUES ($1, $2, $3::numeric, $4, $5::numeric, $6)
		RETURNING id, status, created_at
	`

	err := r.q.QueryRow(ctx, query,
		deposit.UserID,
		deposit.CryptoType,
		deposit.CryptoAmount.String(),
		deposit.AmountILS,
		deposit.ExchangeRate.String(),
		deposit.Notes,
	).Scan(&deposit.ID, &deposit.Status, &deposit.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create deposit for user %s: %w", deposit.UserID, err)
	}

	return nil
}

// GetByID retrieves a deposit by ID
func (r *DepositRepository) GetByID(ctx context.Context, id int64) (*entities.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM crypto_deposits WHERE id = $1`

	deposit, err := scanDeposit(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit by ID %d: %w", id, err)
	}

	return deposit, nil
}

// ListByUser returns a user's deposits, newest first
func (r *DepositRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM crypto_deposits WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectDeposits(rows)
}

// ListByStatus returns deposits in a given status, oldest first
func (r *DepositRepository) ListByStatus(ctx context.Context, status entities.ApprovalStatus) ([]*entities.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM crypto_deposits WHERE status = $1 ORDER BY created_at ASC`

	rows, err := r.q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits with status %s: %w", status, err)
	}
	defer rows.Close()

	return collectDeposits(rows)
}

func collectDeposits(rows pgx.Rows) ([]*entities.Deposit, error) {
	var deposits []*entities.Deposit
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deposit: %w", err)
		}
		deposits = append(deposits, deposit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deposits: %w", err)
	}

	return deposits, nil
}

// Decide flips a pending deposit to a terminal status. The status predicate
// means two concurrent decisions cannot both succeed.
func (r *DepositRepository) Decide(ctx context.Context, id int64, status entities.ApprovalStatus, adminID uuid.UUID, notes string) (bool, error) {
	query := `
		UPDATE crypto_deposits
		SET status = $2, validated_by = $3, validated_at = NOW(), notes = $4
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.q.Exec(ctx, query, id, status, adminID, notes)
	if err != nil {
		return false, fmt.Errorf("failed to decide deposit %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}
