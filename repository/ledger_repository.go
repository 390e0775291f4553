package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"lotto/database"
	"lotto/domain/entities"
)

// LedgerRepository implements append-only access to the transactions table
type LedgerRepository struct {
	q Queryable
}

// NewLedgerRepository creates a new ledger repository backed by the pool
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{q: db.Pool}
}

// newLedgerRepository creates a ledger repository bound to a transaction
func newLedgerRepository(tx Queryable) *LedgerRepository {
	return &LedgerRepository{q: tx}
}

// Record appends one ledger entry. Entries are never updated or deleted;
// the table-level checks reject inconsistent before/after balances.
func (r *LedgerRepository) Record(ctx context.Context, entry *entities.LedgerEntry) error {
	query := `
		INSERT INTO transactions (user_id, transaction_type, amount_ils, balance_before, balance_after, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.UserID,
		entry.Type,
		entry.AmountILS,
		entry.BalanceBefore,
		entry.BalanceAfter,
		entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record ledger entry for user %s: %w", entry.UserID, err)
	}

	return nil
}

// ListByUser returns a user's ledger entries, newest first
func (r *LedgerRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.LedgerEntry, error) {
	query := `
		SELECT id, user_id, transaction_type, amount_ils, balance_before, balance_after, description, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for user %s: %w", userID, err)
	}
	defer rows.Close()

	var entries []*entities.LedgerEntry
	for rows.Next() {
		var entry entities.LedgerEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Type,
			&entry.AmountILS,
			&entry.BalanceBefore,
			&entry.BalanceAfter,
			&entry.Description,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	return entries, nil
}

// SumByUser returns the signed sum of a user's entries. For a consistent
// ledger this equals the user's stored balance.
func (r *LedgerRepository) SumByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(SUM(amount_ils), 0) FROM transactions WHERE user_id = $1`

	var sum int64
	if err := r.q.QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum ledger entries for user %s: %w", userID, err)
	}

	return sum, nil
}
