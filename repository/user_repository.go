package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lotto/database"
	"lotto/domain/entities"
)

// UserRepository implements user and balance data access
type UserRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository backed by the pool
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepository creates a user repository bound to a transaction
func newUserRepository(tx Queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `id, email, username, password_hash, role, balance_ils, created_at, updated_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.BalanceILS,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (email, username, password_hash, role, balance_ils)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.BalanceILS,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.Email, err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}

	return user, nil
}

// GetAll returns all users ordered by creation time
func (r *UserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// ApplyBalanceDelta atomically adds delta to the user's balance. The guard
// lives in the WHERE clause: a debit that would overdraw matches no row and
// the balance is never read separately from the write, so concurrent debits
// serialize on the row instead of racing a read-then-write.
func (r *UserRepository) ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta int64) (int64, int64, error) {
	query := `
		UPDATE users
		SET balance_ils = balance_ils + $2, updated_at = NOW()
		WHERE id = $1 AND balance_ils + $2 >= 0
		RETURNING balance_ils - $2, balance_ils
	`

	var balanceBefore, balanceAfter int64
	err := r.q.QueryRow(ctx, query, id, delta).Scan(&balanceBefore, &balanceAfter)
	if err == pgx.ErrNoRows {
		// Either the user does not exist or the debit would overdraw.
		var available int64
		checkErr := r.q.QueryRow(ctx, `SELECT balance_ils FROM users WHERE id = $1`, id).Scan(&available)
		if checkErr == pgx.ErrNoRows {
			return 0, 0, &entities.NotFoundError{Kind: "user", ID: id.String()}
		}
		if checkErr != nil {
			return 0, 0, fmt.Errorf("failed to check balance for user %s: %w", id, checkErr)
		}
		return 0, 0, &entities.InsufficientFundsError{UserID: id, Available: available, Required: -delta}
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to apply balance delta for user %s: %w", id, err)
	}

	return balanceBefore, balanceAfter, nil
}

// Delete removes a user. Tickets, transfer requests and ledger entries
// cascade at the schema level.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return &entities.NotFoundError{Kind: "user", ID: id.String()}
	}

	return nil
}
