package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"lotto/database"
	"lotto/domain/entities"
)

// DrawRepository implements lottery draw data access
type DrawRepository struct {
	q Queryable
}

// NewDrawRepository creates a new draw repository backed by the pool
func NewDrawRepository(db *database.DB) *DrawRepository {
	return &DrawRepository{q: db.Pool}
}

// newDrawRepository creates a draw repository bound to a transaction
func newDrawRepository(tx Queryable) *DrawRepository {
	return &DrawRepository{q: tx}
}

const drawColumns = `id, draw_date, jackpot_amount, winning_numbers, status, completed_at, created_at`

func scanDraw(row pgx.Row) (*entities.Draw, error) {
	var draw entities.Draw
	err := row.Scan(
		&draw.ID,
		&draw.DrawDate,
		&draw.JackpotAmount,
		&draw.WinningNumbers,
		&draw.Status,
		&draw.CompletedAt,
		&draw.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &draw, nil
}

// Create inserts a new scheduled draw
func (r *DrawRepository) Create(ctx context.Context, drawDate time.Time, jackpotAmount int64) (*entities.Draw, error) {
	query := `
		INSERT INTO draws (draw_date, jackpot_amount, status)
		VALUES ($1, $2, 'scheduled')
		RETURNING ` + drawColumns

	draw, err := scanDraw(r.q.QueryRow(ctx, query, drawDate, jackpotAmount))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, entities.ErrScheduledDrawExists
		}
		return nil, fmt.Errorf("failed to create draw: %w", err)
	}

	return draw, nil
}

// GetOrCreateScheduledDraw returns the scheduled draw, creating one for the
// given date when none exists. A partial unique index allows at most one
// scheduled draw, so concurrent callers converge on the same row.
func (r *DrawRepository) GetOrCreateScheduledDraw(ctx context.Context, drawDate time.Time, jackpotAmount int64) (*entities.Draw, error) {
	insert := `
		INSERT INTO draws (draw_date, jackpot_amount, status)
		VALUES ($1, $2, 'scheduled')
		ON CONFLICT (status) WHERE status = 'scheduled' DO NOTHING
		RETURNING ` + drawColumns

	draw, err := scanDraw(r.q.QueryRow(ctx, insert, drawDate, jackpotAmount))
	if err == nil {
		return draw, nil
	}
	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to create scheduled draw: %w", err)
	}

	// Insert lost to an existing scheduled draw; fetch it.
	selectQuery := `SELECT ` + drawColumns + ` FROM draws WHERE status = 'scheduled'`
	draw, err = scanDraw(r.q.QueryRow(ctx, selectQuery))
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled draw: %w", err)
	}

	return draw, nil
}

// GetByID retrieves a draw by ID
func (r *DrawRepository) GetByID(ctx context.Context, id int64) (*entities.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws WHERE id = $1`

	draw, err := scanDraw(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draw by ID %d: %w", id, err)
	}

	return draw, nil
}

// GetByIDForUpdate retrieves a draw by ID with a row lock
func (r *DrawRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws WHERE id = $1 FOR UPDATE`

	draw, err := scanDraw(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draw for update by ID %d: %w", id, err)
	}

	return draw, nil
}

// CompleteDraw transitions a draw from scheduled to completed. The status
// predicate makes the transition happen at most once.
func (r *DrawRepository) CompleteDraw(ctx context.Context, id int64, winningNumbers []int32) (bool, error) {
	query := `
		UPDATE draws
		SET winning_numbers = $2, status = 'completed', completed_at = NOW()
		WHERE id = $1 AND status = 'scheduled'
	`

	result, err := r.q.Exec(ctx, query, id, winningNumbers)
	if err != nil {
		return false, fmt.Errorf("failed to complete draw %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

// Cancel transitions a scheduled draw to cancelled
func (r *DrawRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE draws SET status = 'cancelled' WHERE id = $1 AND status = 'scheduled'`

	result, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to cancel draw %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

// ListDueScheduled returns scheduled draws whose draw date has passed
func (r *DrawRepository) ListDueScheduled(ctx context.Context, asOf time.Time) ([]*entities.Draw, error) {
	query := `
		SELECT ` + drawColumns + `
		FROM draws
		WHERE status = 'scheduled' AND draw_date <= $1
		ORDER BY draw_date ASC
	`

	rows, err := r.q.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list due draws: %w", err)
	}
	defer rows.Close()

	var draws []*entities.Draw
	for rows.Next() {
		draw, err := scanDraw(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		draws = append(draws, draw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draws: %w", err)
	}

	return draws, nil
}

// GetAll returns all draws, newest first
func (r *DrawRepository) GetAll(ctx context.Context) ([]*entities.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws ORDER BY draw_date DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all draws: %w", err)
	}
	defer rows.Close()

	var draws []*entities.Draw
	for rows.Next() {
		draw, err := scanDraw(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		draws = append(draws, draw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draws: %w", err)
	}

	return draws, nil
}
