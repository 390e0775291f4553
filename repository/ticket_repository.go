package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lotto/database"
	"lotto/domain/entities"
)

// TicketRepository implements lottery ticket data access
type TicketRepository struct {
	q Queryable
}

// NewTicketRepository creates a new ticket repository backed by the pool
func NewTicketRepository(db *database.DB) *TicketRepository {
	return &TicketRepository{q: db.Pool}
}

// newTicketRepository creates a ticket repository bound to a transaction
func newTicketRepository(tx Queryable) *TicketRepository {
	return &TicketRepository{q: tx}
}

const ticketColumns = `id, user_id, draw_id, numbers, cost_ils, matches, winning_amount, is_winner, settled_at, created_at`

func scanTicket(row pgx.Row) (*entities.Ticket, error) {
	var ticket entities.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.DrawID,
		&ticket.Numbers,
		&ticket.CostILS,
		&ticket.Matches,
		&ticket.WinningAmount,
		&ticket.IsWinner,
		&ticket.SettledAt,
		&ticket.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Create inserts a new ticket
func (r *TicketRepository) Create(ctx context.Context, ticket *entities.Ticket) error {
	query := `
		INSERT INTO tickets (user_id, draw_id, numbers, cost_ils)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		ticket.UserID,
		ticket.DrawID,
		ticket.Numbers,
		ticket.CostILS,
	).Scan(&ticket.ID, &ticket.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create ticket for user %s: %w", ticket.UserID, err)
	}

	return nil
}

// GetByID retrieves a ticket by ID
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*entities.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket by ID %d: %w", id, err)
	}

	return ticket, nil
}

// GetByDraw returns all tickets belonging to a draw
func (r *TicketRepository) GetByDraw(ctx context.Context, drawID int64) ([]*entities.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE draw_id = $1 ORDER BY id ASC`

	rows, err := r.q.Query(ctx, query, drawID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets for draw %d: %w", drawID, err)
	}
	defer rows.Close()

	var tickets []*entities.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, nil
}

// GetByUser returns a user's tickets, newest first
func (r *TicketRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets for user %s: %w", userID, err)
	}
	defer rows.Close()

	var tickets []*entities.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, nil
}

// RecordResult persists the settlement outcome on a ticket. The settled_at
// predicate makes settlement happen at most once per ticket.
func (r *TicketRepository) RecordResult(ctx context.Context, ticketID int64, matches int32, winningAmount int64, isWinner bool) (bool, error) {
	query := `
		UPDATE tickets
		SET matches = $2, winning_amount = $3, is_winner = $4, settled_at = NOW()
		WHERE id = $1 AND settled_at IS NULL
	`

	result, err := r.q.Exec(ctx, query, ticketID, matches, winningAmount, isWinner)
	if err != nil {
		return false, fmt.Errorf("failed to record result for ticket %d: %w", ticketID, err)
	}

	return result.RowsAffected() > 0, nil
}
