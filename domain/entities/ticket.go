package entities

import (
	"time"

	"github.com/google/uuid"
)

// TicketCostILS is the fixed price of a single lottery ticket
const TicketCostILS int64 = 50

// Prize amounts for partial matches. Six matches pay the draw's jackpot.
const (
	PrizeFiveMatches  int64 = 50000
	PrizeFourMatches  int64 = 5000
	PrizeThreeMatches int64 = 500
)

// Ticket represents a user's wager of six chosen numbers against one draw
type Ticket struct {
	ID            int64     `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	DrawID        int64     `db:"draw_id"`
	Numbers       []int32   `db:"numbers"`
	CostILS       int64     `db:"cost_ils"`
	Matches       int32     `db:"matches"`        // 0 until the draw is settled
	WinningAmount int64     `db:"winning_amount"` // 0 until the draw is settled
	IsWinner      bool      `db:"is_winner"`
	SettledAt     *time.Time `db:"settled_at"` // nil until the draw is settled
	CreatedAt     time.Time  `db:"created_at"`
}

// IsSettled returns true if the ticket has been resolved against a draw result
func (t *Ticket) IsSettled() bool {
	return t.SettledAt != nil
}

// CountMatches returns the size of the intersection between the ticket's
// numbers and the winning numbers
func (t *Ticket) CountMatches(winningNumbers []int32) int32 {
	winning := make(map[int32]bool, len(winningNumbers))
	for _, n := range winningNumbers {
		winning[n] = true
	}

	var matches int32
	for _, n := range t.Numbers {
		if winning[n] {
			matches++
		}
	}
	return matches
}

// PrizeForMatches resolves the prize tier for a match count. The prize table
// is a pure function of the match count, so settlement is deterministic and
// order independent across tickets.
func PrizeForMatches(matches int32, jackpotAmount int64) int64 {
	switch matches {
	case 6:
		return jackpotAmount
	case 5:
		return PrizeFiveMatches
	case 4:
		return PrizeFourMatches
	case 3:
		return PrizeThreeMatches
	default:
		return 0
	}
}
