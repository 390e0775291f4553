package entities

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// DrawStatus represents the lifecycle state of a lottery draw
type DrawStatus string

const (
	DrawStatusScheduled DrawStatus = "scheduled"
	DrawStatusActive    DrawStatus = "active"
	DrawStatusCompleted DrawStatus = "completed"
	DrawStatusCancelled DrawStatus = "cancelled"
)

const (
	// MinNumber and MaxNumber bound the selectable lottery numbers
	MinNumber int32 = 1
	MaxNumber int32 = 37

	// SelectionSize is the number of distinct numbers per ticket and per draw result
	SelectionSize = 6
)

// Draw represents a single lottery draw event
type Draw struct {
	ID             int64      `db:"id"`
	DrawDate       time.Time  `db:"draw_date"`
	JackpotAmount  int64      `db:"jackpot_amount"`
	WinningNumbers []int32    `db:"winning_numbers"` // nil until the draw is settled
	Status         DrawStatus `db:"status"`
	CompletedAt    *time.Time `db:"completed_at"` // nil until the draw is settled
	CreatedAt      time.Time  `db:"created_at"`
}

// IsScheduled returns true if the draw can still accept tickets and be settled
func (d *Draw) IsScheduled() bool {
	return d.Status == DrawStatusScheduled
}

// IsCompleted returns true if the draw has been settled
func (d *Draw) IsCompleted() bool {
	return d.Status == DrawStatusCompleted
}

// Complete marks the draw as settled with the given winning numbers
func (d *Draw) Complete(winningNumbers []int32) {
	d.WinningNumbers = winningNumbers
	d.Status = DrawStatusCompleted
	now := time.Now()
	d.CompletedAt = &now
}

// GenerateWinningNumbers draws six distinct cryptographically random numbers
// in [MinNumber, MaxNumber]
func (d *Draw) GenerateWinningNumbers() ([]int32, error) {
	drawn := make(map[int32]bool, SelectionSize)
	numbers := make([]int32, 0, SelectionSize)
	span := big.NewInt(int64(MaxNumber - MinNumber + 1))

	for len(numbers) < SelectionSize {
		n, err := rand.Int(rand.Reader, span)
		if err != nil {
			return nil, fmt.Errorf("failed to generate winning number: %w", err)
		}
		num := int32(n.Int64()) + MinNumber
		if !drawn[num] {
			drawn[num] = true
			numbers = append(numbers, num)
		}
	}

	return numbers, nil
}

// ValidateSelection checks that numbers form a valid selection: exactly six
// distinct values, each in [MinNumber, MaxNumber]. The returned reason is
// empty when the selection is valid.
func ValidateSelection(numbers []int32) (reason string, ok bool) {
	if len(numbers) != SelectionSize {
		return fmt.Sprintf("expected %d numbers, got %d", SelectionSize, len(numbers)), false
	}

	seen := make(map[int32]bool, SelectionSize)
	for _, n := range numbers {
		if n < MinNumber || n > MaxNumber {
			return fmt.Sprintf("number %d out of range [%d,%d]", n, MinNumber, MaxNumber), false
		}
		if seen[n] {
			return fmt.Sprintf("duplicate number %d", n), false
		}
		seen[n] = true
	}

	return "", true
}
