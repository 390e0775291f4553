package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraw_Complete(t *testing.T) {
	t.Parallel()

	draw := &Draw{
		ID:       1,
		DrawDate: time.Now(),
		Status:   DrawStatusScheduled,
	}
	assert.True(t, draw.IsScheduled())
	assert.False(t, draw.IsCompleted())

	winning := []int32{3, 9, 14, 21, 28, 35}
	draw.Complete(winning)

	assert.True(t, draw.IsCompleted())
	assert.False(t, draw.IsScheduled())
	assert.Equal(t, winning, draw.WinningNumbers)
	require.NotNil(t, draw.CompletedAt)
}

func TestDraw_GenerateWinningNumbers(t *testing.T) {
	t.Parallel()

	draw := &Draw{ID: 1}

	for i := 0; i < 50; i++ {
		numbers, err := draw.GenerateWinningNumbers()
		require.NoError(t, err)

		reason, ok := ValidateSelection(numbers)
		assert.True(t, ok, "generated selection invalid: %s", reason)
	}
}
