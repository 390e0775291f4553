package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotto/repository/testutil"
)

func TestTicketRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	drawRepo := NewDrawRepository(testDB.DB)
	ticketRepo := NewTicketRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser("alice@example.com", "alice")
	require.NoError(t, userRepo.Create(ctx, user))

	draw, err := drawRepo.Create(ctx, testutil.NextDrawDate(), 2500000)
	require.NoError(t, err)

	numbers := []int32{1, 7, 13, 22, 30, 37}
	ticket := testutil.CreateTestTicket(user.ID, draw.ID, numbers)
	require.NoError(t, ticketRepo.Create(ctx, ticket))
	assert.NotZero(t, ticket.ID)

	fresh, err := ticketRepo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, numbers, fresh.Numbers)
	assert.Equal(t, user.ID, fresh.UserID)
	assert.False(t, fresh.IsSettled())
	assert.Zero(t, fresh.Matches)
	assert.Zero(t, fresh.WinningAmount)

	byDraw, err := ticketRepo.GetByDraw(ctx, draw.ID)
	require.NoError(t, err)
	require.Len(t, byDraw, 1)

	byUser, err := ticketRepo.GetByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
}

func TestTicketRepository_RecordResult(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	drawRepo := NewDrawRepository(testDB.DB)
	ticketRepo := NewTicketRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser("bob@example.com", "bob")
	require.NoError(t, userRepo.Create(ctx, user))

	draw, err := drawRepo.Create(ctx, testutil.NextDrawDate(), 2500000)
	require.NoError(t, err)

	ticket := testutil.CreateTestTicket(user.ID, draw.ID, []int32{1, 2, 3, 4, 5, 6})
	require.NoError(t, ticketRepo.Create(ctx, ticket))

	recorded, err := ticketRepo.RecordResult(ctx, ticket.ID, 4, 5000, true)
	require.NoError(t, err)
	assert.True(t, recorded)

	fresh, err := ticketRepo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(4), fresh.Matches)
	assert.Equal(t, int64(5000), fresh.WinningAmount)
	assert.True(t, fresh.IsWinner)
	assert.True(t, fresh.IsSettled())

	// Settlement happens at most once per ticket.
	recorded, err = ticketRepo.RecordResult(ctx, ticket.ID, 4, 5000, true)
	require.NoError(t, err)
	assert.False(t, recorded)
}
