package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotto/domain/entities"
	"lotto/repository"
)

func TestApp_RegisterAndLogin(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t)
	ctx := context.Background()

	user, err := app.Register(ctx, "alice@example.com", "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleClient, user.Role)
	assert.Zero(t, user.BalanceILS)

	logged, err := app.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = app.Login(ctx, "alice@example.com", "wrong")
	assert.Error(t, err)
}

func TestApp_DepositFlow(t *testing.T) {
	t.Parallel()
	app, testDB := setupTestApp(t)
	ctx := context.Background()

	user := createFundedUser(t, testDB, "user@example.com", 0)
	admin := createFundedUser(t, testDB, "admin@example.com", 0)

	deposit, err := app.RequestDeposit(ctx, user.ID, "BTC",
		decimal.RequireFromString("0.005"), 1200, decimal.RequireFromString("240000"))
	require.NoError(t, err)
	assert.Equal(t, entities.ApprovalStatusPending, deposit.Status)

	// Pending deposits do not touch the balance.
	fresh, err := app.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, fresh.BalanceILS)

	confirmed, err := app.DecideDeposit(ctx, deposit.ID, entities.ApprovalStatusConfirmed, admin.ID, "verified")
	require.NoError(t, err)
	assert.Equal(t, entities.ApprovalStatusConfirmed, confirmed.Status)

	fresh, err = app.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), fresh.BalanceILS)

	history, err := app.GetTransactionHistory(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entities.TransactionTypeDeposit, history[0].Type)
	assert.Equal(t, int64(1200), history[0].AmountILS)

	// A confirmed deposit cannot be decided again, so it cannot double credit.
	_, err = app.DecideDeposit(ctx, deposit.ID, entities.ApprovalStatusConfirmed, admin.ID, "")
	var procErr *entities.AlreadyProcessedError
	require.ErrorAs(t, err, &procErr)

	fresh, err = app.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), fresh.BalanceILS)
}

func TestApp_WithdrawalFlow(t *testing.T) {
	t.Parallel()
	app, testDB := setupTestApp(t)
	ctx := context.Background()

	admin := createFundedUser(t, testDB, "admin@example.com", 0)

	t.Run("confirmed withdrawal debits once", func(t *testing.T) {
		user := createFundedUser(t, testDB, "rich@example.com", 1000)

		withdrawal, err := app.RequestWithdrawal(ctx, user.ID, "ETH",
			decimal.RequireFromString("0.1"), 800, decimal.RequireFromString("12000"), "0xabc")
		require.NoError(t, err)

		confirmed, err := app.DecideWithdrawal(ctx, withdrawal.ID, entities.ApprovalStatusConfirmed, admin.ID, "sent")
		require.NoError(t, err)
		assert.Equal(t, entities.ApprovalStatusConfirmed, confirmed.Status)

		fresh, err := app.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(200), fresh.BalanceILS)
	})

	t.Run("request exceeding balance is rejected up front", func(t *testing.T) {
		user := createFundedUser(t, testDB, "modest@example.com", 100)

		_, err := app.RequestWithdrawal(ctx, user.ID, "ETH",
			decimal.RequireFromString("0.1"), 800, decimal.RequireFromString("12000"), "0xabc")

		var fundsErr *entities.InsufficientFundsError
		require.ErrorAs(t, err, &fundsErr)
	})

	t.Run("funds spent before confirmation leave the request pending", func(t *testing.T) {
		user := createFundedUser(t, testDB, "spender@example.com", 800)

		withdrawal, err := app.RequestWithdrawal(ctx, user.ID, "ETH",
			decimal.RequireFromString("0.1"), 800, decimal.RequireFromString("12000"), "0xabc")
		require.NoError(t, err)

		// Balance drops below the requested amount before the admin decides.
		userRepo := repository.NewUserRepository(testDB.DB)
		_, _, err = userRepo.ApplyBalanceDelta(ctx, user.ID, -500)
		require.NoError(t, err)

		_, err = app.DecideWithdrawal(ctx, withdrawal.ID, entities.ApprovalStatusConfirmed, admin.ID, "")
		var fundsErr *entities.InsufficientFundsError
		require.ErrorAs(t, err, &fundsErr)

		// The failed decision rolled back; the request is still pending and
		// the remaining balance is untouched.
		pending, err := app.ListWithdrawalsByStatus(ctx, entities.ApprovalStatusPending)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, withdrawal.ID, pending[0].ID)

		fresh, err := app.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(300), fresh.BalanceILS)
	})
}

func TestApp_DrawLifecycle(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t)
	ctx := context.Background()

	drawDate := time.Date(2026, 9, 3, 20, 0, 0, 0, time.UTC)
	draw, err := app.CreateDraw(ctx, drawDate, 5000000)
	require.NoError(t, err)
	assert.Equal(t, entities.DrawStatusScheduled, draw.Status)
	assert.Equal(t, int64(5000000), draw.JackpotAmount)
	assert.True(t, draw.DrawDate.Equal(drawDate))

	// Only one scheduled draw can exist at a time.
	_, err = app.CreateDraw(ctx, drawDate.Add(72*time.Hour), 0)
	require.ErrorIs(t, err, entities.ErrScheduledDrawExists)

	cancelled, err := app.CancelDraw(ctx, draw.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.DrawStatusCancelled, cancelled.Status)

	// A cancelled draw cannot be cancelled or settled again.
	_, err = app.CancelDraw(ctx, draw.ID)
	var notScheduled *entities.DrawNotScheduledError
	require.ErrorAs(t, err, &notScheduled)

	_, err = app.SettleDraw(ctx, draw.ID, []int32{1, 2, 3, 4, 5, 6})
	require.ErrorAs(t, err, &notScheduled)

	// With the slot free again, the next draw can be created with defaults.
	replacement, err := app.CreateDraw(ctx, time.Time{}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2500000), replacement.JackpotAmount)
	assert.True(t, replacement.DrawDate.After(time.Now()))
}

func TestApp_DeleteUserCascades(t *testing.T) {
	t.Parallel()
	app, testDB := setupTestApp(t)
	ctx := context.Background()

	user := createFundedUser(t, testDB, "leaving@example.com", 1000)

	_, err := app.PurchaseTicket(ctx, user.ID, []int32{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	_, err = app.RequestDeposit(ctx, user.ID, "BTC",
		decimal.RequireFromString("0.001"), 200, decimal.RequireFromString("240000"))
	require.NoError(t, err)

	require.NoError(t, app.DeleteUser(ctx, user.ID))

	_, err = app.GetUser(ctx, user.ID)
	var notFound *entities.NotFoundError
	require.ErrorAs(t, err, &notFound)

	tickets, err := app.GetUserTickets(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, tickets)

	deposits, err := app.ListUserDeposits(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, deposits)
}
