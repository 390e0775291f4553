package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotto/application"
	"lotto/domain/entities"
	"lotto/infrastructure"
	"lotto/repository"
	"lotto/repository/testutil"
)

func setupTestApp(t *testing.T) (*application.App, *testutil.TestDatabase) {
	testDB := testutil.SetupTestDatabase(t)
	factory := repository.NewUnitOfWorkFactory(testDB.DB)
	app := application.NewApp(factory, infrastructure.NewNoopEventPublisher(), 2500000, time.UTC)
	return app, testDB
}

func createFundedUser(t *testing.T, testDB *testutil.TestDatabase, email string, balance int64) *entities.User {
	t.Helper()
	userRepo := repository.NewUserRepository(testDB.DB)
	user := testutil.CreateTestUserWithBalance(email, email[:4], balance)
	require.NoError(t, userRepo.Create(context.Background(), user))
	return user
}

func TestApp_SettleDraw(t *testing.T) {
	t.Parallel()
	app, testDB := setupTestApp(t)
	ctx := context.Background()

	jackpotUser := createFundedUser(t, testDB, "winner@example.com", 1000)
	smallUser := createFundedUser(t, testDB, "small@example.com", 1000)
	loserUser := createFundedUser(t, testDB, "loser@example.com", 1000)

	winning := []int32{1, 2, 3, 4, 5, 6}

	jackpotPurchase, err := app.PurchaseTicket(ctx, jackpotUser.ID, []int32{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, int64(950), jackpotPurchase.NewBalance)

	_, err = app.PurchaseTicket(ctx, smallUser.ID, []int32{1, 2, 3, 10, 11, 12})
	require.NoError(t, err)

	_, err = app.PurchaseTicket(ctx, loserUser.ID, []int32{30, 31, 32, 33, 34, 35})
	require.NoError(t, err)

	drawID := jackpotPurchase.Draw.ID

	report, err := app.SettleDraw(ctx, drawID, winning)
	require.NoError(t, err)
	assert.Equal(t, drawID, report.DrawID)
	assert.Equal(t, 3, report.TicketsProcessed)
	assert.Equal(t, 2, report.WinnersPaid)
	assert.Equal(t, int64(2500000+500), report.TotalPayout)
	assert.Empty(t, report.Failures)

	userRepo := repository.NewUserRepository(testDB.DB)
	ledgerRepo := repository.NewLedgerRepository(testDB.DB)

	// Balances reflect the purchase debit plus the prize for the tier.
	for _, tc := range []struct {
		user *entities.User
		want int64
	}{
		{jackpotUser, 1000 - 50 + 2500000},
		{smallUser, 1000 - 50 + 500},
		{loserUser, 1000 - 50},
	} {
		fresh, err := userRepo.GetByID(ctx, tc.user.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.want, fresh.BalanceILS, "user %s", tc.user.Email)

		// Starting balance was seeded outside the ledger; the entry sum
		// covers only the mutations made through it.
		sum, err := ledgerRepo.SumByUser(ctx, tc.user.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.want-1000, sum, "user %s", tc.user.Email)
	}

	// Tickets carry their settlement outcome.
	ticketRepo := repository.NewTicketRepository(testDB.DB)
	tickets, err := ticketRepo.GetByDraw(ctx, drawID)
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	for _, ticket := range tickets {
		assert.True(t, ticket.IsSettled())
	}

	// A settled draw cannot be settled again.
	_, err = app.SettleDraw(ctx, drawID, winning)
	var stateErr *entities.DrawNotScheduledError
	require.ErrorAs(t, err, &stateErr)
}

func TestApp_SettleDraw_NoTickets(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t)
	ctx := context.Background()

	draw, err := app.CurrentDraw(ctx)
	require.NoError(t, err)

	report, err := app.SettleDraw(ctx, draw.ID, []int32{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Zero(t, report.TicketsProcessed)
	assert.Zero(t, report.WinnersPaid)
	assert.Zero(t, report.TotalPayout)
}

func TestApp_PurchaseTicket_InsufficientFunds(t *testing.T) {
	t.Parallel()
	app, testDB := setupTestApp(t)
	ctx := context.Background()

	user := createFundedUser(t, testDB, "poor@example.com", 30)

	_, err := app.PurchaseTicket(ctx, user.ID, []int32{1, 2, 3, 4, 5, 6})

	var fundsErr *entities.InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)

	// The failed purchase must leave no ticket behind.
	tickets, err := app.GetUserTickets(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, tickets)

	fresh, err := app.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), fresh.BalanceILS)
}

func TestApp_SettleDueDraws(t *testing.T) {
	t.Parallel()
	app, testDB := setupTestApp(t)
	ctx := context.Background()

	user := createFundedUser(t, testDB, "due@example.com", 1000)

	// A draw whose date has already passed.
	drawRepo := repository.NewDrawRepository(testDB.DB)
	draw, err := drawRepo.Create(ctx, time.Now().UTC().Add(-time.Hour), 2500000)
	require.NoError(t, err)

	ticketRepo := repository.NewTicketRepository(testDB.DB)
	ticket := testutil.CreateTestTicket(user.ID, draw.ID, []int32{1, 2, 3, 4, 5, 6})
	require.NoError(t, ticketRepo.Create(ctx, ticket))

	reports, err := app.SettleDueDraws(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, draw.ID, reports[0].DrawID)
	assert.Equal(t, 1, reports[0].TicketsProcessed)
	reason, ok := entities.ValidateSelection(reports[0].WinningNumbers)
	assert.True(t, ok, "generated winning numbers invalid: %s", reason)

	// Nothing left to settle.
	reports, err = app.SettleDueDraws(ctx)
	require.NoError(t, err)
	assert.Empty(t, reports)
}
