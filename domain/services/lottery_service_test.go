package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
	"lotto/domain/testhelpers"
)

const testJackpot = int64(2500000)

func setupLotteryServiceMocks() (*testhelpers.MockDrawRepository, *testhelpers.MockTicketRepository, *testhelpers.MockLedgerService) {
	return new(testhelpers.MockDrawRepository), new(testhelpers.MockTicketRepository), new(testhelpers.MockLedgerService)
}

func newTestLotteryService(drawRepo *testhelpers.MockDrawRepository, ticketRepo *testhelpers.MockTicketRepository, ledger *testhelpers.MockLedgerService) interfaces.LotteryService {
	return NewLotteryService(drawRepo, ticketRepo, ledger, testJackpot, time.UTC)
}

func createScheduledDraw(id int64) *entities.Draw {
	return &entities.Draw{
		ID:            id,
		DrawDate:      time.Now().Add(24 * time.Hour),
		JackpotAmount: testJackpot,
		Status:        entities.DrawStatusScheduled,
		CreatedAt:     time.Now(),
	}
}

func TestLotteryService_NextDrawTime(t *testing.T) {
	t.Parallel()

	drawRepo, ticketRepo, ledger := setupLotteryServiceMocks()
	service := newTestLotteryService(drawRepo, ticketRepo, ledger)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "monday goes to thursday",
			now:  time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), // Monday
			want: time.Date(2025, 6, 5, 20, 0, 0, 0, time.UTC), // Thursday
		},
		{
			name: "thursday before cutoff stays thursday",
			now:  time.Date(2025, 6, 5, 19, 59, 0, 0, time.UTC),
			want: time.Date(2025, 6, 5, 20, 0, 0, 0, time.UTC),
		},
		{
			name: "thursday after cutoff goes to sunday",
			now:  time.Date(2025, 6, 5, 20, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 8, 20, 0, 0, 0, time.UTC), // Sunday
		},
		{
			name: "sunday after cutoff goes to thursday",
			now:  time.Date(2025, 6, 8, 21, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 12, 20, 0, 0, 0, time.UTC),
		},
		{
			name: "saturday goes to sunday",
			now:  time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 8, 20, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.NextDrawTime(tt.now)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.After(tt.now))
		})
	}
}

func TestLotteryService_PurchaseTicket(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	validNumbers := []int32{1, 7, 13, 22, 30, 37}

	t.Run("successful purchase", func(t *testing.T) {
		drawRepo, ticketRepo, ledger := setupLotteryServiceMocks()
		service := newTestLotteryService(drawRepo, ticketRepo, ledger)

		draw := createScheduledDraw(42)
		drawRepo.On("GetOrCreateScheduledDraw", mock.Anything, mock.AnythingOfType("time.Time"), testJackpot).Return(draw, nil)
		ledger.On("ApplyBalanceDelta", mock.Anything, userID, -entities.TicketCostILS,
			entities.TransactionTypeTicketPurchase, mock.AnythingOfType("string")).
			Return(&interfaces.LedgerResult{BalanceBefore: 200, BalanceAfter: 150}, nil)
		ticketRepo.On("Create", mock.Anything, mock.MatchedBy(func(tk *entities.Ticket) bool {
			return tk.UserID == userID && tk.DrawID == draw.ID && tk.CostILS == entities.TicketCostILS
		})).Return(nil)

		result, err := service.PurchaseTicket(context.Background(), userID, validNumbers)
		require.NoError(t, err)
		assert.Equal(t, int64(150), result.NewBalance)
		assert.Equal(t, entities.TicketCostILS, result.TotalCost)
		assert.Equal(t, draw.ID, result.Ticket.DrawID)
		assert.Zero(t, result.Ticket.Matches)
		assert.Zero(t, result.Ticket.WinningAmount)
		assert.False(t, result.Ticket.IsWinner)

		ticketRepo.AssertExpectations(t)
		ledger.AssertExpectations(t)
	})

	t.Run("invalid selection rejected before any mutation", func(t *testing.T) {
		drawRepo, ticketRepo, ledger := setupLotteryServiceMocks()
		service := newTestLotteryService(drawRepo, ticketRepo, ledger)

		for _, numbers := range [][]int32{
			{1, 2, 3, 4, 5},          // too few
			{1, 2, 3, 4, 5, 5},       // duplicate
			{1, 2, 3, 4, 5, 38},      // out of range
			{0, 2, 3, 4, 5, 6},       // out of range low
			{1, 2, 3, 4, 5, 6, 7},    // too many
		} {
			_, err := service.PurchaseTicket(context.Background(), userID, numbers)

			var selErr *entities.InvalidSelectionError
			require.ErrorAs(t, err, &selErr, "numbers=%v", numbers)
		}

		ledger.AssertNotCalled(t, "ApplyBalanceDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		ticketRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("insufficient funds produces no ticket", func(t *testing.T) {
		drawRepo, ticketRepo, ledger := setupLotteryServiceMocks()
		service := newTestLotteryService(drawRepo, ticketRepo, ledger)

		draw := createScheduledDraw(42)
		drawRepo.On("GetOrCreateScheduledDraw", mock.Anything, mock.AnythingOfType("time.Time"), testJackpot).Return(draw, nil)
		ledger.On("ApplyBalanceDelta", mock.Anything, userID, -entities.TicketCostILS,
			entities.TransactionTypeTicketPurchase, mock.AnythingOfType("string")).
			Return(nil, &entities.InsufficientFundsError{UserID: userID, Available: 30, Required: 50})

		_, err := service.PurchaseTicket(context.Background(), userID, validNumbers)

		var fundsErr *entities.InsufficientFundsError
		require.ErrorAs(t, err, &fundsErr)
		ticketRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLotteryService_CompleteDraw(t *testing.T) {
	t.Parallel()

	winning := []int32{1, 2, 3, 4, 5, 6}

	t.Run("completes a scheduled draw", func(t *testing.T) {
		drawRepo, ticketRepo, ledger := setupLotteryServiceMocks()
		service := newTestLotteryService(drawRepo, ticketRepo, ledger)

		draw := createScheduledDraw(7)
		tickets := []*entities.Ticket{{ID: 1, DrawID: 7}, {ID: 2, DrawID: 7}}
		drawRepo.On("GetByIDForUpdate", mock.Anything, int64(7)).Return(draw, nil)
		drawRepo.On("CompleteDraw", mock.Anything, int64(7), winning).Return(true, nil)
		ticketRepo.On("GetByDraw", mock.Anything, int64(7)).Return(tickets, nil)

		completed, got, err := service.CompleteDraw(context.Background(), 7, winning)
		require.NoError(t, err)
		assert.True(t, completed.IsCompleted())
		assert.Equal(t, winning, completed.WinningNumbers)
		assert.Len(t, got, 2)
	})

	t.Run("rejects malformed winning numbers", func(t *testing.T) {
		drawRepo, ticketRepo, ledger := setupLotteryServiceMocks()
		service := newTestLotteryService(drawRepo, ticketRepo, ledger)

		_, _, err := service.CompleteDraw(context.Background(), 7, []int32{1, 2, 3, 4, 5})

		var numErr *entities.InvalidWinningNumbersError
		require.ErrorAs(t, err, &numErr)
		drawRepo.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("rejects a completed draw", func(t *testing.T) {
		drawRepo, ticketRepo, ledger := setupLotteryServiceMocks()
		service := newTestLotteryService(drawRepo, ticketRepo, ledger)

		draw := createScheduledDraw(7)
		draw.Complete([]int32{7, 8, 9, 10, 11, 12})
		drawRepo.On("GetByIDForUpdate", mock.Anything, int64(7)).Return(draw, nil)

		_, _, err := service.CompleteDraw(context.Background(), 7, winning)

		var stateErr *entities.DrawNotScheduledError
		require.ErrorAs(t, err, &stateErr)
		drawRepo.AssertNotCalled(t, "CompleteDraw", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("loses the completion race", func(t *testing.T) {
		drawRepo, ticketRepo, ledger := setupLotteryServiceMocks()
		service := newTestLotteryService(drawRepo, ticketRepo, ledger)

		draw := createScheduledDraw(7)
		drawRepo.On("GetByIDForUpdate", mock.Anything, int64(7)).Return(draw, nil)
		drawRepo.On("CompleteDraw", mock.Anything, int64(7), winning).Return(false, nil)

		_, _, err := service.CompleteDraw(context.Background(), 7, winning)

		var stateErr *entities.DrawNotScheduledError
		require.ErrorAs(t, err, &stateErr)
		ticketRepo.AssertNotCalled(t, "GetByDraw", mock.Anything, mock.Anything)
	})
}

func TestLotteryService_SettleTicket(t *testing.T) {
	t.Parallel()

	winning := []int32{1, 2, 3, 4, 5, 6}
	draw := &entities.Draw{ID: 7, JackpotAmount: testJackpot, WinningNumbers: winning, Status: entities.DrawStatusCompleted}

	tests := []struct {
		name      string
		numbers   []int32
		wantMatch int32
		wantPrize int64
	}{
		{"jackpot", []int32{1, 2, 3, 4, 5, 6}, 6, testJackpot},
		{"five matches", []int32{1, 2, 3, 4, 5, 7}, 5, 50000},
		{"four matches", []int32{1, 2, 3, 4, 8, 9}, 4, 5000},
		{"three matches", []int32{1, 2, 3, 8, 9, 10}, 3, 500},
		{"two matches pays nothing", []int32{1, 2, 8, 9, 10, 11}, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drawRepo, ticketRepo, ledger := setupLotteryServiceMocks()
			service := newTestLotteryService(drawRepo, ticketRepo, ledger)

			userID := uuid.New()
			ticket := &entities.Ticket{ID: 11, UserID: userID, DrawID: 7, Numbers: tt.numbers}

			ticketRepo.On("RecordResult", mock.Anything, int64(11), tt.wantMatch, tt.wantPrize, tt.wantPrize > 0).Return(true, nil)
			if tt.wantPrize > 0 {
				ledger.On("ApplyBalanceDelta", mock.Anything, userID, tt.wantPrize,
					entities.TransactionTypeWinnings, mock.AnythingOfType("string")).
					Return(&interfaces.LedgerResult{BalanceAfter: tt.wantPrize}, nil)
			}

			settlement, err := service.SettleTicket(context.Background(), draw, ticket)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMatch, settlement.Matches)
			assert.Equal(t, tt.wantPrize, settlement.WinningAmount)
			assert.Equal(t, tt.wantPrize > 0, settlement.IsWinner)

			if tt.wantPrize == 0 {
				ledger.AssertNotCalled(t, "ApplyBalanceDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
			ticketRepo.AssertExpectations(t)
			ledger.AssertExpectations(t)
		})
	}

	t.Run("already settled ticket is not paid again", func(t *testing.T) {
		drawRepo, ticketRepo, ledger := setupLotteryServiceMocks()
		service := newTestLotteryService(drawRepo, ticketRepo, ledger)

		ticket := &entities.Ticket{ID: 11, UserID: uuid.New(), DrawID: 7, Numbers: winning}
		ticketRepo.On("RecordResult", mock.Anything, int64(11), int32(6), testJackpot, true).Return(false, nil)

		_, err := service.SettleTicket(context.Background(), draw, ticket)
		assert.Error(t, err)
		ledger.AssertNotCalled(t, "ApplyBalanceDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
