package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotto/domain/entities"
	"lotto/repository/testutil"
)

func TestLedgerRepository_Record(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	ledgerRepo := NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUserWithBalance("alice@example.com", "alice", 0)
	require.NoError(t, userRepo.Create(ctx, user))

	entry := &entities.LedgerEntry{
		UserID:        user.ID,
		Type:          entities.TransactionTypeDeposit,
		AmountILS:     500,
		BalanceBefore: 0,
		BalanceAfter:  500,
		Description:   "Crypto deposit - BTC",
	}
	require.NoError(t, ledgerRepo.Record(ctx, entry))
	assert.NotZero(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	t.Run("inconsistent entries are rejected by the schema", func(t *testing.T) {
		bad := &entities.LedgerEntry{
			UserID:        user.ID,
			Type:          entities.TransactionTypeDeposit,
			AmountILS:     500,
			BalanceBefore: 0,
			BalanceAfter:  400,
		}
		assert.Error(t, ledgerRepo.Record(ctx, bad))
	})

	t.Run("zero amounts are rejected by the schema", func(t *testing.T) {
		bad := &entities.LedgerEntry{
			UserID:        user.ID,
			Type:          entities.TransactionTypeDeposit,
			AmountILS:     0,
			BalanceBefore: 500,
			BalanceAfter:  500,
		}
		assert.Error(t, ledgerRepo.Record(ctx, bad))
	})
}

// The ledger is the source of truth for balances: after any sequence of
// mutations the signed sum of a user's entries equals the stored balance.
func TestLedgerRepository_SumMatchesBalance(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	ledgerRepo := NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUserWithBalance("bob@example.com", "bob", 0)
	require.NoError(t, userRepo.Create(ctx, user))

	deltas := []struct {
		amount int64
		txType entities.TransactionType
	}{
		{1000, entities.TransactionTypeDeposit},
		{-50, entities.TransactionTypeTicketPurchase},
		{-50, entities.TransactionTypeTicketPurchase},
		{500, entities.TransactionTypeWinnings},
		{-200, entities.TransactionTypeWithdrawal},
	}

	for _, d := range deltas {
		before, after, err := userRepo.ApplyBalanceDelta(ctx, user.ID, d.amount)
		require.NoError(t, err)

		entry := &entities.LedgerEntry{
			UserID:        user.ID,
			Type:          d.txType,
			AmountILS:     d.amount,
			BalanceBefore: before,
			BalanceAfter:  after,
		}
		require.NoError(t, ledgerRepo.Record(ctx, entry))
	}

	sum, err := ledgerRepo.SumByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), sum)

	fresh, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, sum, fresh.BalanceILS)

	entries, err := ledgerRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	// Newest first.
	assert.Equal(t, entities.TransactionTypeWithdrawal, entries[0].Type)
}
