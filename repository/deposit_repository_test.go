package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotto/domain/entities"
	"lotto/repository/testutil"
)

func TestDepositRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	depositRepo := NewDepositRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser("alice@example.com", "alice")
	require.NoError(t, userRepo.Create(ctx, user))

	deposit := testutil.CreateTestDeposit(user.ID, 1200)
	require.NoError(t, depositRepo.Create(ctx, deposit))
	assert.NotZero(t, deposit.ID)
	assert.Equal(t, entities.ApprovalStatusPending, deposit.Status)

	fresh, err := depositRepo.GetByID(ctx, deposit.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, "BTC", fresh.CryptoType)
	assert.True(t, fresh.CryptoAmount.Equal(decimal.RequireFromString("0.005")), "got %s", fresh.CryptoAmount)
	assert.Equal(t, int64(1200), fresh.AmountILS)
	assert.Nil(t, fresh.ValidatedBy)
	assert.Nil(t, fresh.ValidatedAt)
}

func TestDepositRepository_Decide(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	depositRepo := NewDepositRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser("bob@example.com", "bob")
	require.NoError(t, userRepo.Create(ctx, user))
	admin := testutil.CreateTestAdmin("admin@example.com", "admin")
	require.NoError(t, userRepo.Create(ctx, admin))

	deposit := testutil.CreateTestDeposit(user.ID, 1200)
	require.NoError(t, depositRepo.Create(ctx, deposit))

	decided, err := depositRepo.Decide(ctx, deposit.ID, entities.ApprovalStatusConfirmed, admin.ID, "verified on chain")
	require.NoError(t, err)
	assert.True(t, decided)

	fresh, err := depositRepo.GetByID(ctx, deposit.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.ApprovalStatusConfirmed, fresh.Status)
	require.NotNil(t, fresh.ValidatedBy)
	assert.Equal(t, admin.ID, *fresh.ValidatedBy)
	assert.NotNil(t, fresh.ValidatedAt)
	assert.Equal(t, "verified on chain", fresh.Notes)

	// A decision is final; a second one reports false.
	decided, err = depositRepo.Decide(ctx, deposit.ID, entities.ApprovalStatusRejected, admin.ID, "")
	require.NoError(t, err)
	assert.False(t, decided)

	unchanged, err := depositRepo.GetByID(ctx, deposit.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.ApprovalStatusConfirmed, unchanged.Status)
}

func TestDepositRepository_Listing(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	depositRepo := NewDepositRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser("carol@example.com", "carol")
	require.NoError(t, userRepo.Create(ctx, user))
	admin := testutil.CreateTestAdmin("admin@example.com", "admin")
	require.NoError(t, userRepo.Create(ctx, admin))

	first := testutil.CreateTestDeposit(user.ID, 500)
	require.NoError(t, depositRepo.Create(ctx, first))
	second := testutil.CreateTestDeposit(user.ID, 700)
	require.NoError(t, depositRepo.Create(ctx, second))

	decided, err := depositRepo.Decide(ctx, first.ID, entities.ApprovalStatusRejected, admin.ID, "")
	require.NoError(t, err)
	require.True(t, decided)

	pending, err := depositRepo.ListByStatus(ctx, entities.ApprovalStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)

	byUser, err := depositRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)
}

func TestWithdrawalRepository_Decide(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	withdrawalRepo := NewWithdrawalRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser("dave@example.com", "dave")
	require.NoError(t, userRepo.Create(ctx, user))
	admin := testutil.CreateTestAdmin("admin@example.com", "admin")
	require.NoError(t, userRepo.Create(ctx, admin))

	withdrawal := testutil.CreateTestWithdrawal(user.ID, 800)
	require.NoError(t, withdrawalRepo.Create(ctx, withdrawal))
	assert.Equal(t, entities.ApprovalStatusPending, withdrawal.Status)

	decided, err := withdrawalRepo.Decide(ctx, withdrawal.ID, entities.ApprovalStatusConfirmed, admin.ID, "sent")
	require.NoError(t, err)
	assert.True(t, decided)

	fresh, err := withdrawalRepo.GetByID(ctx, withdrawal.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.ApprovalStatusConfirmed, fresh.Status)
	require.NotNil(t, fresh.ProcessedBy)
	assert.Equal(t, admin.ID, *fresh.ProcessedBy)
	assert.Equal(t, "0x0000000000000000000000000000000000000001", fresh.WalletAddress)

	decided, err = withdrawalRepo.Decide(ctx, withdrawal.ID, entities.ApprovalStatusRejected, admin.ID, "")
	require.NoError(t, err)
	assert.False(t, decided)
}
