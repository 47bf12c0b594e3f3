package dashboard

import (
	"context"
	"testing"
	"time"

	"proxym-fin/internal/client"
	"proxym-fin/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDashboard(t *testing.T) (*Dashboard, *client.StubPlatform, dto.User) {
	t.Helper()
	stub := client.NewStubPlatform()
	t.Cleanup(stub.Close)

	user := stub.SeedUser(dto.User{
		Name:          "Alice Martin",
		Email:         "alice@example.com",
		Role:          "USER",
		Age:           29,
		MonthlyIncome: decimal.NewFromInt(4200),
		Balance:       decimal.NewFromInt(1000),
		RiskProfile:   "Medium",
	}, "alice123")
	stub.SeedProduct(dto.Product{Name: "Secure Yield Savings", Type: "SAVINGS", InterestRate: 3.5})
	stub.SeedTransaction(dto.Transaction{UserID: user.ID, Amount: decimal.NewFromInt(50), Category: "Food", Description: "Groceries"})

	rc := client.New(stub.URL(), 5*time.Second)
	return New(rc, user.ID, zap.NewNop()), stub, user
}

func TestRefreshAggregatesAllSections(t *testing.T) {
	d, _, user := newTestDashboard(t)

	assert.Nil(t, d.Snapshot())

	snap, err := d.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user.ID, snap.User.ID)
	assert.True(t, snap.User.Balance.Equal(decimal.NewFromInt(1000)))
	assert.Len(t, snap.Transactions, 1)
	assert.Len(t, snap.Recommendations, 1)
	assert.Same(t, snap, d.Snapshot())
}

func TestRefreshFailureLeavesSnapshot(t *testing.T) {
	d, stub, _ := newTestDashboard(t)

	first, err := d.Refresh(context.Background())
	require.NoError(t, err)

	stub.Close()
	_, err = d.Refresh(context.Background())
	require.Error(t, err)
	assert.Same(t, first, d.Snapshot())
}

func TestSpendUpdatesBalanceEverywhere(t *testing.T) {
	d, stub, user := newTestDashboard(t)
	_, err := d.Refresh(context.Background())
	require.NoError(t, err)

	snap, err := d.Spend(context.Background(), dto.Transaction{
		Amount:      decimal.NewFromFloat(250.50),
		Category:    "Rent",
		Description: "Partial rent",
	})
	require.NoError(t, err)

	want := decimal.NewFromFloat(749.50)
	assert.True(t, snap.User.Balance.Equal(want), "got %s", snap.User.Balance)

	// The server holds the same balance.
	stored, ok := stub.UserRecord(user.ID)
	require.True(t, ok)
	assert.True(t, stored.Balance.Equal(want))

	assert.Equal(t, 2, stub.TransactionCount())
	// Newest first after refresh.
	assert.Equal(t, "Rent", snap.Transactions[0].Category)
}

func TestSpendSetsOwnerFromSession(t *testing.T) {
	d, _, user := newTestDashboard(t)
	_, err := d.Refresh(context.Background())
	require.NoError(t, err)

	// The caller's transaction is always attached to the logged-in user,
	// even when the input carries a different owner.
	snap, err := d.Spend(context.Background(), dto.Transaction{
		UserID:   999,
		Amount:   decimal.NewFromInt(10),
		Category: "Food",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, snap.Transactions[0].UserID)
}

func TestSpendRejectedWhileSpendInFlight(t *testing.T) {
	d, stub, _ := newTestDashboard(t)
	_, err := d.Refresh(context.Background())
	require.NoError(t, err)

	release := stub.HoldCreate("transactions")
	done := make(chan error, 1)
	go func() {
		_, err := d.Spend(context.Background(), dto.Transaction{
			Amount:   decimal.NewFromInt(20),
			Category: "Food",
		})
		done <- err
	}()

	require.Eventually(t, d.Spending, time.Second, 5*time.Millisecond)
	_, err = d.Spend(context.Background(), dto.Transaction{
		Amount:   decimal.NewFromInt(5),
		Category: "Food",
	})
	require.ErrorIs(t, err, ErrSpendInFlight)

	release()
	require.NoError(t, <-done)
	// Only the first spend landed.
	assert.Equal(t, 2, stub.TransactionCount())
}

func TestSpendSurfacesBalanceWriteFailure(t *testing.T) {
	d, stub, _ := newTestDashboard(t)
	_, err := d.Refresh(context.Background())
	require.NoError(t, err)

	stub.FailNextUserUpdate()
	_, err = d.Spend(context.Background(), dto.Transaction{
		Amount:   decimal.NewFromInt(30),
		Category: "Food",
	})
	require.ErrorIs(t, err, ErrBalanceOutOfSync)

	// The transaction itself was recorded; only the balance write failed.
	assert.Equal(t, 2, stub.TransactionCount())
}

func TestChatContextListsRecentTransactions(t *testing.T) {
	d, stub, user := newTestDashboard(t)

	for i := 0; i < 6; i++ {
		stub.SeedTransaction(dto.Transaction{
			UserID:   user.ID,
			Amount:   decimal.NewFromInt(int64(i + 1)),
			Category: "Entertainment",
		})
	}
	_, err := d.Refresh(context.Background())
	require.NoError(t, err)

	uc := d.ChatContext()
	assert.Equal(t, "Alice Martin", uc.Name)
	assert.Equal(t, 29, uc.Age)
	assert.Equal(t, 1, uc.ProductCount)
	// Capped at the five most recent.
	assert.Len(t, uc.RecentTransactions, 5)
	assert.True(t, uc.RecentTransactions[0].Amount.Equal(decimal.NewFromInt(6)))
}

func TestChatContextEmptyBeforeRefresh(t *testing.T) {
	d, _, _ := newTestDashboard(t)
	uc := d.ChatContext()
	assert.Empty(t, uc.Name)
	assert.Empty(t, uc.RecentTransactions)
}

func TestAskUsesAssistant(t *testing.T) {
	d, stub, _ := newTestDashboard(t)
	stub.ChatReply = "Consider a savings product."
	_, err := d.Refresh(context.Background())
	require.NoError(t, err)

	answer, err := d.Ask(context.Background(), "What should I do with my balance?")
	require.NoError(t, err)
	assert.Equal(t, "Consider a savings product.", answer)
}
