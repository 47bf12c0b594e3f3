package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"proxym-fin/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *StubPlatform) {
	t.Helper()
	stub := NewStubPlatform()
	t.Cleanup(stub.Close)
	return New(stub.URL(), 5*time.Second), stub
}

func TestLoginInstallsToken(t *testing.T) {
	rc, stub := newTestClient(t)
	stub.SeedUser(dto.User{Name: "Alice", Email: "alice@example.com", Role: "USER"}, "alice123")

	resp, err := rc.Login(context.Background(), "alice@example.com", "alice123")
	require.NoError(t, err)
	assert.Equal(t, "stub-token", resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Empty(t, resp.User.Password)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	rc, stub := newTestClient(t)
	stub.SeedUser(dto.User{Email: "alice@example.com"}, "alice123")

	_, err := rc.Login(context.Background(), "alice@example.com", "wrong")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "invalid email or password", apiErr.Message)
}

func TestSignupCreatesUser(t *testing.T) {
	rc, _ := newTestClient(t)

	resp, err := rc.Signup(context.Background(), dto.SignupRequest{
		Name: "Bob", Email: "bob@example.com", Password: "s3cret", Age: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, "USER", resp.User.Role)
	assert.Equal(t, "Medium", resp.User.RiskProfile)

	// Duplicate email is rejected.
	_, err = rc.Signup(context.Background(), dto.SignupRequest{Email: "bob@example.com"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Status)
}

func TestProductCRUD(t *testing.T) {
	rc, _ := newTestClient(t)
	ctx := context.Background()

	created, err := rc.CreateProduct(ctx, dto.Product{
		Name: "Starter Index Fund", Type: "INVESTMENT", Description: "Index tracker",
		InterestRate: 6.1, MinimumEntry: decimal.NewFromInt(250),
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	created.InterestRate = 6.4
	updated, err := rc.UpdateProduct(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, 6.4, updated.InterestRate)

	list, err := rc.Products(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].MinimumEntry.Equal(decimal.NewFromInt(250)))

	require.NoError(t, rc.DeleteProduct(ctx, created.ID))
	list, err = rc.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransactionsByUserFiltersAndOrders(t *testing.T) {
	rc, stub := newTestClient(t)
	ctx := context.Background()

	stub.SeedTransaction(dto.Transaction{UserID: 1, Amount: decimal.NewFromInt(10), Category: "Food"})
	stub.SeedTransaction(dto.Transaction{UserID: 2, Amount: decimal.NewFromInt(20), Category: "Rent"})
	stub.SeedTransaction(dto.Transaction{UserID: 1, Amount: decimal.NewFromInt(30), Category: "Entertainment"})

	list, err := rc.TransactionsByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Newest first.
	assert.Equal(t, "Entertainment", list[0].Category)
	assert.Equal(t, "Food", list[1].Category)
}

func TestCreateTransactionRequiresOwner(t *testing.T) {
	rc, _ := newTestClient(t)

	_, err := rc.CreateTransaction(context.Background(), dto.Transaction{
		Amount: decimal.NewFromInt(5), Category: "Food",
	})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Status)
	assert.Contains(t, apiErr.Message, "owner is required")
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Status: 404, Message: "user not found"}
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "user not found")
}
