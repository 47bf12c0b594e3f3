package service

import (
	"context"
	"errors"
	"testing"

	"proxym-fin/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedRecommendationWorld(t *testing.T) (*fakeUserStore, *fakeProductStore, *fakeTransactionStore, *models.User) {
	t.Helper()
	users := newFakeUserStore()
	owner := &models.User{Name: "Alice", Email: "alice@example.com", RiskProfile: models.RiskMedium}
	require.NoError(t, users.Create(context.Background(), owner))

	products := newFakeProductStore()
	catalog := []models.Product{
		{Name: "Secure Yield Savings", Type: models.ProductSavings, InterestRate: 3.5},
		{Name: "Luxury Growth Portfolio", Type: models.ProductInvestment, InterestRate: 8.2},
		{Name: "Starter Index Fund", Type: models.ProductInvestment, InterestRate: 6.1},
		{Name: "Rainy Day Savings", Type: models.ProductSavings, InterestRate: 2.8},
		{Name: "Flexible Personal Loan", Type: models.ProductLoan, InterestRate: 11.9},
	}
	for i := range catalog {
		require.NoError(t, products.Create(context.Background(), &catalog[i]))
	}

	return users, products, newFakeTransactionStore(), owner
}

func spend(t *testing.T, store *fakeTransactionStore, userID int64, category models.TransactionCategory, amount int64) {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), &models.Transaction{
		UserID:   userID,
		Amount:   decimal.NewFromInt(amount),
		Category: category,
	}))
}

func TestInvestmentRatio(t *testing.T) {
	assert.Zero(t, investmentRatio(nil))

	txs := []*models.Transaction{
		{Amount: decimal.NewFromInt(300), Category: models.CategoryInvestment},
		{Amount: decimal.NewFromInt(700), Category: models.CategoryRent},
	}
	assert.InDelta(t, 0.3, investmentRatio(txs), 1e-9)
}

func TestFallbackRecommendsSavingsByDefault(t *testing.T) {
	users, products, txs, owner := seedRecommendationWorld(t)
	svc := NewRecommendationService(products, txs, users, nil, zap.NewNop())

	// Mostly rent and food; investment share stays under the threshold.
	spend(t, txs, owner.ID, models.CategoryRent, 800)
	spend(t, txs, owner.ID, models.CategoryInvestment, 100)

	recs, err := svc.GetRecommendations(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, "SAVINGS", r.Type)
	}
}

func TestFallbackRecommendsInvestmentWhenRatioHigh(t *testing.T) {
	users, products, txs, owner := seedRecommendationWorld(t)
	svc := NewRecommendationService(products, txs, users, nil, zap.NewNop())

	spend(t, txs, owner.ID, models.CategoryInvestment, 500)
	spend(t, txs, owner.ID, models.CategoryFood, 500)

	recs, err := svc.GetRecommendations(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Luxury Growth Portfolio", recs[0].Name)
	assert.Equal(t, "Starter Index Fund", recs[1].Name)
}

func TestFallbackCapsAtThree(t *testing.T) {
	users, products, txs, owner := seedRecommendationWorld(t)
	for i := 0; i < 3; i++ {
		p := models.Product{Name: "Extra Savings", Type: models.ProductSavings}
		require.NoError(t, products.Create(context.Background(), &p))
	}
	svc := NewRecommendationService(products, txs, users, nil, zap.NewNop())

	recs, err := svc.GetRecommendations(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestLLMPicksOverrideFallback(t *testing.T) {
	users, products, txs, owner := seedRecommendationWorld(t)
	gen := &fakeGenerator{reply: "Flexible Personal Loan\nluxury growth portfolio\nNo Such Product"}
	svc := NewRecommendationService(products, txs, users, gen, zap.NewNop())

	recs, err := svc.GetRecommendations(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	// Catalog order, matched case-insensitively; hallucinated names dropped.
	assert.Equal(t, "Luxury Growth Portfolio", recs[0].Name)
	assert.Equal(t, "Flexible Personal Loan", recs[1].Name)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Secure Yield Savings")
}

func TestLLMFailureDegradesToFallback(t *testing.T) {
	users, products, txs, owner := seedRecommendationWorld(t)
	gen := &fakeGenerator{err: errors.New("upstream down")}
	svc := NewRecommendationService(products, txs, users, gen, zap.NewNop())

	recs, err := svc.GetRecommendations(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "SAVINGS", recs[0].Type)
}

func TestRecommendationsUnknownUser(t *testing.T) {
	users, products, txs, _ := seedRecommendationWorld(t)
	svc := NewRecommendationService(products, txs, users, nil, zap.NewNop())

	_, err := svc.GetRecommendations(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
