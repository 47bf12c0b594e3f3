package service

import (
	"context"
	"testing"

	"proxym-fin/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProductCreateValidates(t *testing.T) {
	svc := NewProductService(newFakeProductStore(), zap.NewNop())

	_, err := svc.Create(context.Background(), &dto.Product{Name: "X", Type: "CRYPTO"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), &dto.Product{Name: "X", Type: "SAVINGS", InterestRate: -1})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), &dto.Product{
		Name: "X", Type: "SAVINGS", MinimumEntry: decimal.NewFromInt(-10),
	})
	require.ErrorIs(t, err, ErrValidation)

	created, err := svc.Create(context.Background(), &dto.Product{
		Name: "Secure Yield Savings", Type: "SAVINGS", InterestRate: 3.5,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestProductUpdateUnknown(t *testing.T) {
	svc := NewProductService(newFakeProductStore(), zap.NewNop())

	_, err := svc.Update(context.Background(), 8, &dto.Product{Name: "X", Type: "SAVINGS"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductLifecycle(t *testing.T) {
	svc := NewProductService(newFakeProductStore(), zap.NewNop())

	created, err := svc.Create(context.Background(), &dto.Product{
		Name: "Starter Index Fund", Type: "INVESTMENT", InterestRate: 6.1,
	})
	require.NoError(t, err)

	created.InterestRate = 6.4
	updated, err := svc.Update(context.Background(), created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, 6.4, updated.InterestRate)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrNotFound)
}
