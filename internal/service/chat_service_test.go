package service

import (
	"context"
	"testing"
	"time"

	"proxym-fin/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChatUnavailableWithoutGenerator(t *testing.T) {
	svc := NewChatService(nil, zap.NewNop())

	_, err := svc.Ask(context.Background(), &dto.ChatRequest{Message: "hello"})
	assert.ErrorIs(t, err, ErrChatUnavailable)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	svc := NewChatService(&fakeGenerator{reply: "hi"}, zap.NewNop())

	_, err := svc.Ask(context.Background(), &dto.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestChatPromptCarriesContext(t *testing.T) {
	gen := &fakeGenerator{reply: "Spend less on subscriptions."}
	svc := NewChatService(gen, zap.NewNop())

	resp, err := svc.Ask(context.Background(), &dto.ChatRequest{
		Message: "Where does my money go?",
		UserContext: dto.UserContext{
			Name:          "Alice Martin",
			Age:           29,
			RiskProfile:   "Medium",
			Balance:       decimal.NewFromInt(1200),
			MonthlyIncome: decimal.NewFromInt(4200),
			ProductCount:  2,
			RecentTransactions: []dto.Transaction{
				{Amount: decimal.NewFromFloat(15.99), Category: "Subscription", Description: "Streaming", Date: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Spend less on subscriptions.", resp.Response)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "Alice Martin")
	assert.Contains(t, prompt, "Subscription")
	assert.Contains(t, prompt, "2026-08-25")
	assert.Contains(t, prompt, "Where does my money go?")
}
