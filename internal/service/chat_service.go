package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"proxym-fin/internal/dto"

	"go.uber.org/zap"
)

var ErrChatUnavailable = errors.New("chat assistant is not configured")

// ChatService turns a user message plus profile context into a single LLM
// round trip. It holds no conversation state.
type ChatService struct {
	llm    TextGenerator
	logger *zap.Logger
}

func NewChatService(llm TextGenerator, logger *zap.Logger) *ChatService {
	return &ChatService{
		llm:    llm,
		logger: logger,
	}
}

func (s *ChatService) Ask(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if s.llm == nil {
		return nil, ErrChatUnavailable
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}

	answer, err := s.llm.Generate(ctx, buildChatPrompt(req))
	if err != nil {
		return nil, err
	}

	return &dto.ChatResponse{Response: answer}, nil
}

func buildChatPrompt(req *dto.ChatRequest) string {
	uc := req.UserContext

	var b strings.Builder
	fmt.Fprintf(&b, "User: %s, age %d, risk profile %s.\n", uc.Name, uc.Age, uc.RiskProfile)
	fmt.Fprintf(&b, "Balance: %s. Monthly income: %s. Products held: %d.\n",
		uc.Balance, uc.MonthlyIncome, uc.ProductCount)

	if len(uc.RecentTransactions) > 0 {
		b.WriteString("Recent transactions:\n")
		for _, t := range uc.RecentTransactions {
			fmt.Fprintf(&b, "- %s %s (%s) %s\n",
				t.Date.Format("2006-01-02"), t.Amount, t.Category, t.Description)
		}
	}

	fmt.Fprintf(&b, "\nQuestion: %s", req.Message)
	return b.String()
}
