package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"proxym-fin/internal/dto"
	"proxym-fin/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// investmentHeavyRatio is the share of spending in the Investment category
// above which the fallback recommends investment products over savings.
const investmentHeavyRatio = 0.2

const fallbackLimit = 3

// TextGenerator is the slice of the LLM service the recommendation ranker
// needs. A nil generator means heuristic-only recommendations.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type RecommendationService struct {
	products     ProductStore
	transactions TransactionStore
	users        UserStore
	llm          TextGenerator
	logger       *zap.Logger
}

func NewRecommendationService(
	products ProductStore,
	transactions TransactionStore,
	users UserStore,
	llm TextGenerator,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		products:     products,
		transactions: transactions,
		users:        users,
		llm:          llm,
		logger:       logger,
	}
}

// GetRecommendations returns the products suggested for a user. The AI
// ranking is attempted first when a generator is configured; any failure
// degrades to the spending-ratio heuristic.
func (s *RecommendationService) GetRecommendations(ctx context.Context, userID int64) ([]dto.Product, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	transactions, err := s.transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	ratio := investmentRatio(transactions)

	if s.llm != nil {
		if picked := s.rankWithLLM(ctx, user, catalog, ratio); len(picked) > 0 {
			return picked, nil
		}
	}

	return fallbackRecommendations(catalog, ratio), nil
}

// investmentRatio is the share of total spending that went to the Investment
// category. Zero when there is no spending history.
func investmentRatio(transactions []*models.Transaction) float64 {
	total := decimal.Zero
	invested := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
		if t.Category == models.CategoryInvestment {
			invested = invested.Add(t.Amount)
		}
	}
	if !total.IsPositive() {
		return 0
	}
	ratio, _ := invested.Div(total).Float64()
	return ratio
}

func fallbackRecommendations(catalog []*models.Product, ratio float64) []dto.Product {
	want := models.ProductSavings
	if ratio > investmentHeavyRatio {
		want = models.ProductInvestment
	}

	out := make([]dto.Product, 0, fallbackLimit)
	for _, p := range catalog {
		if p.Type != want {
			continue
		}
		out = append(out, productToDTO(p))
		if len(out) == fallbackLimit {
			break
		}
	}
	return out
}

func (s *RecommendationService) rankWithLLM(ctx context.Context, user *models.User, catalog []*models.Product, ratio float64) []dto.Product {
	names := make([]string, 0, len(catalog))
	for _, p := range catalog {
		names = append(names, fmt.Sprintf("%s (%s, %.2f%%)", p.Name, p.Type, p.InterestRate))
	}

	prompt := fmt.Sprintf(
		"Catalog:\n%s\n\nUser profile: risk %s, balance %s, monthly income %s, investment spending ratio %.2f.\n"+
			"Pick up to three catalog products for this user. Answer with product names only, one per line.",
		strings.Join(names, "\n"), user.RiskProfile, user.Balance, user.MonthlyIncome, ratio,
	)

	answer, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("AI recommendation failed, using fallback", zap.Error(err))
		return nil
	}

	var picked []dto.Product
	for _, p := range catalog {
		for _, line := range strings.Split(answer, "\n") {
			if strings.EqualFold(strings.TrimSpace(line), p.Name) {
				picked = append(picked, productToDTO(p))
				break
			}
		}
	}
	return picked
}
