// Seed creates the schema and loads a demo data set: an administrator, a
// sample user with transaction history, and the product catalog.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"proxym-fin/internal/models"
	"proxym-fin/internal/repository"
	"proxym-fin/pkg/auth"
	"proxym-fin/pkg/config"
	"proxym-fin/pkg/logger"
	"proxym-fin/pkg/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'USER',
	age INT NOT NULL DEFAULT 18,
	monthly_income NUMERIC(14,2) NOT NULL DEFAULT 0,
	balance NUMERIC(14,2) NOT NULL DEFAULT 0,
	risk_profile TEXT NOT NULL DEFAULT 'Medium',
	financial_goals TEXT NOT NULL DEFAULT 'Savings'
);

CREATE TABLE IF NOT EXISTS financial_products (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	interest_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
	minimum_entry NUMERIC(14,2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS transactions (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	amount NUMERIC(14,2) NOT NULL,
	category TEXT NOT NULL,
	date TIMESTAMPTZ NOT NULL DEFAULT now(),
	description TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Starting database seeding...")

	if _, err := db.Exec(ctx, schema); err != nil {
		appLogger.Fatal("Failed to create schema", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	productRepo := repository.NewProductRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)

	if err := seedUsers(ctx, userRepo, txRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed users", zap.Error(err))
	}
	if err := seedProducts(ctx, productRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed products", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

func seedUsers(
	ctx context.Context,
	users *repository.UserRepository,
	transactions *repository.TransactionRepository,
	logger *zap.Logger,
) error {
	seed := []struct {
		user     models.User
		password string
	}{
		{
			user: models.User{
				Name:           "Admin",
				Email:          "admin@proxym.com",
				Role:           models.RoleAdmin,
				Age:            35,
				MonthlyIncome:  decimal.NewFromInt(0),
				Balance:        decimal.NewFromInt(0),
				RiskProfile:    models.RiskLow,
				FinancialGoals: "Savings",
			},
			password: "admin",
		},
		{
			user: models.User{
				Name:           "Alice Martin",
				Email:          "alice@example.com",
				Role:           models.RoleUser,
				Age:            29,
				MonthlyIncome:  decimal.NewFromInt(4200),
				Balance:        decimal.NewFromInt(12500),
				RiskProfile:    models.RiskMedium,
				FinancialGoals: "Savings",
			},
			password: "alice123",
		},
	}

	for _, entry := range seed {
		existing, err := users.GetByEmail(ctx, entry.user.Email)
		if err == nil && existing != nil {
			logger.Info("User already exists, skipping", zap.String("email", entry.user.Email))
			continue
		}
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		hash, err := auth.HashPassword(entry.password)
		if err != nil {
			return err
		}
		entry.user.Password = hash

		if err := users.Create(ctx, &entry.user); err != nil {
			return err
		}
		logger.Info("Created user",
			zap.String("email", entry.user.Email),
			zap.String("role", string(entry.user.Role)),
		)

		if entry.user.Role != models.RoleUser {
			continue
		}

		now := time.Now()
		history := []models.Transaction{
			{UserID: entry.user.ID, Amount: decimal.NewFromInt(1200), Category: models.CategoryRent, Date: now.AddDate(0, 0, -20), Description: "Monthly rent"},
			{UserID: entry.user.ID, Amount: decimal.NewFromFloat(86.40), Category: models.CategoryFood, Date: now.AddDate(0, 0, -12), Description: "Groceries"},
			{UserID: entry.user.ID, Amount: decimal.NewFromInt(500), Category: models.CategoryInvestment, Date: now.AddDate(0, 0, -8), Description: "Index fund contribution"},
			{UserID: entry.user.ID, Amount: decimal.NewFromFloat(15.99), Category: models.CategorySubscription, Date: now.AddDate(0, 0, -5), Description: "Streaming service"},
			{UserID: entry.user.ID, Amount: decimal.NewFromFloat(42.50), Category: models.CategoryEntertainment, Date: now.AddDate(0, 0, -2), Description: "Cinema night"},
		}
		for i := range history {
			if err := transactions.Create(ctx, &history[i]); err != nil {
				return err
			}
		}
		logger.Info("Created transaction history",
			zap.String("email", entry.user.Email),
			zap.Int("count", len(history)),
		)
	}
	return nil
}

func seedProducts(ctx context.Context, products *repository.ProductRepository, logger *zap.Logger) error {
	existing, err := products.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("Products already seeded, skipping", zap.Int("count", len(existing)))
		return nil
	}

	catalog := []models.Product{
		{
			Name:         "Secure Yield Savings",
			Type:         models.ProductSavings,
			Description:  "Capital-protected savings account with daily compounding",
			InterestRate: 3.5,
			MinimumEntry: decimal.NewFromInt(100),
		},
		{
			Name:         "Luxury Growth Portfolio",
			Type:         models.ProductInvestment,
			Description:  "Actively managed equity portfolio for long-horizon investors",
			InterestRate: 8.2,
			MinimumEntry: decimal.NewFromInt(5000),
		},
		{
			Name:         "Starter Index Fund",
			Type:         models.ProductInvestment,
			Description:  "Low-fee diversified index tracker",
			InterestRate: 6.1,
			MinimumEntry: decimal.NewFromInt(250),
		},
		{
			Name:         "Flexible Personal Loan",
			Type:         models.ProductLoan,
			Description:  "Unsecured loan with early repayment at no charge",
			InterestRate: 11.9,
			MinimumEntry: decimal.NewFromInt(1000),
		},
		{
			Name:         "Family Care Insurance",
			Type:         models.ProductInsurance,
			Description:  "Life and health coverage for the whole household",
			InterestRate: 0,
			MinimumEntry: decimal.NewFromInt(50),
		},
	}

	for i := range catalog {
		if err := products.Create(ctx, &catalog[i]); err != nil {
			return err
		}
	}
	logger.Info("Created product catalog", zap.Int("count", len(catalog)))
	return nil
}
