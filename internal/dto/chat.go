package dto

import "github.com/shopspring/decimal"

// UserContext is the profile summary attached to every chat message so the
// assistant can answer against the caller's actual finances.
type UserContext struct {
	Name               string          `json:"name"`
	Balance            decimal.Decimal `json:"balance"`
	MonthlyIncome      decimal.Decimal `json:"monthly_income"`
	Age                int             `json:"age"`
	RiskProfile        string          `json:"risk_profile"`
	ProductCount       int             `json:"product_count"`
	RecentTransactions []Transaction   `json:"recent_transactions"`
}

type ChatRequest struct {
	Message     string      `json:"message"`
	UserContext UserContext `json:"user_context"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
