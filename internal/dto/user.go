package dto

import "github.com/shopspring/decimal"

// User is the wire shape for user records. Password is write-only: the server
// never fills it on reads, and an empty value on update means "unchanged".
type User struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Password       string          `json:"password,omitempty"`
	Role           string          `json:"role"`
	Age            int             `json:"age"`
	MonthlyIncome  decimal.Decimal `json:"monthlyIncome"`
	Balance        decimal.Decimal `json:"balance"`
	RiskProfile    string          `json:"riskProfile"`
	FinancialGoals string          `json:"financialGoals"`
}
