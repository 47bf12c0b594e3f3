package models

import "github.com/shopspring/decimal"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type RiskProfile string

const (
	RiskLow    RiskProfile = "Low"
	RiskMedium RiskProfile = "Medium"
	RiskHigh   RiskProfile = "High"
)

// User is the admin-managed user record. Password holds the bcrypt hash and
// never leaves the service layer.
type User struct {
	ID             int64           `db:"id"`
	Name           string          `db:"name"`
	Email          string          `db:"email"`
	Password       string          `db:"password"`
	Role           Role            `db:"role"`
	Age            int             `db:"age"`
	MonthlyIncome  decimal.Decimal `db:"monthly_income"`
	Balance        decimal.Decimal `db:"balance"`
	RiskProfile    RiskProfile     `db:"risk_profile"`
	FinancialGoals string          `db:"financial_goals"`
}

// ApplyDefaults fills server-side defaults for a freshly created user.
func (u *User) ApplyDefaults() {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.RiskProfile == "" {
		u.RiskProfile = RiskMedium
	}
	if u.FinancialGoals == "" {
		u.FinancialGoals = "Savings"
	}
}
