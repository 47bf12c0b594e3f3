package dto

import "github.com/shopspring/decimal"

type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Description  string          `json:"description"`
	InterestRate float64         `json:"interestRate"`
	MinimumEntry decimal.Decimal `json:"minimumEntry"`
}
