package models

import "github.com/shopspring/decimal"

type ProductType string

const (
	ProductSavings    ProductType = "SAVINGS"
	ProductInvestment ProductType = "INVESTMENT"
	ProductLoan       ProductType = "LOAN"
	ProductInsurance  ProductType = "INSURANCE"
)

// ValidProductType reports whether t is one of the catalog types.
func ValidProductType(t ProductType) bool {
	switch t {
	case ProductSavings, ProductInvestment, ProductLoan, ProductInsurance:
		return true
	}
	return false
}

type Product struct {
	ID           int64           `db:"id"`
	Name         string          `db:"name"`
	Type         ProductType     `db:"type"`
	Description  string          `db:"description"`
	InterestRate float64         `db:"interest_rate"`
	MinimumEntry decimal.Decimal `db:"minimum_entry"`
}
