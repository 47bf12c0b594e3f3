package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionCategory string

const (
	CategoryFood          TransactionCategory = "Food"
	CategoryRent          TransactionCategory = "Rent"
	CategoryInvestment    TransactionCategory = "Investment"
	CategorySubscription  TransactionCategory = "Subscription"
	CategoryEntertainment TransactionCategory = "Entertainment"
)

// ValidCategory reports whether c is a known spending category.
func ValidCategory(c TransactionCategory) bool {
	switch c {
	case CategoryFood, CategoryRent, CategoryInvestment, CategorySubscription, CategoryEntertainment:
		return true
	}
	return false
}

// Transaction records a spend against exactly one owning user. Amount is
// stored positive regardless of direction.
type Transaction struct {
	ID          int64               `db:"id"`
	UserID      int64               `db:"user_id"`
	Amount      decimal.Decimal     `db:"amount"`
	Category    TransactionCategory `db:"category"`
	Description string              `db:"description"`
	Date        time.Time           `db:"date"`
}
