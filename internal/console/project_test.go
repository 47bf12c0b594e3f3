package console

import (
	"testing"

	"proxym-fin/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRowOfProduct(t *testing.T) {
	row := RowOf(&productEntity{p: dto.Product{
		ID:           3,
		Name:         "Secure Yield Savings",
		Type:         "SAVINGS",
		Description:  "Capital-protected savings",
		InterestRate: 3.5,
	}})

	assert.Equal(t, int64(3), row.ID)
	assert.Equal(t, "Secure Yield Savings", row.Primary)
	assert.Equal(t, "SAVINGS", row.Details)
	assert.Equal(t, "3.5%", row.Value)
}

func TestRowOfUser(t *testing.T) {
	row := RowOf(&userEntity{u: dto.User{
		ID:          1,
		Name:        "Alice Martin",
		Email:       "alice@example.com",
		RiskProfile: "Medium",
	}})

	assert.Equal(t, "Alice Martin", row.Primary)
	assert.Equal(t, "alice@example.com", row.Details)
	// Users have neither a rate nor an amount; the risk profile stands in.
	assert.Equal(t, "Medium", row.Value)
}

func TestRowOfTransaction(t *testing.T) {
	row := RowOf(&transactionEntity{t: dto.Transaction{
		ID:          9,
		UserID:      2,
		Amount:      decimal.NewFromFloat(86.4),
		Category:    "Food",
		Description: "Groceries",
	}})

	// Transactions have no name; the category leads.
	assert.Equal(t, "Food", row.Primary)
	assert.Equal(t, "Groceries", row.Details)
	assert.Equal(t, "$86.40", row.Value)
}

func TestRowOfZeroRateStillRenders(t *testing.T) {
	// A 0% product renders its rate rather than falling through: the rate
	// attribute is present, just zero.
	row := RowOf(&productEntity{p: dto.Product{Name: "Family Care Insurance", Type: "INSURANCE"}})
	assert.Equal(t, "0%", row.Value)
}

func TestRowOfEmptyEntityUsesPlaceholders(t *testing.T) {
	row := RowOf(&userEntity{u: dto.User{ID: 5}})
	assert.Equal(t, "N/A", row.Primary)
	assert.Equal(t, "No details", row.Details)
	assert.Equal(t, "N/A", row.Value)

	row = RowOf(&transactionEntity{t: dto.Transaction{ID: 6}})
	assert.Equal(t, "N/A", row.Primary)
	assert.Equal(t, "No details", row.Details)
	assert.Equal(t, "N/A", row.Value)
}

func TestMatches(t *testing.T) {
	product := &productEntity{p: dto.Product{ID: 12, Name: "Luxury Growth Portfolio", Type: "INVESTMENT", Description: "Managed equities"}}
	user := &userEntity{u: dto.User{ID: 4, Name: "Alice Martin", Email: "alice@example.com"}}
	tx := &transactionEntity{t: dto.Transaction{ID: 77, Category: "Rent", Description: "Monthly rent"}}

	assert.True(t, matches(product, "luxury"))
	assert.True(t, matches(product, "EQUITIES"))
	assert.True(t, matches(product, "12"))
	assert.False(t, matches(product, "alice"))

	assert.True(t, matches(user, "ALICE"))
	assert.True(t, matches(user, "@example"))

	assert.True(t, matches(tx, "rent"))
	assert.True(t, matches(tx, "77"))

	// Empty query matches everything.
	assert.True(t, matches(product, ""))
	assert.True(t, matches(user, ""))
	assert.True(t, matches(tx, ""))
}
