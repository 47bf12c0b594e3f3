// Package console implements the schema-driven administration engine: one
// code path that lists, searches, creates, edits and deletes the three
// manageable record families.
package console

import (
	"context"
	"fmt"
	"strconv"

	"proxym-fin/internal/client"
	"proxym-fin/internal/dto"

	"github.com/shopspring/decimal"
)

// Kind names a manageable record family.
type Kind string

const (
	KindProduct     Kind = "product"
	KindUser        Kind = "user"
	KindTransaction Kind = "transaction"
)

// Kinds returns every registered entity kind in display order.
func Kinds() []Kind {
	return []Kind{KindProduct, KindUser, KindTransaction}
}

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldPassword FieldType = "password"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldTextArea FieldType = "textarea"
)

// Field describes one editable form field of an entity kind.
type Field struct {
	Name     string
	Label    string
	Type     FieldType
	Options  []string
	Required bool
}

// Entity is one record of any kind, viewed through its flat attribute set.
type Entity interface {
	EntityID() int64
	Attrs() Attrs
}

// Attrs is the uniform attribute view the table projection and the search
// filter operate on. Absent attributes stay zero.
type Attrs struct {
	ID           int64
	Name         string
	Category     string
	Type         string
	Email        string
	Description  string
	InterestRate *float64
	Amount       decimal.Decimal
	RiskProfile  string
}

// Schema binds an entity kind to its collection, form fields, defaults and
// remote operations.
type Schema struct {
	Kind       Kind
	Collection string
	Fields     []Field

	// New returns a draft with the kind's default field values; Clone a
	// shallow copy of an existing record for editing.
	New   func() Entity
	Clone func(Entity) Entity

	apply    func(Entity, string, string) error
	validate func(Entity) error

	list   func(context.Context, *client.Client) ([]Entity, error)
	create func(context.Context, *client.Client, Entity) error
	update func(context.Context, *client.Client, Entity) error
	remove func(context.Context, *client.Client, int64) error
}

// Apply writes a form value into a draft, coercing numbers and rejecting
// values that do not parse. Unknown field names are a programming error.
func (s Schema) Apply(draft Entity, field, value string) error {
	return s.apply(draft, field, value)
}

// SchemaFor returns the schema of a kind. An unrecognized kind is a
// programming error and panics.
func SchemaFor(kind Kind) Schema {
	switch kind {
	case KindProduct:
		return productSchema
	case KindUser:
		return userSchema
	case KindTransaction:
		return transactionSchema
	default:
		panic(fmt.Sprintf("console: unknown entity kind %q", kind))
	}
}

// --- product ---

type productEntity struct {
	p dto.Product
}

func (e *productEntity) EntityID() int64 { return e.p.ID }

func (e *productEntity) Attrs() Attrs {
	rate := e.p.InterestRate
	return Attrs{
		ID:           e.p.ID,
		Name:         e.p.Name,
		Type:         e.p.Type,
		Description:  e.p.Description,
		InterestRate: &rate,
	}
}

var productSchema = Schema{
	Kind:       KindProduct,
	Collection: "products",
	Fields: []Field{
		{Name: "name", Label: "Product Name", Type: FieldText, Required: true},
		{Name: "type", Label: "Type", Type: FieldSelect, Options: []string{"SAVINGS", "INVESTMENT", "LOAN", "INSURANCE"}},
		{Name: "description", Label: "Description", Type: FieldTextArea, Required: true},
		{Name: "interestRate", Label: "Interest Rate %", Type: FieldNumber, Required: true},
		{Name: "minimumEntry", Label: "Min Entry", Type: FieldNumber, Required: true},
	},
	New: func() Entity {
		return &productEntity{p: dto.Product{Type: "SAVINGS"}}
	},
	Clone: func(e Entity) Entity {
		copied := *(e.(*productEntity))
		return &copied
	},
	apply: func(e Entity, field, value string) error {
		p := &e.(*productEntity).p
		switch field {
		case "name":
			p.Name = value
		case "type":
			p.Type = value
		case "description":
			p.Description = value
		case "interestRate":
			rate, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("interest rate must be a number: %w", err)
			}
			p.InterestRate = rate
		case "minimumEntry":
			entry, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("minimum entry must be a number: %w", err)
			}
			p.MinimumEntry = entry
		default:
			panic(fmt.Sprintf("console: unknown product field %q", field))
		}
		return nil
	},
	validate: func(e Entity) error {
		p := e.(*productEntity).p
		if p.Name == "" {
			return fmt.Errorf("product name is required")
		}
		if p.Description == "" {
			return fmt.Errorf("description is required")
		}
		return nil
	},
	list: func(ctx context.Context, rc *client.Client) ([]Entity, error) {
		products, err := rc.Products(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Entity, 0, len(products))
		for _, p := range products {
			out = append(out, &productEntity{p: p})
		}
		return out, nil
	},
	create: func(ctx context.Context, rc *client.Client, e Entity) error {
		_, err := rc.CreateProduct(ctx, e.(*productEntity).p)
		return err
	},
	update: func(ctx context.Context, rc *client.Client, e Entity) error {
		_, err := rc.UpdateProduct(ctx, e.(*productEntity).p)
		return err
	},
	remove: func(ctx context.Context, rc *client.Client, id int64) error {
		return rc.DeleteProduct(ctx, id)
	},
}

// --- user ---

type userEntity struct {
	u dto.User
}

func (e *userEntity) EntityID() int64 { return e.u.ID }

func (e *userEntity) Attrs() Attrs {
	return Attrs{
		ID:          e.u.ID,
		Name:        e.u.Name,
		Email:       e.u.Email,
		RiskProfile: e.u.RiskProfile,
	}
}

var userSchema = Schema{
	Kind:       KindUser,
	Collection: "users",
	Fields: []Field{
		{Name: "name", Label: "Full Name", Type: FieldText, Required: true},
		{Name: "email", Label: "Email", Type: FieldEmail, Required: true},
		// Always blank in the form; empty on save means "unchanged".
		{Name: "password", Label: "Password", Type: FieldPassword},
		{Name: "age", Label: "Age", Type: FieldNumber, Required: true},
		{Name: "monthlyIncome", Label: "Monthly Income", Type: FieldNumber, Required: true},
		{Name: "riskProfile", Label: "Risk Profile", Type: FieldSelect, Options: []string{"Low", "Medium", "High"}},
		{Name: "financialGoals", Label: "Financial Goals", Type: FieldText},
	},
	New: func() Entity {
		return &userEntity{u: dto.User{
			Age:            18,
			RiskProfile:    "Medium",
			FinancialGoals: "Savings",
		}}
	},
	Clone: func(e Entity) Entity {
		copied := *(e.(*userEntity))
		// The server never sends password material; the edit form must not
		// start with any either.
		copied.u.Password = ""
		return &copied
	},
	apply: func(e Entity, field, value string) error {
		u := &e.(*userEntity).u
		switch field {
		case "name":
			u.Name = value
		case "email":
			u.Email = value
		case "password":
			u.Password = value
		case "age":
			age, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("age must be a number: %w", err)
			}
			u.Age = age
		case "monthlyIncome":
			income, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("monthly income must be a number: %w", err)
			}
			u.MonthlyIncome = income
		case "riskProfile":
			u.RiskProfile = value
		case "financialGoals":
			u.FinancialGoals = value
		default:
			panic(fmt.Sprintf("console: unknown user field %q", field))
		}
		return nil
	},
	validate: func(e Entity) error {
		u := e.(*userEntity).u
		if u.Name == "" {
			return fmt.Errorf("name is required")
		}
		if u.Email == "" {
			return fmt.Errorf("email is required")
		}
		return nil
	},
	list: func(ctx context.Context, rc *client.Client) ([]Entity, error) {
		users, err := rc.Users(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Entity, 0, len(users))
		for _, u := range users {
			out = append(out, &userEntity{u: u})
		}
		return out, nil
	},
	create: func(ctx context.Context, rc *client.Client, e Entity) error {
		_, err := rc.CreateUser(ctx, e.(*userEntity).u)
		return err
	},
	update: func(ctx context.Context, rc *client.Client, e Entity) error {
		_, err := rc.UpdateUser(ctx, e.(*userEntity).u)
		return err
	},
	remove: func(ctx context.Context, rc *client.Client, id int64) error {
		return rc.DeleteUser(ctx, id)
	},
}

// --- transaction ---

type transactionEntity struct {
	t dto.Transaction
}

func (e *transactionEntity) EntityID() int64 { return e.t.ID }

func (e *transactionEntity) Attrs() Attrs {
	return Attrs{
		ID:          e.t.ID,
		Category:    e.t.Category,
		Description: e.t.Description,
		Amount:      e.t.Amount,
	}
}

var transactionSchema = Schema{
	Kind:       KindTransaction,
	Collection: "transactions",
	Fields: []Field{
		// The owner is an explicit required input; transactions are never
		// silently attached to a fallback user.
		{Name: "userId", Label: "Owner User ID", Type: FieldNumber, Required: true},
		{Name: "amount", Label: "Amount", Type: FieldNumber, Required: true},
		{Name: "category", Label: "Category", Type: FieldSelect, Options: []string{"Food", "Rent", "Investment", "Subscription", "Entertainment"}},
		{Name: "description", Label: "Description", Type: FieldText},
	},
	New: func() Entity {
		return &transactionEntity{t: dto.Transaction{Category: "Food"}}
	},
	Clone: func(e Entity) Entity {
		copied := *(e.(*transactionEntity))
		return &copied
	},
	apply: func(e Entity, field, value string) error {
		t := &e.(*transactionEntity).t
		switch field {
		case "userId":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("owner user id must be a number: %w", err)
			}
			t.UserID = id
		case "amount":
			amount, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("amount must be a number: %w", err)
			}
			t.Amount = amount
		case "category":
			t.Category = value
		case "description":
			t.Description = value
		default:
			panic(fmt.Sprintf("console: unknown transaction field %q", field))
		}
		return nil
	},
	validate: func(e Entity) error {
		t := e.(*transactionEntity).t
		if t.UserID == 0 {
			return fmt.Errorf("transaction owner is required")
		}
		if !t.Amount.IsPositive() {
			return fmt.Errorf("amount must be positive")
		}
		return nil
	},
	list: func(ctx context.Context, rc *client.Client) ([]Entity, error) {
		transactions, err := rc.Transactions(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Entity, 0, len(transactions))
		for _, t := range transactions {
			out = append(out, &transactionEntity{t: t})
		}
		return out, nil
	},
	create: func(ctx context.Context, rc *client.Client, e Entity) error {
		_, err := rc.CreateTransaction(ctx, e.(*transactionEntity).t)
		return err
	},
	update: func(ctx context.Context, rc *client.Client, e Entity) error {
		_, err := rc.UpdateTransaction(ctx, e.(*transactionEntity).t)
		return err
	},
	remove: func(ctx context.Context, rc *client.Client, id int64) error {
		return rc.DeleteTransaction(ctx, id)
	},
}
