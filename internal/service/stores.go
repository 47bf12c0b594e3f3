package service

import (
	"context"
	"errors"

	"proxym-fin/internal/models"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("validation failed")
)

// UserStore captures the persistence operations the services need. The
// postgres repositories satisfy these; tests substitute in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	List(ctx context.Context) ([]*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
}

type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	List(ctx context.Context) ([]*models.Transaction, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Transaction, error)
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id int64) error
}
