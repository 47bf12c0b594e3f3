package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"proxym-fin/internal/dto"
	"proxym-fin/internal/models"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TransactionService struct {
	transactions TransactionStore
	users        UserStore
	logger       *zap.Logger
}

func NewTransactionService(transactions TransactionStore, users UserStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		users:        users,
		logger:       logger,
	}
}

func (s *TransactionService) List(ctx context.Context) ([]dto.Transaction, error) {
	transactions, err := s.transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	return transactionsToDTO(transactions), nil
}

func (s *TransactionService) ListByUser(ctx context.Context, userID int64) ([]dto.Transaction, error) {
	transactions, err := s.transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return transactionsToDTO(transactions), nil
}

func (s *TransactionService) GetByID(ctx context.Context, id int64) (*dto.Transaction, error) {
	tx, err := s.getTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := transactionToDTO(tx)
	return &resp, nil
}

func (s *TransactionService) Create(ctx context.Context, req *dto.Transaction) (*dto.Transaction, error) {
	tx := transactionFromDTO(req)
	if err := s.validateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	resp := transactionToDTO(tx)
	return &resp, nil
}

func (s *TransactionService) Update(ctx context.Context, id int64, req *dto.Transaction) (*dto.Transaction, error) {
	existing, err := s.getTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	tx := transactionFromDTO(req)
	tx.ID = existing.ID
	if tx.Date.IsZero() {
		tx.Date = existing.Date
	}
	if err := s.validateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, err
	}

	resp := transactionToDTO(tx)
	return &resp, nil
}

func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.getTransaction(ctx, id); err != nil {
		return err
	}
	return s.transactions.Delete(ctx, id)
}

func (s *TransactionService) getTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
		}
		return nil, err
	}
	return tx, nil
}

// validateTransaction enforces the invariants: positive amount, known
// category, and an explicit existing owner.
func (s *TransactionService) validateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.UserID == 0 {
		return fmt.Errorf("%w: transaction owner is required", ErrValidation)
	}
	if !tx.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if !models.ValidCategory(tx.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, tx.Category)
	}
	if _, err := s.users.GetByID(ctx, tx.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, tx.UserID)
		}
		return err
	}
	return nil
}

func transactionsToDTO(transactions []*models.Transaction) []dto.Transaction {
	out := make([]dto.Transaction, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, transactionToDTO(t))
	}
	return out
}

func transactionToDTO(t *models.Transaction) dto.Transaction {
	return dto.Transaction{
		ID:          t.ID,
		UserID:      t.UserID,
		Amount:      t.Amount,
		Category:    string(t.Category),
		Description: t.Description,
		Date:        t.Date,
	}
}

func transactionFromDTO(d *dto.Transaction) *models.Transaction {
	return &models.Transaction{
		ID:          d.ID,
		UserID:      d.UserID,
		Amount:      d.Amount,
		Category:    models.TransactionCategory(d.Category),
		Description: d.Description,
		Date:        d.Date,
	}
}
