package service

import (
	"context"
	"errors"
	"fmt"

	"proxym-fin/internal/dto"
	"proxym-fin/internal/models"
	"proxym-fin/pkg/auth"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserService struct {
	users  UserStore
	logger *zap.Logger
}

func NewUserService(users UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

func (s *UserService) List(ctx context.Context) ([]dto.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.User, 0, len(users))
	for _, u := range users {
		out = append(out, userToDTO(u))
	}
	return out, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*dto.User, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := userToDTO(user)
	return &resp, nil
}

func (s *UserService) Create(ctx context.Context, req *dto.User) (*dto.User, error) {
	if existing, _ := s.users.GetByEmail(ctx, req.Email); existing != nil {
		return nil, ErrEmailInUse
	}

	user := userFromDTO(req)
	user.ApplyDefaults()

	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	resp := userToDTO(user)
	return &resp, nil
}

// Update is full-record replace. An empty password keeps the stored hash.
func (s *UserService) Update(ctx context.Context, id int64, req *dto.User) (*dto.User, error) {
	existing, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := userFromDTO(req)
	updated.ID = existing.ID
	updated.Password = existing.Password
	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		updated.Password = hashed
	}

	if err := s.users.Update(ctx, updated); err != nil {
		return nil, err
	}

	resp := userToDTO(updated)
	return &resp, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.getUser(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *UserService) getUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

// userToDTO never copies password material into the wire shape.
func userToDTO(u *models.User) dto.User {
	return dto.User{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           string(u.Role),
		Age:            u.Age,
		MonthlyIncome:  u.MonthlyIncome,
		Balance:        u.Balance,
		RiskProfile:    string(u.RiskProfile),
		FinancialGoals: u.FinancialGoals,
	}
}

func userFromDTO(d *dto.User) *models.User {
	return &models.User{
		ID:             d.ID,
		Name:           d.Name,
		Email:          d.Email,
		Role:           models.Role(d.Role),
		Age:            d.Age,
		MonthlyIncome:  d.MonthlyIncome,
		Balance:        d.Balance,
		RiskProfile:    models.RiskProfile(d.RiskProfile),
		FinancialGoals: d.FinancialGoals,
	}
}
