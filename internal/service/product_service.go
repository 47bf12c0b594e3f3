package service

import (
	"context"
	"errors"
	"fmt"

	"proxym-fin/internal/dto"
	"proxym-fin/internal/models"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductService struct {
	products ProductStore
	logger   *zap.Logger
}

func NewProductService(products ProductStore, logger *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		logger:   logger,
	}
}

func (s *ProductService) List(ctx context.Context) ([]dto.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.Product, 0, len(products))
	for _, p := range products {
		out = append(out, productToDTO(p))
	}
	return out, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*dto.Product, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := productToDTO(product)
	return &resp, nil
}

func (s *ProductService) Create(ctx context.Context, req *dto.Product) (*dto.Product, error) {
	product := productFromDTO(req)
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	resp := productToDTO(product)
	return &resp, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, req *dto.Product) (*dto.Product, error) {
	if _, err := s.getProduct(ctx, id); err != nil {
		return nil, err
	}

	product := productFromDTO(req)
	product.ID = id
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	resp := productToDTO(product)
	return &resp, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if _, err := s.getProduct(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

func (s *ProductService) getProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func validateProduct(p *models.Product) error {
	if !models.ValidProductType(p.Type) {
		return fmt.Errorf("%w: unknown product type %q", ErrValidation, p.Type)
	}
	if p.InterestRate < 0 {
		return fmt.Errorf("%w: interest rate must not be negative", ErrValidation)
	}
	if p.MinimumEntry.IsNegative() {
		return fmt.Errorf("%w: minimum entry must not be negative", ErrValidation)
	}
	return nil
}

func productToDTO(p *models.Product) dto.Product {
	return dto.Product{
		ID:           p.ID,
		Name:         p.Name,
		Type:         string(p.Type),
		Description:  p.Description,
		InterestRate: p.InterestRate,
		MinimumEntry: p.MinimumEntry,
	}
}

func productFromDTO(d *dto.Product) *models.Product {
	return &models.Product{
		ID:           d.ID,
		Name:         d.Name,
		Type:         models.ProductType(d.Type),
		Description:  d.Description,
		InterestRate: d.InterestRate,
		MinimumEntry: d.MinimumEntry,
	}
}
