package repository

import (
	"context"

	"proxym-fin/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ProductRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProductRepository(db *pgxpool.Pool, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

var productColumns = []string{"id", "name", "type", "description", "interest_rate", "minimum_entry"}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := squirrel.Insert("financial_products").
		Columns("name", "type", "description", "interest_rate", "minimum_entry").
		Values(product.Name, product.Type, product.Description, product.InterestRate, product.MinimumEntry).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&product.ID)
}

func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := squirrel.Select(productColumns...).
		From("financial_products").
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Description, &p.InterestRate, &p.MinimumEntry); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}

	return products, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := squirrel.Select(productColumns...).
		From("financial_products").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Product
	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.Name, &p.Type, &p.Description, &p.InterestRate, &p.MinimumEntry)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	query := squirrel.Update("financial_products").
		Set("name", product.Name).
		Set("type", product.Type).
		Set("description", product.Description).
		Set("interest_rate", product.InterestRate).
		Set("minimum_entry", product.MinimumEntry).
		Where(squirrel.Eq{"id": product.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("financial_products").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
