package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

type catalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository builds the Postgres product/firm repository.
func NewCatalogRepository(pool *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{pool: pool}
}

func (r *catalogRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	const query = `INSERT INTO products (name) VALUES ($1) RETURNING id`
	return r.pool.QueryRow(ctx, query, product.Name).Scan(&product.ID)
}

func (r *catalogRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const query = `SELECT id, name FROM products WHERE id=$1`
	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(&product.ID, &product.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const query = `SELECT id, name FROM products ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name); err != nil {
			return nil, err
		}
		result = append(result, product)
	}
	return result, rows.Err()
}

func (r *catalogRepository) CreateFirm(ctx context.Context, firm *domain.Firm) error {
	const query = `INSERT INTO firms (name) VALUES ($1) RETURNING id`
	return r.pool.QueryRow(ctx, query, firm.Name).Scan(&firm.ID)
}

func (r *catalogRepository) CreateFirmProduct(ctx context.Context, link *domain.FirmProduct) error {
	const query = `
        INSERT INTO firm_products (firm_id, product_id)
        VALUES ($1,$2)
        RETURNING id`
	return r.pool.QueryRow(ctx, query, link.FirmID, link.ProductID).Scan(&link.ID)
}
