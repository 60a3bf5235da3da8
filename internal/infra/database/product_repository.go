package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/echtwell/echt-crm/internal/entity"
)

type ProductRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category, price, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query, p.ID, p.Name, p.Category, p.Price, p.Active, p.CreatedAt)
	return err
}

func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	query := `
		SELECT id, name, category, price, active, created_at
		FROM products
		WHERE active = TRUE AND LOWER(category) = LOWER($1)
		ORDER BY name
	`

	rows, err := r.DB.QueryContext(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*entity.Product, error) {
	query := `
		SELECT id, name, category, price, active, created_at
		FROM products
		WHERE active = TRUE AND name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT 1
	`

	p := &entity.Product{}
	err := r.DB.QueryRowContext(ctx, query, name).Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &p.Active, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	query := `
		SELECT id, name, category, price, active, created_at
		FROM products
		WHERE active = TRUE
		ORDER BY category, name
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]entity.Product, error) {
	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
