package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewProduct(name, category string, price float64) *Product {
	return &Product{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  category,
		Price:     price,
		Active:    true,
		CreatedAt: time.Now(),
	}
}

type ProductRepositoryInterface interface {
	Create(ctx context.Context, p *Product) error
	// FindByCategory lists active products of a category, ordered by name.
	FindByCategory(ctx context.Context, category string) ([]Product, error)
	// FindByName matches case-insensitively, returns ErrProductNotFound on no match.
	FindByName(ctx context.Context, name string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
}
