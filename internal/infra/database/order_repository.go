package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/echtwell/echt-crm/internal/entity"
)

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, lead_id, customer_name, customer_phone, customer_email,
		                    status, payment_status, total_amount, shipping_address,
		                    source_platform, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.DB.ExecContext(ctx, query,
		o.ID,
		o.LeadID,
		o.CustomerName,
		o.CustomerPhone,
		nullString(o.CustomerEmail),
		o.Status,
		o.PaymentStatus,
		o.TotalAmount,
		nullString(o.ShippingAddress),
		o.SourcePlatform,
		nullString(o.Notes),
		o.CreatedAt,
	)
	if err != nil {
		log.Printf("❌ order insert failed for lead %s: %v", o.LeadID, err)
	}
	return err
}

func (r *OrderRepository) CreateItems(ctx context.Context, orderID string, items []entity.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, price_per_unit_at_time_of_order, subtotal)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, item := range items {
		subtotal := float64(item.Quantity) * item.PricePerUnit
		if _, err := r.DB.ExecContext(ctx, query,
			orderID, item.ProductID, item.Quantity, item.PricePerUnit, subtotal,
		); err != nil {
			return err
		}
	}

	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	// items first, the FK points at the order
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	return err
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, lead_id, customer_name, customer_phone, COALESCE(customer_email, ''),
		       status, payment_status, total_amount, COALESCE(shipping_address, ''),
		       source_platform, COALESCE(notes, ''), created_at
		FROM orders
		WHERE id = $1
	`

	o := &entity.Order{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&o.ID,
		&o.LeadID,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerEmail,
		&o.Status,
		&o.PaymentStatus,
		&o.TotalAmount,
		&o.ShippingAddress,
		&o.SourcePlatform,
		&o.Notes,
		&o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	itemsQuery := `
		SELECT order_id, product_id, quantity, price_per_unit_at_time_of_order, subtotal
		FROM order_items
		WHERE order_id = $1
	`
	rows, err := r.DB.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.OrderID, &item.ProductID, &item.Quantity, &item.PricePerUnit, &item.Subtotal); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	return o, rows.Err()
}
