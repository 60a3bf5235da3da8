package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"

	PaymentStatusPending   = "pending"
	PaymentStatusPartial   = "partial"
	PaymentStatusCompleted = "completed"
)

type Order struct {
	ID              string      `json:"id"`
	LeadID          string      `json:"lead_id"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerEmail   string      `json:"customer_email,omitempty"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"payment_status"`
	TotalAmount     float64     `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address,omitempty"`
	SourcePlatform  string      `json:"source_platform"`
	Notes           string      `json:"notes,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

type OrderItem struct {
	OrderID      string  `json:"order_id"`
	ProductID    string  `json:"product_id"`
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit_at_time_of_order"`
	Subtotal     float64 `json:"subtotal"`
}

func NewOrder(leadID, customerName, customerPhone, customerEmail, shippingAddress, notes, sourcePlatform string) *Order {
	return &Order{
		ID:              uuid.New().String(),
		LeadID:          leadID,
		CustomerName:    customerName,
		CustomerPhone:   customerPhone,
		CustomerEmail:   customerEmail,
		Status:          OrderStatusPending,
		PaymentStatus:   PaymentStatusPending,
		ShippingAddress: shippingAddress,
		SourcePlatform:  sourcePlatform,
		Notes:           notes,
		CreatedAt:       time.Now(),
	}
}

type OrderRepositoryInterface interface {
	Create(ctx context.Context, o *Order) error
	CreateItems(ctx context.Context, orderID string, items []OrderItem) error
	// Delete is the compensating action when item persistence fails after the
	// order row was already written.
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Order, error)
}
