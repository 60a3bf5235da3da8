package usecase

import (
	"context"
	"log"

	"github.com/echtwell/echt-crm/internal/entity"
)

type CreateOrderInput struct {
	LeadID          string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	Cart            []entity.CartItem
	ShippingAddress string
	Notes           string
}

// CreateOrderUseCase persists an order and its items. The two inserts are not
// one database transaction; a failed item insert triggers a compensating
// delete of the order row.
type CreateOrderUseCase struct {
	Orders entity.OrderRepositoryInterface
	Leads  entity.LeadRepositoryInterface
}

func NewCreateOrderUseCase(orders entity.OrderRepositoryInterface, leads entity.LeadRepositoryInterface) *CreateOrderUseCase {
	return &CreateOrderUseCase{Orders: orders, Leads: leads}
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, input CreateOrderInput) (*entity.Order, error) {
	if len(input.Cart) == 0 {
		return nil, &DomainError{Code: "EMPTY_CART", Message: "cart is empty"}
	}

	customerName := input.CustomerName
	if customerName == "" {
		// denormalize the lead name onto the order
		if lead, err := uc.Leads.FindByID(ctx, input.LeadID); err == nil {
			customerName = lead.Name
		} else {
			customerName = "Valued Customer"
		}
	}

	order := entity.NewOrder(
		input.LeadID,
		customerName,
		input.CustomerPhone,
		input.CustomerEmail,
		input.ShippingAddress,
		input.Notes,
		SourceWhatsApp,
	)

	items := make([]entity.OrderItem, 0, len(input.Cart))
	total := 0.0
	for _, item := range input.Cart {
		subtotal := float64(item.Quantity) * item.PricePerUnit
		total += subtotal
		items = append(items, entity.OrderItem{
			OrderID:      order.ID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PricePerUnit: item.PricePerUnit,
			Subtotal:     subtotal,
		})
	}
	order.TotalAmount = total
	order.Items = items

	txn := NewTransaction()

	txn.AddOperation("create_order", func(ctx context.Context) error {
		return uc.Orders.Create(ctx, order)
	})
	txn.AddCompensation("delete_order", func(ctx context.Context) error {
		return uc.Orders.Delete(ctx, order.ID)
	})

	txn.AddOperation("create_order_items", func(ctx context.Context) error {
		return uc.Orders.CreateItems(ctx, order.ID, items)
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, &TechnicalError{
			Code:    "ORDER_PERSIST_FAILED",
			Message: "failed to persist order and items: " + err.Error(),
		}
	}

	log.Printf("order %s created for lead %s (total %.2f)", order.ID, order.LeadID, order.TotalAmount)
	return order, nil
}
