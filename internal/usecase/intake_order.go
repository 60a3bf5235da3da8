package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/echtwell/echt-crm/internal/entity"
)

type IntakeOrderItem struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type IntakeOrderInput struct {
	CustomerPhone   string            `json:"customer_phone"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email,omitempty"`
	Items           []IntakeOrderItem `json:"items"`
	ShippingAddress string            `json:"shipping_address,omitempty"`
	Notes           string            `json:"notes,omitempty"`
}

type IntakeOrderOutput struct {
	OrderID        string  `json:"order_id"`
	TotalAmount    float64 `json:"total_amount"`
	ItemsProcessed int     `json:"items_processed"`
}

// IntakeOrderUseCase takes an order arriving over the API with items named by
// product, prices them from the catalog and hands off to CreateOrder.
type IntakeOrderUseCase struct {
	ResolveLead *ResolveLeadUseCase
	Products    entity.ProductRepositoryInterface
	CreateOrder *CreateOrderUseCase
	Sender      MessageSender
}

func NewIntakeOrderUseCase(
	resolveLead *ResolveLeadUseCase,
	products entity.ProductRepositoryInterface,
	createOrder *CreateOrderUseCase,
	sender MessageSender,
) *IntakeOrderUseCase {
	return &IntakeOrderUseCase{
		ResolveLead: resolveLead,
		Products:    products,
		CreateOrder: createOrder,
		Sender:      sender,
	}
}

func (uc *IntakeOrderUseCase) Execute(ctx context.Context, input IntakeOrderInput) (*IntakeOrderOutput, error) {
	if errs := ValidateIntakeOrderInput(input); len(errs) > 0 {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: joinValidationErrors(errs)}
	}

	phone := uc.Sender.FormatPhoneNumber(input.CustomerPhone)

	lead, err := uc.ResolveLead.Execute(ctx, phone, input.CustomerName, "", "Product Order")
	if err != nil {
		return nil, err
	}

	cart := make([]entity.CartItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, err := uc.Products.FindByName(ctx, item.ProductName)
		if err != nil {
			if errors.Is(err, entity.ErrProductNotFound) {
				log.Printf("skipping unknown product %q in order intake", item.ProductName)
				continue
			}
			return nil, &TechnicalError{Code: "PRODUCT_LOOKUP_FAILED", Message: err.Error()}
		}
		cart = append(cart, entity.CartItem{
			ProductID:    product.ID,
			Name:         product.Name,
			Quantity:     item.Quantity,
			PricePerUnit: product.Price,
		})
	}
	if len(cart) == 0 {
		return nil, &DomainError{
			Code:    "NO_VALID_PRODUCTS",
			Message: "no valid products could be processed for the order",
		}
	}

	order, err := uc.CreateOrder.Execute(ctx, CreateOrderInput{
		LeadID:          lead.ID,
		CustomerName:    input.CustomerName,
		CustomerPhone:   phone,
		CustomerEmail:   input.CustomerEmail,
		Cart:            cart,
		ShippingAddress: input.ShippingAddress,
		Notes:           input.Notes,
	})
	if err != nil {
		return nil, err
	}

	confirmation := fmt.Sprintf(
		"Hi %s, your order (#%s) for ₹%.2f has been received! We will process it shortly. Thank you for shopping with us.",
		input.CustomerName, shortID(order.ID), order.TotalAmount,
	)
	if err := uc.Sender.SendText(ctx, phone, confirmation); err != nil {
		log.Printf("⚠️ failed to send order confirmation to %s: %v", phone, err)
	}

	return &IntakeOrderOutput{
		OrderID:        order.ID,
		TotalAmount:    order.TotalAmount,
		ItemsProcessed: len(cart),
	}, nil
}
