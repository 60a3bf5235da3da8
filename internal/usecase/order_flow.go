package usecase

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/echtwell/echt-crm/internal/entity"
	"github.com/echtwell/echt-crm/internal/infra/session"
)

// OrderCategories is the storefront shown at the top of the flow.
var OrderCategories = []string{"Webinars", "Scrolls", "Healing Camps"}

// OrderFlowUseCase drives the multi-step WhatsApp order conversation:
// selecting_category → selecting_product → selecting_quantity →
// confirming_order → collecting_address → order created.
//
// An unparsable reply re-prompts and leaves the step unchanged; "cancel"
// aborts at any step.
type OrderFlowUseCase struct {
	Sessions    session.Store
	Products    entity.ProductRepositoryInterface
	CreateOrder *CreateOrderUseCase
	Sender      MessageSender
}

func NewOrderFlowUseCase(
	sessions session.Store,
	products entity.ProductRepositoryInterface,
	createOrder *CreateOrderUseCase,
	sender MessageSender,
) *OrderFlowUseCase {
	return &OrderFlowUseCase{
		Sessions:    sessions,
		Products:    products,
		CreateOrder: createOrder,
		Sender:      sender,
	}
}

// Start opens a session for the sender and shows the category list.
func (uc *OrderFlowUseCase) Start(ctx context.Context, phone string, lead LeadInfo) error {
	sess := &entity.ConversationSession{
		Phone:  phone,
		LeadID: lead.ID,
		Step:   entity.StepSelectingCategory,
		Cart:   []entity.CartItem{},
	}
	if err := uc.Sessions.Put(ctx, sess); err != nil {
		return &TechnicalError{Code: "SESSION_WRITE_FAILED", Message: err.Error()}
	}

	return uc.Sender.SendText(ctx, phone, categoryPrompt())
}

// Continue feeds the sender's reply into whatever step their session is on.
func (uc *OrderFlowUseCase) Continue(ctx context.Context, phone, text string) error {
	sess, err := uc.Sessions.Get(ctx, phone)
	if err != nil {
		return &TechnicalError{Code: "SESSION_READ_FAILED", Message: err.Error()}
	}

	reply := strings.TrimSpace(text)
	if strings.EqualFold(reply, "cancel") {
		if err := uc.Sessions.Delete(ctx, phone); err != nil {
			log.Printf("⚠️ failed to delete session for %s: %v", phone, err)
		}
		return uc.Sender.SendText(ctx, phone, `Your order has been cancelled. Type "order" any time to start again.`)
	}

	switch sess.Step {
	case entity.StepSelectingCategory:
		return uc.handleCategory(ctx, sess, reply)
	case entity.StepSelectingProduct:
		return uc.handleProduct(ctx, sess, reply)
	case entity.StepSelectingQuantity:
		return uc.handleQuantity(ctx, sess, reply)
	case entity.StepConfirmingOrder:
		return uc.handleConfirmation(ctx, sess, reply)
	case entity.StepCollectingAddress:
		return uc.handleAddress(ctx, sess, reply)
	default:
		// unknown step tag, reset to a known starting point
		sess.Step = entity.StepSelectingCategory
		if err := uc.Sessions.Put(ctx, sess); err != nil {
			return &TechnicalError{Code: "SESSION_WRITE_FAILED", Message: err.Error()}
		}
		return uc.Sender.SendText(ctx, sess.Phone, categoryPrompt())
	}
}

func (uc *OrderFlowUseCase) handleCategory(ctx context.Context, sess *entity.ConversationSession, reply string) error {
	idx, ok := parseChoice(reply, OrderCategories)
	if !ok {
		return uc.Sender.SendText(ctx, sess.Phone, "Sorry, I didn't catch that.\n"+categoryPrompt())
	}
	category := OrderCategories[idx]

	products, err := uc.Products.FindByCategory(ctx, category)
	if err != nil {
		return &TechnicalError{Code: "PRODUCT_LOOKUP_FAILED", Message: err.Error()}
	}
	if len(products) == 0 {
		return uc.Sender.SendText(ctx, sess.Phone,
			fmt.Sprintf("We have nothing in %s right now.\n%s", category, categoryPrompt()))
	}

	sess.Category = category
	sess.Step = entity.StepSelectingProduct
	if err := uc.Sessions.Put(ctx, sess); err != nil {
		return &TechnicalError{Code: "SESSION_WRITE_FAILED", Message: err.Error()}
	}

	return uc.Sender.SendText(ctx, sess.Phone, productPrompt(category, products))
}

func (uc *OrderFlowUseCase) handleProduct(ctx context.Context, sess *entity.ConversationSession, reply string) error {
	products, err := uc.Products.FindByCategory(ctx, sess.Category)
	if err != nil {
		return &TechnicalError{Code: "PRODUCT_LOOKUP_FAILED", Message: err.Error()}
	}

	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}

	idx, ok := parseChoice(reply, names)
	if !ok {
		return uc.Sender.SendText(ctx, sess.Phone, "Sorry, I didn't catch that.\n"+productPrompt(sess.Category, products))
	}
	chosen := products[idx]

	sess.ProductID = chosen.ID
	sess.ProductName = chosen.Name
	sess.ProductPrice = chosen.Price
	sess.Step = entity.StepSelectingQuantity
	if err := uc.Sessions.Put(ctx, sess); err != nil {
		return &TechnicalError{Code: "SESSION_WRITE_FAILED", Message: err.Error()}
	}

	return uc.Sender.SendText(ctx, sess.Phone,
		fmt.Sprintf("How many of %s would you like? Type a number.", chosen.Name))
}

func (uc *OrderFlowUseCase) handleQuantity(ctx context.Context, sess *entity.ConversationSession, reply string) error {
	qty, err := strconv.Atoi(reply)
	if err != nil || qty <= 0 {
		return uc.Sender.SendText(ctx, sess.Phone,
			fmt.Sprintf("Please type a positive number for how many of %s you want.", sess.ProductName))
	}

	// the selection step already pinned id, name and price
	sess.Cart = append(sess.Cart, entity.CartItem{
		ProductID:    sess.ProductID,
		Name:         sess.ProductName,
		Quantity:     qty,
		PricePerUnit: sess.ProductPrice,
	})
	sess.ProductID = ""
	sess.ProductName = ""
	sess.ProductPrice = 0
	sess.Step = entity.StepConfirmingOrder
	if err := uc.Sessions.Put(ctx, sess); err != nil {
		return &TechnicalError{Code: "SESSION_WRITE_FAILED", Message: err.Error()}
	}

	return uc.Sender.SendText(ctx, sess.Phone, cartPrompt(sess))
}

func (uc *OrderFlowUseCase) handleConfirmation(ctx context.Context, sess *entity.ConversationSession, reply string) error {
	lower := strings.ToLower(reply)

	switch {
	case lower == "confirm" || lower == "yes":
		sess.Step = entity.StepCollectingAddress
		if err := uc.Sessions.Put(ctx, sess); err != nil {
			return &TechnicalError{Code: "SESSION_WRITE_FAILED", Message: err.Error()}
		}
		return uc.Sender.SendText(ctx, sess.Phone, "Great! Please share your shipping address.")

	case lower == "add" || lower == "more":
		sess.Step = entity.StepSelectingCategory
		if err := uc.Sessions.Put(ctx, sess); err != nil {
			return &TechnicalError{Code: "SESSION_WRITE_FAILED", Message: err.Error()}
		}
		return uc.Sender.SendText(ctx, sess.Phone, categoryPrompt())

	default:
		return uc.Sender.SendText(ctx, sess.Phone, cartPrompt(sess))
	}
}

func (uc *OrderFlowUseCase) handleAddress(ctx context.Context, sess *entity.ConversationSession, reply string) error {
	if reply == "" {
		return uc.Sender.SendText(ctx, sess.Phone, "Please share your shipping address.")
	}

	order, err := uc.CreateOrder.Execute(ctx, CreateOrderInput{
		LeadID:          sess.LeadID,
		CustomerPhone:   sess.Phone,
		Cart:            sess.Cart,
		ShippingAddress: reply,
		Notes:           "Order placed via WhatsApp chatbot.",
	})
	if err != nil {
		log.Printf("❌ order creation failed for %s: %v", sess.Phone, err)
		return uc.Sender.SendText(ctx, sess.Phone, "Sorry, there was an issue placing your order. Please try again later.")
	}

	if err := uc.Sessions.Delete(ctx, sess.Phone); err != nil {
		log.Printf("⚠️ failed to delete session for %s: %v", sess.Phone, err)
	}

	confirmation := fmt.Sprintf(
		"Thank you! Your order #%s for %d item(s) (Total: ₹%.2f) has been placed successfully. We will contact you shortly for confirmation and payment. Source: WhatsApp.",
		shortID(order.ID), len(order.Items), order.TotalAmount,
	)
	// the order stands even if the confirmation never leaves
	if err := uc.Sender.SendText(ctx, sess.Phone, confirmation); err != nil {
		log.Printf("⚠️ failed to send order confirmation to %s: %v", sess.Phone, err)
	}

	return nil
}

func categoryPrompt() string {
	lines := make([]string, len(OrderCategories))
	for i, c := range OrderCategories {
		lines[i] = fmt.Sprintf("%d. %s", i+1, c)
	}
	return "Welcome to our store! Please choose a product category:\n" +
		strings.Join(lines, "\n") + "\nType the number or name."
}

func productPrompt(category string, products []entity.Product) string {
	lines := make([]string, len(products))
	for i, p := range products {
		lines[i] = fmt.Sprintf("%d. %s (₹%.2f)", i+1, p.Name, p.Price)
	}
	return fmt.Sprintf("Products in %s:\n%s\nType the number or name.", category, strings.Join(lines, "\n"))
}

func cartPrompt(sess *entity.ConversationSession) string {
	lines := make([]string, len(sess.Cart))
	for i, item := range sess.Cart {
		lines[i] = fmt.Sprintf("- %s x%d @ ₹%.2f", item.Name, item.Quantity, item.PricePerUnit)
	}
	return fmt.Sprintf(
		"Your cart:\n%s\nTotal: ₹%.2f\nType \"confirm\" to place the order, \"add\" for more items, or \"cancel\".",
		strings.Join(lines, "\n"), sess.CartTotal(),
	)
}

// parseChoice accepts either the 1-based position or a (substring of the)
// option name, case-insensitively.
func parseChoice(reply string, options []string) (int, bool) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(reply); err == nil {
		if n >= 1 && n <= len(options) {
			return n - 1, true
		}
		return 0, false
	}

	lower := strings.ToLower(reply)
	for i, opt := range options {
		optLower := strings.ToLower(opt)
		if optLower == lower || strings.Contains(optLower, lower) {
			return i, true
		}
	}

	return 0, false
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
