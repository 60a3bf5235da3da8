package entity

import "time"

// ConversationStep tags where a sender is inside the WhatsApp order flow.
type ConversationStep string

const (
	StepSelectingCategory ConversationStep = "selecting_category"
	StepSelectingProduct  ConversationStep = "selecting_product"
	StepSelectingQuantity ConversationStep = "selecting_quantity"
	StepConfirmingOrder   ConversationStep = "confirming_order"
	StepCollectingAddress ConversationStep = "collecting_address"
)

type CartItem struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
}

// ConversationSession is the per-sender state of an open order flow,
// keyed by normalized phone. It lives in the session store, not the database.
type ConversationSession struct {
	Phone       string           `json:"phone"`
	LeadID      string           `json:"lead_id"`
	Step        ConversationStep `json:"step"`
	Category    string           `json:"category,omitempty"`
	ProductID   string           `json:"product_id,omitempty"`
	ProductName string           `json:"product_name,omitempty"`
	// ProductPrice is captured at selection time so the cart never has to
	// re-resolve the product by name.
	ProductPrice float64 `json:"product_price,omitempty"`
	Cart        []CartItem       `json:"cart"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (s *ConversationSession) CartTotal() float64 {
	total := 0.0
	for _, item := range s.Cart {
		total += float64(item.Quantity) * item.PricePerUnit
	}
	return total
}
