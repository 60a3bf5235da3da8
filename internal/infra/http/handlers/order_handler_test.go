package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/echtwell/echt-crm/internal/entity"
	"github.com/echtwell/echt-crm/internal/usecase"
)

func newOrderFixture() (*OrderHandler, *MockLeadRepository, *MockProductRepository, *MockOrderRepository, *MockSender) {
	leads := new(MockLeadRepository)
	products := new(MockProductRepository)
	orders := new(MockOrderRepository)
	sender := new(MockSender)

	intake := usecase.NewIntakeOrderUseCase(
		usecase.NewResolveLeadUseCase(leads),
		products,
		usecase.NewCreateOrderUseCase(orders, leads),
		sender,
	)
	return NewOrderHandler(intake, orders), leads, products, orders, sender
}

func TestCreateOrderEndpoint(t *testing.T) {
	handler, leads, products, orders, sender := newOrderFixture()

	leads.On("FindByPhone", mock.Anything, "918526454931").Return(&entity.Lead{ID: "lead-1"}, nil)
	products.On("FindByName", mock.Anything, "Healing Scroll").Return(
		&entity.Product{ID: "prod-2", Name: "Healing Scroll", Price: 1200.0}, nil,
	)
	orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	orders.On("CreateItems", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	sender.On("SendText", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	body := `{"customer_phone":"8526454931","customer_name":"Asha","items":[{"product_name":"Healing Scroll","quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/create-order", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, 1200.0, resp["total_amount"])
	assert.NotEmpty(t, resp["order_id"])
}

func TestCreateOrderEndpoint_ValidationFailureIs400(t *testing.T) {
	handler, _, _, _, _ := newOrderFixture()

	body := `{"customer_phone":"8526454931","customer_name":"Asha","items":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/create-order", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
}

func TestGetOrderEndpoint(t *testing.T) {
	handler, _, _, orders, _ := newOrderFixture()

	orders.On("FindByID", mock.Anything, "order-1").Return(&entity.Order{
		ID:          "order-1",
		TotalAmount: 1200.0,
		Items:       []entity.OrderItem{{ProductID: "prod-2", Quantity: 1}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/order-1", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "order-1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	handler.Get(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got entity.Order
	json.Unmarshal(w.Body.Bytes(), &got)
	assert.Equal(t, "order-1", got.ID)
	assert.Len(t, got.Items, 1)
}

func TestGetOrderEndpoint_NotFound(t *testing.T) {
	handler, _, _, orders, _ := newOrderFixture()

	orders.On("FindByID", mock.Anything, "order-404").Return(nil, entity.ErrOrderNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/order-404", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "order-404")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	handler.Get(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
