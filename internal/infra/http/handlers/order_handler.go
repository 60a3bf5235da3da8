package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/echtwell/echt-crm/internal/entity"
	"github.com/echtwell/echt-crm/internal/usecase"
)

type OrderHandler struct {
	IntakeOrder *usecase.IntakeOrderUseCase
	OrderRepo   entity.OrderRepositoryInterface
}

func NewOrderHandler(intake *usecase.IntakeOrderUseCase, orderRepo entity.OrderRepositoryInterface) *OrderHandler {
	return &OrderHandler{IntakeOrder: intake, OrderRepo: orderRepo}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.IntakeOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	output, err := h.IntakeOrder.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "An unexpected error occurred."})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":         true,
		"message":         "Order created successfully!",
		"order_id":        output.OrderID,
		"total_amount":    output.TotalAmount,
		"items_processed": output.ItemsProcessed,
	})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.OrderRepo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
