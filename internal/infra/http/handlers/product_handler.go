package handlers

import (
	"net/http"

	"github.com/echtwell/echt-crm/internal/entity"
)

type ProductHandler struct {
	ProductRepo entity.ProductRepositoryInterface
}

func NewProductHandler(productRepo entity.ProductRepositoryInterface) *ProductHandler {
	return &ProductHandler{ProductRepo: productRepo}
}

// List returns the active catalog, optionally filtered by ?category=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var (
		products []entity.Product
		err      error
	)
	if category != "" {
		products, err = h.ProductRepo.FindByCategory(r.Context(), category)
	} else {
		products, err = h.ProductRepo.List(r.Context())
	}
	if err != nil {
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": products, "count": len(products)})
}
