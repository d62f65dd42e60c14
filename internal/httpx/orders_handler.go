package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luxefashion/go-storefront/internal/orders"
)

// OrdersHandler runs checkout: it forwards the cart and customer details
// to the remote order endpoint and reports the outcome. The cart is only
// cleared after the endpoint confirms success.
type OrdersHandler struct {
	Checkout *orders.Checkout
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/api/orders", h.submit)
}

func (h *OrdersHandler) submit(w http.ResponseWriter, r *http.Request) {
	var customer orders.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	res, err := h.Checkout.Submit(r.Context(), customer)
	switch {
	case errors.Is(err, orders.ErrMissingCustomer), errors.Is(err, orders.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, orders.ErrSubmitFailed):
		writeError(w, http.StatusBadGateway, err)
	case err != nil:
		writeError(w, http.StatusBadGateway, err)
	default:
		writeJSON(w, http.StatusOK, res)
	}
}
