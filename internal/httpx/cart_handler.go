package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luxefashion/go-storefront/internal/cart"
	"github.com/luxefashion/go-storefront/internal/catalog"
)

// CartHandler exposes the cart reducer over HTTP. Every mutation persists
// before the response is written.
type CartHandler struct {
	Cart    *cart.Cart
	Catalog *catalog.Cache
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Get("/api/cart", h.get)
	r.Post("/api/cart/items", h.add)
	r.Put("/api/cart/items/{id}", h.updateQuantity)
	r.Delete("/api/cart/items/{id}", h.remove)
	r.Delete("/api/cart", h.clear)
}

type cartView struct {
	Items      []cart.LineItem `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalCents int64           `json:"totalCents"`
	Total      string          `json:"total"`
}

func (h *CartHandler) view() cartView {
	total := h.Cart.Total()
	return cartView{
		Items:      h.Cart.Items(),
		TotalItems: h.Cart.TotalItems(),
		TotalCents: int64(total),
		Total:      total.String(),
	}
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.view())
}

type addReq struct {
	ProductID     string `json:"productId"`
	SelectedColor string `json:"selectedColor"`
	SelectedSize  string `json:"selectedSize"`
	Quantity      int    `json:"quantity"`
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	var req addReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	p, ok := h.Catalog.ByID(req.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("mahsulot topilmadi"))
		return
	}

	item := cart.NewLineItem(p.ID, p.Name, p.Price, p.Image(),
		req.SelectedColor, req.SelectedSize, req.Quantity)
	if err := h.Cart.Add(r.Context(), item); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view())
}

type quantityReq struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if err := h.Cart.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), req.Quantity); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.Cart.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Cart.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view())
}
