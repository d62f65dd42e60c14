package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luxefashion/go-storefront/internal/auth"
	"github.com/luxefashion/go-storefront/internal/catalog"
)

var errAdminOnly = errors.New("faqat admin uchun")

// CatalogHandler serves the cached product views plus the admin CRUD
// pass-through. CRUD requires an active admin session; remote failures
// surface as 502 and leave the cache untouched.
type CatalogHandler struct {
	Catalog  *catalog.Cache
	Sessions *auth.Manager
}

func (h *CatalogHandler) Register(r *chi.Mux) {
	r.Get("/api/products", h.list)
	r.Get("/api/products/new", h.newCollection)
	r.Get("/api/products/bestsellers", h.bestsellers)
	r.Get("/api/products/{id}", h.get)
	r.Post("/api/products", h.requireAdmin(h.create))
	r.Put("/api/products/{id}", h.requireAdmin(h.update))
	r.Delete("/api/products/{id}", h.requireAdmin(h.delete))
}

func (h *CatalogHandler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.Sessions.IsAdmin() {
			writeError(w, http.StatusForbidden, errAdminOnly)
			return
		}
		next(w, r)
	}
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"products":  h.Catalog.All(),
		"isLoading": h.Catalog.Loading(),
	})
}

func (h *CatalogHandler) newCollection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.NewCollection())
}

func (h *CatalogHandler) bestsellers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Bestsellers())
}

func (h *CatalogHandler) get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Catalog.ByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("mahsulot topilmadi"))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) create(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	created, err := h.Catalog.Create(r.Context(), p)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) update(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	updated, err := h.Catalog.Update(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
