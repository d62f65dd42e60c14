package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/luxefashion/go-storefront/internal/notify"
)

// ContactHandler forwards contact-form submissions to the Telegram
// webhook. One attempt, no retry; a failure is reported back for the UI
// toast and otherwise forgotten.
type ContactHandler struct {
	Telegram *notify.Telegram
}

func (h *ContactHandler) Register(r *chi.Mux) {
	r.Post("/api/contact", h.submit)
}

type contactReq struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (h *ContactHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req contactReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}
	if !h.Telegram.Enabled() {
		writeError(w, http.StatusServiceUnavailable, errors.New("contact webhook not configured"))
		return
	}
	if err := h.Telegram.Send(r.Context(), req.Name, req.Phone, req.Message); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
