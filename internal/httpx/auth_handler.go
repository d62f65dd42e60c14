package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luxefashion/go-storefront/internal/auth"
	"github.com/luxefashion/go-storefront/internal/cart"
)

// AuthHandler exposes login, registration, logout and session inspection.
// Login and logout also switch the cart to the new identity's scoped key.
type AuthHandler struct {
	Sessions *auth.Manager
	Registry *auth.Registry
	Cart     *cart.Cart
}

func (h *AuthHandler) Register(r *chi.Mux) {
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/register", h.register)
	r.Post("/api/auth/logout", h.logout)
	r.Get("/api/auth/session", h.session)
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	s, err := h.Sessions.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := h.Cart.SwitchUser(r.Context(), s.Identity.ID); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type registerReq struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// register performs the form-layer checks (length, confirmation) before
// handing uniqueness to the registry, same split as the original forms.
func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Username == "" || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}
	if len(req.Password) < 6 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "parol kamida 6 ta belgidan iborat bo'lishi kerak"})
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "parollar mos kelmadi"})
		return
	}

	u, err := h.Registry.Register(r.Context(), req.Username, req.Email, req.Password)
	if errors.Is(err, auth.ErrUsernameTaken) || errors.Is(err, auth.ErrEmailTaken) {
		writeError(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"id":       u.ID,
		"username": u.Username,
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := h.Cart.SwitchUser(r.Context(), ""); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Sessions.Current()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, s)
}
