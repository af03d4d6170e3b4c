package superadmins

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"restaurant-ordering/internal/middleware"
)

// RegisterAuthRoutes monta el login de plataforma (sin tenant).
func RegisterAuthRoutes(r chi.Router, svc *Service) {
	r.Post("/auth/login", platformLoginHandler(svc))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token      string             `json:"token"`
	SuperAdmin superAdminResponse `json:"super_admin"`
}

type superAdminResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func platformLoginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		sa, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInactive):
				middleware.WriteError(w, http.StatusForbidden, middleware.CodeAccountInactive, "account is deactivated")
			default:
				middleware.WriteError(w, http.StatusUnauthorized, middleware.CodeInvalidInput, "invalid credentials")
			}
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			Token: token,
			SuperAdmin: superAdminResponse{
				ID:    sa.ID,
				Email: sa.Email,
				Name:  sa.Name,
			},
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
