package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"restaurant-ordering/internal/middleware"
)

// RegisterAuthRoutes monta el login de staff. Va detrás del rate limit
// de auth pero no exige token.
func RegisterAuthRoutes(r chi.Router, svc *Service) {
	r.Post("/auth/login", loginHandler(svc))
}

// RegisterRoutes monta el CRUD de staff. El gate de permisos
// (admins:manage) lo pone el router.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/admins", func(ar chi.Router) {
		ar.Post("/", createAdminHandler(svc))
		ar.Get("/", listAdminsHandler(svc))
		ar.Get("/{adminID}", getAdminHandler(svc))
		ar.Patch("/{adminID}", updateAdminHandler(svc))
		ar.Post("/{adminID}/deactivate", setAdminActiveHandler(svc, false))
		ar.Post("/{adminID}/activate", setAdminActiveHandler(svc, true))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string        `json:"token"`
	Admin adminResponse `json:"admin"`
}

type createAdminRequest struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type updateAdminRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string   `json:"name"`
	Role        *string   `json:"role"`
	Permissions *[]string `json:"permissions"`
}

type adminResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		a, token, err := svc.Login(r.Context(), tenant.ID, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInactive):
				middleware.WriteError(w, http.StatusForbidden, middleware.CodeAccountInactive, "account is deactivated")
			default:
				// Credencial mala y email inexistente responden igual.
				middleware.WriteError(w, http.StatusUnauthorized, middleware.CodeInvalidInput, "invalid credentials")
			}
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{Token: token, Admin: toAdminResponse(a)})
	}
}

func createAdminHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		var req createAdminRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		a, err := svc.Create(r.Context(), tenant.ID, CreateInput{
			Email:       req.Email,
			Name:        req.Name,
			Password:    req.Password,
			Role:        Role(req.Role),
			Permissions: req.Permissions,
		})
		if err != nil {
			writeAdminError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAdminResponse(a))
	}
}

func listAdminsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		items, err := svc.ListByTenant(r.Context(), tenant.ID)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.CodeInternal, "internal error")
			return
		}

		out := make([]adminResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAdminResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAdminHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		a, err := svc.GetByID(r.Context(), tenant.ID, chi.URLParam(r, "adminID"))
		if err != nil {
			writeAdminError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdminResponse(a))
	}
}

func updateAdminHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		var req updateAdminRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		var role *Role
		if req.Role != nil {
			rr := Role(*req.Role)
			role = &rr
		}

		a, err := svc.Update(r.Context(), tenant.ID, chi.URLParam(r, "adminID"), UpdateInput{
			Name:        req.Name,
			Role:        role,
			Permissions: req.Permissions,
		})
		if err != nil {
			writeAdminError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdminResponse(a))
	}
}

func setAdminActiveHandler(svc *Service, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		a, err := svc.SetActive(r.Context(), tenant.ID, chi.URLParam(r, "adminID"), active)
		if err != nil {
			writeAdminError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdminResponse(a))
	}
}

func writeAdminError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, err.Error())
	case errors.Is(err, ErrEmailTaken):
		middleware.WriteError(w, http.StatusConflict, middleware.CodeConflict, err.Error())
	case errors.Is(err, ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, middleware.CodeNotFound, "admin not found")
	default:
		middleware.WriteError(w, http.StatusInternalServerError, middleware.CodeInternal, "internal error")
	}
}

func toAdminResponse(a Admin) adminResponse {
	return adminResponse{
		ID:          a.ID,
		Email:       a.Email,
		Name:        a.Name,
		Role:        string(a.Role),
		Permissions: a.Permissions,
		Active:      a.Active,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
