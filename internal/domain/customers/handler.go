package customers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"restaurant-ordering/internal/middleware"
)

// RegisterAuthRoutes monta registro y login de comensales (sin token,
// detrás del rate limit de auth).
func RegisterAuthRoutes(r chi.Router, svc *Service) {
	r.Post("/auth/customer/register", registerHandler(svc))
	r.Post("/auth/customer/login", customerLoginHandler(svc))
}

// RegisterMeRoutes monta el perfil propio del comensal.
func RegisterMeRoutes(r chi.Router, svc *Service) {
	r.Get("/me", meHandler(svc))
}

// RegisterAdminRoutes monta el listado de comensales para staff
// (el gate customers:read lo pone el router).

func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Route("/customers", func(cr chi.Router) {
		cr.Get("/", listCustomersHandler(svc))
		cr.Get("/{customerID}", getCustomerHandler(svc))
	})
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type customerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token    string           `json:"token"`
	Customer customerResponse `json:"customer"`
}

type customerResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		c, token, err := svc.Register(r.Context(), tenant.ID, RegisterInput{
			Email:    req.Email,
			Name:     req.Name,
			Phone:    req.Phone,
			Password: req.Password,
		})
		if err != nil {
			writeCustomerError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, sessionResponse{Token: token, Customer: toCustomerResponse(c)})
	}
}

func customerLoginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		var req customerLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		c, token, err := svc.Login(r.Context(), tenant.ID, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInactive):
				middleware.WriteError(w, http.StatusForbidden, middleware.CodeAccountInactive, "account is deactivated")
			default:
				middleware.WriteError(w, http.StatusUnauthorized, middleware.CodeInvalidInput, "invalid credentials")
			}
			return
		}

		writeJSON(w, http.StatusOK, sessionResponse{Token: token, Customer: toCustomerResponse(c)})
	}
}

func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.PrincipalFrom(r.Context())
		if !ok || p.Customer == nil {
			middleware.WriteError(w, http.StatusUnauthorized, middleware.CodeNotAuthenticated, "authentication required")
			return
		}

		c, err := svc.GetByID(r.Context(), p.Customer.TenantID, p.Customer.ID)
		if err != nil {
			writeCustomerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCustomerResponse(c))
	}
}

func listCustomersHandler(svc *Service) http.HandlerFunc {
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

		out := make([]customerResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCustomerResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getCustomerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		c, err := svc.GetByID(r.Context(), tenant.ID, chi.URLParam(r, "customerID"))
		if err != nil {
			writeCustomerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCustomerResponse(c))
	}
}

func writeCustomerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, err.Error())
	case errors.Is(err, ErrEmailTaken):
		middleware.WriteError(w, http.StatusConflict, middleware.CodeConflict, err.Error())
	case errors.Is(err, ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, middleware.CodeNotFound, "customer not found")
	default:
		middleware.WriteError(w, http.StatusInternalServerError, middleware.CodeInternal, "internal error")
	}
}

func toCustomerResponse(c Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Email:     c.Email,
		Name:      c.Name,
		Phone:     c.Phone,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
