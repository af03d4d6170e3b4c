package tenants

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"restaurant-ordering/internal/middleware"
)

// RegisterPublicRoutes monta el perfil público del restaurante.
// El tenant ya viene resuelto por el middleware de tenancy.
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Get("/restaurant", getRestaurantHandler(svc))
}

// RegisterPlatformRoutes monta el CRUD de tenants para super-admins.
func RegisterPlatformRoutes(r chi.Router, svc *Service) {
	r.Route("/tenants", func(tr chi.Router) {
		tr.Post("/", createTenantHandler(svc))
		tr.Get("/", listTenantsHandler(svc))
		tr.Get("/{tenantID}", getTenantHandler(svc))
		tr.Patch("/{tenantID}", updateTenantHandler(svc))
		tr.Post("/{tenantID}/suspend", setActiveHandler(svc, false))
		tr.Post("/{tenantID}/activate", setActiveHandler(svc, true))
		tr.Put("/{tenantID}/subscription", setSubscriptionHandler(svc))
	})
}

type createTenantRequest struct {
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

type updateTenantRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

type subscriptionRequest struct {
	Status string `json:"status"`
}

type tenantResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Subdomain          string    `json:"subdomain"`
	Active             bool      `json:"active"`
	SubscriptionStatus string    `json:"subscription_status"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// restaurantResponse es la vista pública: sin estado de suscripción
// ni flags internos.
type restaurantResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

func getRestaurantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		t, err := svc.GetByID(r.Context(), snap.ID)
		if err != nil {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		writeJSON(w, http.StatusOK, restaurantResponse{
			ID:        t.ID,
			Name:      t.Name,
			Subdomain: t.Subdomain,
			Address:   t.Address,
			Phone:     t.Phone,
		})
	}
}

func createTenantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTenantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		t, err := svc.Create(r.Context(), CreateInput{
			Name:      req.Name,
			Subdomain: req.Subdomain,
			Address:   req.Address,
			Phone:     req.Phone,
		})
		if err != nil {
			writeTenantError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toTenantResponse(t))
	}
}

func listTenantsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.CodeInternal, "internal error")
			return
		}

		out := make([]tenantResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTenantResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getTenantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := svc.GetByID(r.Context(), chi.URLParam(r, "tenantID"))
		if err != nil {
			writeTenantError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTenantResponse(t))
	}
}

func updateTenantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateTenantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		t, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "tenantID"), UpdateProfileInput{
			Name:    req.Name,
			Address: req.Address,
			Phone:   req.Phone,
		})
		if err != nil {
			writeTenantError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTenantResponse(t))
	}
}

func setActiveHandler(svc *Service, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := svc.SetActive(r.Context(), chi.URLParam(r, "tenantID"), active)
		if err != nil {
			writeTenantError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTenantResponse(t))
	}
}

func setSubscriptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req subscriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		t, err := svc.SetSubscription(r.Context(), chi.URLParam(r, "tenantID"), SubscriptionStatus(req.Status))
		if err != nil {
			writeTenantError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTenantResponse(t))
	}
}

func writeTenantError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, err.Error())
	case errors.Is(err, ErrSubdomainTaken):
		middleware.WriteError(w, http.StatusConflict, middleware.CodeConflict, err.Error())
	case errors.Is(err, ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, middleware.CodeNotFound, "tenant not found")
	default:
		middleware.WriteError(w, http.StatusInternalServerError, middleware.CodeInternal, "internal error")
	}
}

func toTenantResponse(t Tenant) tenantResponse {
	return tenantResponse{
		ID:                 t.ID,
		Name:               t.Name,
		Subdomain:          t.Subdomain,
		Active:             t.Active,
		SubscriptionStatus: string(t.SubscriptionStatus),
		Address:            t.Address,
		Phone:              t.Phone,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
