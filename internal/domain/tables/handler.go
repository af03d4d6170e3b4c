package tables

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"restaurant-ordering/internal/middleware"
)

// RegisterRoutes monta el CRUD de mesas (gate tables:write en el router,
// salvo los GET que solo piden staff autenticado).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/tables", func(tr chi.Router) {
		tr.Post("/", createTableHandler(svc))
		tr.Get("/", listTablesHandler(svc))
		tr.Get("/{tableID}", getTableHandler(svc))
		tr.Patch("/{tableID}", updateTableHandler(svc))
	})
}

type createTableRequest struct {
	Number int `json:"number"`
	Seats  int `json:"seats"`
}

type updateTableRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Seats  *int  `json:"seats"`
	Active *bool `json:"active"`
}

type tableResponse struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	Seats     int       `json:"seats"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func createTableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		var req createTableRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		t, err := svc.Create(r.Context(), tenant.ID, CreateInput{
			Number: req.Number,
			Seats:  req.Seats,
		})
		if err != nil {
			writeTableError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toTableResponse(t))
	}
}

func listTablesHandler(svc *Service) http.HandlerFunc {
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

		out := make([]tableResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTableResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getTableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		t, err := svc.GetByID(r.Context(), tenant.ID, chi.URLParam(r, "tableID"))
		if err != nil {
			writeTableError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTableResponse(t))
	}
}

func updateTableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		var req updateTableRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		t, err := svc.Update(r.Context(), tenant.ID, chi.URLParam(r, "tableID"), Patch{
			Seats:  req.Seats,
			Active: req.Active,
		})
		if err != nil {
			writeTableError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTableResponse(t))
	}
}

func writeTableError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, err.Error())
	case errors.Is(err, ErrNumberTaken):
		middleware.WriteError(w, http.StatusConflict, middleware.CodeConflict, err.Error())
	case errors.Is(err, ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, middleware.CodeNotFound, "table not found")
	default:
		middleware.WriteError(w, http.StatusInternalServerError, middleware.CodeInternal, "internal error")
	}
}

func toTableResponse(t Table) tableResponse {
	return tableResponse{
		ID:        t.ID,
		Number:    t.Number,
		Seats:     t.Seats,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
