package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"restaurant-ordering/internal/middleware"
	"restaurant-ordering/internal/ports/auth"
	"restaurant-ordering/internal/ports/tenancy"
)

// RegisterCustomerRoutes monta el flujo del comensal: ordenar, ver sus
// pedidos y cancelar mientras cocina no arrancó.
func RegisterCustomerRoutes(r chi.Router, svc *Service) {
	r.Post("/orders", placeOrderHandler(svc))
	r.Get("/orders/mine", listMyOrdersHandler(svc))
	r.Post("/orders/{orderID}/cancel", cancelOrderHandler(svc))
}

// RegisterStaffReadRoutes monta la vista de cocina/salón (gate
// orders:read en el router).
func RegisterStaffReadRoutes(r chi.Router, svc *Service) {
	r.Get("/orders", listOrdersHandler(svc))
	r.Get("/orders/{orderID}", getOrderHandler(svc))
}

func RegisterStaffWriteRoutes(r chi.Router, svc *Service) {
	r.Put("/orders/{orderID}/status", transitionOrderHandler(svc))
}

type placeOrderRequest struct {
	TableID string             `json:"table_id"`
	Lines   []orderLineRequest `json:"lines"`
	Notes   string             `json:"notes"`
}

type orderLineRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

type transitionRequest struct {
	Status string `json:"status"`
}

type orderLineResponse struct {
	MenuItemID     string `json:"menu_item_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id,omitempty"`
	TableID    string              `json:"table_id,omitempty"`
	Lines      []orderLineResponse `json:"lines"`
	Status     string              `json:"status"`
	TotalCents int64               `json:"total_cents"`
	Notes      string              `json:"notes,omitempty"`
	PlacedAt   time.Time           `json:"placed_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func placeOrderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, p, ok := tenantAndCustomer(w, r)
		if !ok {
			return
		}

		var req placeOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		lines := make([]LineInput, 0, len(req.Lines))
		for _, li := range req.Lines {
			lines = append(lines, LineInput{MenuItemID: li.MenuItemID, Quantity: li.Quantity})
		}

		o, err := svc.Place(r.Context(), tenant.ID, PlaceInput{
			CustomerID: p.Customer.ID,
			TableID:    req.TableID,
			Lines:      lines,
			Notes:      req.Notes,
		})
		if err != nil {
			writeOrderError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toOrderResponse(o))
	}
}

func listMyOrdersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, p, ok := tenantAndCustomer(w, r)
		if !ok {
			return
		}

		items, err := svc.ListByCustomer(r.Context(), tenant.ID, p.Customer.ID)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.CodeInternal, "internal error")
			return
		}

		out := make([]orderResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOrderResponse(o))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func cancelOrderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, p, ok := tenantAndCustomer(w, r)
		if !ok {
			return
		}

		o, err := svc.CancelByCustomer(r.Context(), tenant.ID, chi.URLParam(r, "orderID"), p.Customer.ID)
		if err != nil {
			writeOrderError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponse(o))
	}
}

func listOrdersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		items, err := svc.ListByTenant(r.Context(), tenant.ID, Status(r.URL.Query().Get("status")))
		if err != nil {
			writeOrderError(w, err)
			return
		}

		out := make([]orderResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOrderResponse(o))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getOrderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		o, err := svc.GetByID(r.Context(), tenant.ID, chi.URLParam(r, "orderID"))
		if err != nil {
			writeOrderError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponse(o))
	}
}

func transitionOrderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		var req transitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		o, err := svc.Transition(r.Context(), tenant.ID, chi.URLParam(r, "orderID"), Status(req.Status))
		if err != nil {
			writeOrderError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponse(o))
	}
}

// tenantAndCustomer resuelve el par (tenant, principal de comensal)
// que todo el flujo del cliente necesita. Escribe el error si falta
// alguno de los dos.
func tenantAndCustomer(w http.ResponseWriter, r *http.Request) (tenancy.Tenant, auth.Principal, bool) {
	tenant, ok := middleware.TenantFrom(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
		return tenancy.Tenant{}, auth.Principal{}, false
	}
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok || p.Customer == nil {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.CodeNotAuthenticated, "authentication required")
		return tenancy.Tenant{}, auth.Principal{}, false
	}
	return tenant, p, true
}

func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, err.Error())
	case errors.Is(err, ErrItemNotOrderable):
		middleware.WriteError(w, http.StatusUnprocessableEntity, middleware.CodeInvalidInput, err.Error())
	case errors.Is(err, ErrBadState):
		middleware.WriteError(w, http.StatusConflict, middleware.CodeOrderBadState, err.Error())
	case errors.Is(err, ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, middleware.CodeNotFound, "order not found")
	default:
		middleware.WriteError(w, http.StatusInternalServerError, middleware.CodeInternal, "internal error")
	}
}

func toOrderResponse(o Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLineResponse{
			MenuItemID:     l.MenuItemID,
			Name:           l.Name,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
			SubtotalCents:  l.SubtotalCents(),
		})
	}
	return orderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		TableID:    o.TableID,
		Lines:      lines,
		Status:     string(o.Status),
		TotalCents: o.TotalCents,
		Notes:      o.Notes,
		PlacedAt:   o.PlacedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
