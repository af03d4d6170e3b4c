package menus

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"restaurant-ordering/internal/middleware"
)

// Uploader sube la imagen de un item y devuelve su URL pública.
// Lo satisface el adapter de CDN.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

const maxImageBytes = 5 << 20

// RegisterPublicRoutes monta la vista pública del menú. El response
// cache lo envuelve el router.
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Get("/menu", getMenuHandler(svc))
}

// RegisterRoutes monta el CRUD de menú para staff (gate menu:write en
// el router). Toda escritura purga el cache público del menú.
// Paths completos, sin subrouter: un Route("/menu") acá capturaría el
// match exacto de GET /menu y el público pasaría por el gate de auth.
func RegisterRoutes(r chi.Router, svc *Service, uploader Uploader, respCache *middleware.ResponseCache) {
	r.Post("/menu/categories", createCategoryHandler(svc, respCache))
	r.Get("/menu/categories", listCategoriesHandler(svc))
	r.Patch("/menu/categories/{categoryID}", updateCategoryHandler(svc, respCache))

	r.Post("/menu/items", createItemHandler(svc, respCache))
	r.Get("/menu/items/{itemID}", getItemHandler(svc))
	r.Patch("/menu/items/{itemID}", updateItemHandler(svc, respCache))
	r.Post("/menu/items/{itemID}/image", uploadItemImageHandler(svc, uploader, respCache))
}

type categoryRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type categoryPatchRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string `json:"name"`
	SortOrder *int    `json:"sort_order"`
	Active    *bool   `json:"active"`
}

type itemRequest struct {
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
}

type itemPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents"`
	CategoryID  *string `json:"category_id"`
	Available   *bool   `json:"available"`
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type itemResponse struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	ImageURL    string    `json:"image_url,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type menuSectionResponse struct {
	Category categoryResponse `json:"category"`
	Items    []itemResponse   `json:"items"`
}

func getMenuHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		sections, err := svc.Menu(r.Context(), tenant.ID)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.CodeInternal, "internal error")
			return
		}

		out := make([]menuSectionResponse, 0, len(sections))
		for _, s := range sections {
			items := make([]itemResponse, 0, len(s.Items))
			for _, it := range s.Items {
				items = append(items, toItemResponse(it))
			}
			out = append(out, menuSectionResponse{Category: toCategoryResponse(s.Category), Items: items})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createCategoryHandler(svc *Service, respCache *middleware.ResponseCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		c, err := svc.CreateCategory(r.Context(), tenant.ID, CategoryInput{
			Name:      req.Name,
			SortOrder: req.SortOrder,
		})
		if err != nil {
			writeMenuError(w, err)
			return
		}

		respCache.Purge("menu", tenant.ID)
		writeJSON(w, http.StatusCreated, toCategoryResponse(c))
	}
}

func listCategoriesHandler(svc *Service) http.HandlerFunc {
	// Vista de staff: incluye categorías inactivas.
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		items, err := svc.ListCategories(r.Context(), tenant.ID)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.CodeInternal, "internal error")
			return
		}

		out := make([]categoryResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCategoryResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateCategoryHandler(svc *Service, respCache *middleware.ResponseCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		var req categoryPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		c, err := svc.UpdateCategory(r.Context(), tenant.ID, chi.URLParam(r, "categoryID"), CategoryPatch{
			Name:      req.Name,
			SortOrder: req.SortOrder,
			Active:    req.Active,
		})
		if err != nil {
			writeMenuError(w, err)
			return
		}

		respCache.Purge("menu", tenant.ID)
		writeJSON(w, http.StatusOK, toCategoryResponse(c))
	}
}

func createItemHandler(svc *Service, respCache *middleware.ResponseCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		var req itemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		it, err := svc.CreateItem(r.Context(), tenant.ID, ItemInput{
			CategoryID:  req.CategoryID,
			Name:        req.Name,
			Description: req.Description,
			PriceCents:  req.PriceCents,
		})
		if err != nil {
			writeMenuError(w, err)
			return
		}

		respCache.Purge("menu", tenant.ID)
		writeJSON(w, http.StatusCreated, toItemResponse(it))
	}
}

func getItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		it, err := svc.GetItem(r.Context(), tenant.ID, chi.URLParam(r, "itemID"))
		if err != nil {
			writeMenuError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toItemResponse(it))
	}
}

func updateItemHandler(svc *Service, respCache *middleware.ResponseCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		var req itemPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid json")
			return
		}

		it, err := svc.UpdateItem(r.Context(), tenant.ID, chi.URLParam(r, "itemID"), ItemPatch{
			Name:        req.Name,
			Description: req.Description,
			PriceCents:  req.PriceCents,
			CategoryID:  req.CategoryID,
			Available:   req.Available,
		})
		if err != nil {
			writeMenuError(w, err)
			return
		}

		respCache.Purge("menu", tenant.ID)
		writeJSON(w, http.StatusOK, toItemResponse(it))
	}
}

// uploadItemImageHandler recibe multipart (campo "image"), sube al CDN
// y guarda la URL resultante en el item.
func uploadItemImageHandler(svc *Service, uploader Uploader, respCache *middleware.ResponseCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFrom(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.CodeTenantNotFound, "restaurant not found")
			return
		}

		if uploader == nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.CodeInternal, "image uploads not configured")
			return
		}

		itemID := chi.URLParam(r, "itemID")
		if _, err := svc.GetItem(r.Context(), tenant.ID, itemID); err != nil {
			writeMenuError(w, err)
			return
		}

		if err := r.ParseMultipartForm(maxImageBytes); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid multipart body")
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, "image field required")
			return
		}
		defer file.Close()

		url, err := uploader.Upload(r.Context(), header.Filename, io.LimitReader(file, maxImageBytes))
		if err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.CodeInternal, "image upload failed")
			return
		}

		it, err := svc.SetItemImage(r.Context(), tenant.ID, itemID, url)
		if err != nil {
			writeMenuError(w, err)
			return
		}

		respCache.Purge("menu", tenant.ID)
		writeJSON(w, http.StatusOK, toItemResponse(it))
	}
}

func writeMenuError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		middleware.WriteError(w, http.StatusBadRequest, middleware.CodeInvalidInput, err.Error())
	case errors.Is(err, ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, middleware.CodeNotFound, "not found")
	default:
		middleware.WriteError(w, http.StatusInternalServerError, middleware.CodeInternal, "internal error")
	}
}

func toCategoryResponse(c Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		SortOrder: c.SortOrder,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toItemResponse(it Item) itemResponse {
	return itemResponse{
		ID:          it.ID,
		CategoryID:  it.CategoryID,
		Name:        it.Name,
		Description: it.Description,
		PriceCents:  it.PriceCents,
		ImageURL:    it.ImageURL,
		Available:   it.Available,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
