package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurant-ordering/internal/adapters/auth/jwtauth"
	"restaurant-ordering/internal/middleware"
	"restaurant-ordering/internal/platform/logger"
	"restaurant-ordering/internal/ports/auth"
)

const (
	testSecret       = "router-test-secret"
	testBaseDomain   = "comanda.test"
	platformEmail    = "root@platform.test"
	platformPassword = "root-password-1"
)

// -------------------------
// Helpers
// -------------------------

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	h, stop, err := New(Options{
		JWTSecret:  []byte(testSecret),
		BaseDomain: testBaseDomain,
		Log:        logger.New(logger.Options{Level: logger.Error}),
		AuthLimit:  Limit{MaxRequests: 5, Window: time.Minute},
		APILimit:   Limit{MaxRequests: 1000, Window: time.Minute},
		Bootstrap: &BootstrapSuperAdmin{
			Email:    platformEmail,
			Name:     "Root",
			Password: platformPassword,
		},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(stop)
	return h
}

func doJSON(t *testing.T, h http.Handler, method, path string, headers map[string]string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

type errBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func wantError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	var e errBody
	decodeBody(t, rec, &e)
	if e.Success || e.Code != code {
		t.Fatalf("error body = %+v, want code %s", e, code)
	}
}

func platformToken(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/platform/auth/login", nil, map[string]string{
		"email":    platformEmail,
		"password": platformPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("platform login status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &out)
	return out.Token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func withTenant(headers map[string]string, tenantID string) map[string]string {
	out := map[string]string{middleware.OverrideHeader: tenantID}
	for k, v := range headers {
		out[k] = v
	}
	return out
}

func createTenant(t *testing.T, h http.Handler, token, name, subdomain string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/platform/tenants", bearer(token), map[string]string{
		"name":      name,
		"subdomain": subdomain,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create tenant status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var out struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &out)
	return out.ID
}

// createAdmin alta vía super-admin: credencial de plataforma sin tenant,
// scoped por el header de override.
func createAdmin(t *testing.T, h http.Handler, token, tenantID, email, role string) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/admins", withTenant(bearer(token), tenantID), map[string]any{
		"email":    email,
		"name":     "Admin " + email,
		"password": "secret-pass-1",
		"role":     role,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create admin status = %d (body %s)", rec.Code, rec.Body.String())
	}
}

func adminLogin(t *testing.T, h http.Handler, tenantID, email string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/auth/login", withTenant(nil, tenantID), map[string]string{
		"email":    email,
		"password": "secret-pass-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("admin login status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &out)
	return out.Token
}

func createMenuItem(t *testing.T, h http.Handler, adminTok, tenantID string, priceCents int64) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/menu/categories", withTenant(bearer(adminTok), tenantID), map[string]any{
		"name": "Principales",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var cat struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &cat)

	rec = doJSON(t, h, http.MethodPost, "/menu/items", withTenant(bearer(adminTok), tenantID), map[string]any{
		"category_id": cat.ID,
		"name":        "Milanesa napolitana",
		"price_cents": priceCents,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create item status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var item struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &item)
	return item.ID
}

// -------------------------
// Tests
// -------------------------

func TestHealth(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
}

func TestPlatform_TenantLifecycle(t *testing.T) {
	h := newTestHandler(t)
	tok := platformToken(t, h)

	tenantID := createTenant(t, h, tok, "La Esquina", "esquina")

	// Subdominio ya tomado.
	rec := doJSON(t, h, http.MethodPost, "/platform/tenants", bearer(tok), map[string]string{
		"name":      "Otro",
		"subdomain": "esquina",
	})
	wantError(t, rec, http.StatusConflict, middleware.CodeConflict)

	// Público responde mientras el tenant está activo.
	rec = doJSON(t, h, http.MethodGet, "/restaurant", withTenant(nil, tenantID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public restaurant status = %d (body %s)", rec.Code, rec.Body.String())
	}

	// Suspensión corta el acceso de inmediato, incluso con cache tibio.
	rec = doJSON(t, h, http.MethodPost, "/platform/tenants/"+tenantID+"/suspend", bearer(tok), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("suspend status = %d (body %s)", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, h, http.MethodGet, "/restaurant", withTenant(nil, tenantID), nil)
	wantError(t, rec, http.StatusForbidden, middleware.CodeTenantInactive)

	rec = doJSON(t, h, http.MethodPost, "/platform/tenants/"+tenantID+"/activate", bearer(tok), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("activate status = %d", rec.Code)
	}

	// Suscripción vencida: 402 en toda la superficie del tenant.
	rec = doJSON(t, h, http.MethodPut, "/platform/tenants/"+tenantID+"/subscription", bearer(tok), map[string]string{
		"status": "past_due",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("subscription status = %d (body %s)", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, h, http.MethodGet, "/restaurant", withTenant(nil, tenantID), nil)
	wantError(t, rec, http.StatusPaymentRequired, middleware.CodeSubscriptionInactive)
}

func TestTenantResolution_BySubdomain(t *testing.T) {
	h := newTestHandler(t)
	tok := platformToken(t, h)
	createTenant(t, h, tok, "Demo", "demo")

	req := httptest.NewRequest(http.MethodGet, "/restaurant", nil)
	req.Host = "demo." + testBaseDomain
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("subdomain resolve status = %d (body %s)", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/restaurant", nil)
	req.Host = "nadie." + testBaseDomain
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	wantError(t, rec, http.StatusNotFound, middleware.CodeTenantNotFound)

	// Host sin subdominio no resuelve tenant.
	req = httptest.NewRequest(http.MethodGet, "/restaurant", nil)
	req.Host = testBaseDomain
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	wantError(t, rec, http.StatusNotFound, middleware.CodeTenantNotFound)
}

func TestAuth_Failures(t *testing.T) {
	h := newTestHandler(t)
	tok := platformToken(t, h)
	tenantA := createTenant(t, h, tok, "A", "tienda-a")
	tenantB := createTenant(t, h, tok, "B", "tienda-b")
	createAdmin(t, h, tok, tenantA, "owner@a.test", "owner")
	adminTok := adminLogin(t, h, tenantA, "owner@a.test")

	// Sin header en ruta protegida.
	rec := doJSON(t, h, http.MethodGet, "/admins", withTenant(nil, tenantA), nil)
	wantError(t, rec, http.StatusUnauthorized, middleware.CodeNoToken)

	// Token basura.
	rec = doJSON(t, h, http.MethodGet, "/admins", withTenant(bearer("garbage"), tenantA), nil)
	wantError(t, rec, http.StatusUnauthorized, middleware.CodeTokenInvalid)

	// Token de A replayado contra B.
	rec = doJSON(t, h, http.MethodGet, "/admins", withTenant(bearer(adminTok), tenantB), nil)
	wantError(t, rec, http.StatusForbidden, middleware.CodeTenantMismatch)

	// Token vencido.
	signer, err := jwtauth.NewSigner([]byte(testSecret))
	if err != nil {
		t.Fatalf("NewSigner error: %v", err)
	}
	expired, err := signer.Sign(context.Background(), auth.Claims{
		SubjectID: "alguien",
		TenantID:  tenantA,
		Type:      auth.TypeAdmin,
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	rec = doJSON(t, h, http.MethodGet, "/admins", withTenant(bearer(expired), tenantA), nil)
	wantError(t, rec, http.StatusUnauthorized, middleware.CodeTokenExpired)
}

func TestAuthorization_PermissionAndTypeGates(t *testing.T) {
	h := newTestHandler(t)
	tok := platformToken(t, h)
	tenantID := createTenant(t, h, tok, "Gates", "gates")
	createAdmin(t, h, tok, tenantID, "staff@gates.test", "staff")
	staffTok := adminLogin(t, h, tenantID, "staff@gates.test")

	// Staff no tiene menu:write.
	rec := doJSON(t, h, http.MethodPost, "/menu/categories", withTenant(bearer(staffTok), tenantID), map[string]any{
		"name": "Postres",
	})
	wantError(t, rec, http.StatusForbidden, middleware.CodeInsufficientPerms)

	// Un admin no puede usar rutas de customer.
	rec = doJSON(t, h, http.MethodPost, "/orders", withTenant(bearer(staffTok), tenantID), map[string]any{
		"lines": []map[string]any{{"menu_item_id": "x", "quantity": 1}},
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("admin on customer route status = %d (body %s)", rec.Code, rec.Body.String())
	}
}

func TestRateLimit_LoginAttempts(t *testing.T) {
	h := newTestHandler(t)

	bad := map[string]string{"email": platformEmail, "password": "nope"}
	for i := 0; i < 5; i++ {
		rec := doJSON(t, h, http.MethodPost, "/platform/auth/login", nil, bad)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want 401", i+1, rec.Code)
		}
		if rec.Header().Get("X-RateLimit-Remaining") == "" {
			t.Fatalf("attempt %d missing X-RateLimit-Remaining", i+1)
		}
	}

	rec := doJSON(t, h, http.MethodPost, "/platform/auth/login", nil, bad)
	wantError(t, rec, http.StatusTooManyRequests, middleware.CodeRateLimitExceeded)
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("429 without Retry-After")
	}
}

func TestMenu_PublicReadNeedsNoToken(t *testing.T) {
	h := newTestHandler(t)
	tok := platformToken(t, h)
	tenantID := createTenant(t, h, tok, "Abierto", "abierto")

	// El GET público responde anónimo aunque conviva con el CRUD de
	// staff bajo /menu, incluso para un tenant recién creado sin menú.
	rec := doJSON(t, h, http.MethodGet, "/menu", withTenant(nil, tenantID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous GET /menu status = %d (body %s)", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Cache") == "" {
		t.Fatalf("anonymous GET /menu missing X-Cache header")
	}

	// Las rutas de staff bajo el mismo prefijo siguen gateadas.
	rec = doJSON(t, h, http.MethodPost, "/menu/categories", withTenant(nil, tenantID), map[string]any{
		"name": "Postres",
	})
	wantError(t, rec, http.StatusUnauthorized, middleware.CodeNoToken)
}

func TestMenu_ResponseCacheAndPurgeOnWrite(t *testing.T) {
	h := newTestHandler(t)
	tok := platformToken(t, h)
	tenantID := createTenant(t, h, tok, "Cache", "cache")
	createAdmin(t, h, tok, tenantID, "owner@cache.test", "owner")
	adminTok := adminLogin(t, h, tenantID, "owner@cache.test")
	itemID := createMenuItem(t, h, adminTok, tenantID, 850000)

	// Primer GET llena el cache.
	rec := doJSON(t, h, http.MethodGet, "/menu", withTenant(nil, tenantID), nil)
	if rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first GET: status %d, X-Cache %q", rec.Code, rec.Header().Get("X-Cache"))
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}

	rec = doJSON(t, h, http.MethodGet, "/menu", withTenant(nil, tenantID), nil)
	if rec.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second GET: X-Cache %q, want HIT", rec.Header().Get("X-Cache"))
	}

	// Revalidación condicional.
	rec = doJSON(t, h, http.MethodGet, "/menu", withTenant(map[string]string{"If-None-Match": etag}, tenantID), nil)
	if rec.Code != http.StatusNotModified {
		t.Fatalf("conditional GET status = %d, want 304", rec.Code)
	}

	// Una escritura purga: el próximo GET es MISS con el precio nuevo.
	rec = doJSON(t, h, http.MethodPatch, "/menu/items/"+itemID, withTenant(bearer(adminTok), tenantID), map[string]any{
		"price_cents": 990000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch item status = %d (body %s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/menu", withTenant(nil, tenantID), nil)
	if rec.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("GET after write: X-Cache %q, want MISS", rec.Header().Get("X-Cache"))
	}
	if !strings.Contains(rec.Body.String(), "990000") {
		t.Fatalf("menu after write does not reflect new price: %s", rec.Body.String())
	}
}

func TestOrders_CustomerAndStaffFlow(t *testing.T) {
	h := newTestHandler(t)
	tok := platformToken(t, h)
	tenantID := createTenant(t, h, tok, "Pedidos", "pedidos")
	createAdmin(t, h, tok, tenantID, "owner@pedidos.test", "owner")
	adminTok := adminLogin(t, h, tenantID, "owner@pedidos.test")
	itemID := createMenuItem(t, h, adminTok, tenantID, 850000)

	// Registro de customer emite sesión directa.
	rec := doJSON(t, h, http.MethodPost, "/auth/customer/register", withTenant(nil, tenantID), map[string]string{
		"email":    "cliente@pedidos.test",
		"name":     "Cliente",
		"password": "cliente-pass-1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("customer register status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var session struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &session)

	rec = doJSON(t, h, http.MethodPost, "/orders", withTenant(bearer(session.Token), tenantID), map[string]any{
		"lines": []map[string]any{{"menu_item_id": itemID, "quantity": 2}},
		"notes": "sin sal",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("place order status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var placed struct {
		ID         string `json:"id"`
		Status     string `json:"status"`
		TotalCents int64  `json:"total_cents"`
	}
	decodeBody(t, rec, &placed)
	if placed.Status != "placed" || placed.TotalCents != 1700000 {
		t.Fatalf("placed order = %+v", placed)
	}

	rec = doJSON(t, h, http.MethodGet, "/orders/mine", withTenant(bearer(session.Token), tenantID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("orders/mine status = %d (body %s)", rec.Code, rec.Body.String())
	}

	// Staff no puede saltear estados.
	rec = doJSON(t, h, http.MethodPut, "/orders/"+placed.ID+"/status", withTenant(bearer(adminTok), tenantID), map[string]string{
		"status": "ready",
	})
	wantError(t, rec, http.StatusConflict, middleware.CodeOrderBadState)

	for _, status := range []string{"accepted", "preparing"} {
		rec = doJSON(t, h, http.MethodPut, "/orders/"+placed.ID+"/status", withTenant(bearer(adminTok), tenantID), map[string]string{
			"status": status,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("transition to %s status = %d (body %s)", status, rec.Code, rec.Body.String())
		}
	}

	// Ya en cocina: el customer no puede cancelar.
	rec = doJSON(t, h, http.MethodPost, "/orders/"+placed.ID+"/cancel", withTenant(bearer(session.Token), tenantID), nil)
	wantError(t, rec, http.StatusConflict, middleware.CodeOrderBadState)
}
