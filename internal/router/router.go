package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"restaurant-ordering/internal/adapters/auth/jwtauth"
	"restaurant-ordering/internal/adapters/auth/principal"
	mem "restaurant-ordering/internal/adapters/storage/memory"
	pg "restaurant-ordering/internal/adapters/storage/postgres"
	"restaurant-ordering/internal/domain/admins"
	"restaurant-ordering/internal/domain/customers"
	"restaurant-ordering/internal/domain/menus"
	"restaurant-ordering/internal/domain/orders"
	"restaurant-ordering/internal/domain/superadmins"
	"restaurant-ordering/internal/domain/tables"
	"restaurant-ordering/internal/domain/tenants"
	"restaurant-ordering/internal/middleware"
	"restaurant-ordering/internal/platform/logger"
	"restaurant-ordering/internal/platform/ratelimit"

	_ "restaurant-ordering/docs"
)

type Options struct {
	// Secreto HMAC para tokens. Obligatorio.
	JWTSecret []byte

	// Dominio base para resolución por subdominio (ej: "comanda.app").
	BaseDomain string

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Uploader de imágenes del menú. Puede ser nil (la ruta de upload
	// responde 502 al intentar subir).
	Uploader menus.Uploader

	Log logger.Logger

	// Límites. Cero => defaults de producción.
	AuthLimit Limit
	APILimit  Limit

	// Primera cuenta de plataforma, creada al arrancar si el email no
	// existe todavía. Pensado para bootstrap desde env.
	Bootstrap *BootstrapSuperAdmin
}

type BootstrapSuperAdmin struct {
	Email    string
	Name     string
	Password string
}

type Limit struct {
	MaxRequests int
	Window      time.Duration
}

func (l Limit) orDefault(max int, window time.Duration) Limit {
	if l.MaxRequests == 0 && l.Window == 0 {
		return Limit{MaxRequests: max, Window: window}
	}
	return l
}

const (
	menuCacheTTL       = 15 * time.Minute
	restaurantCacheTTL = 30 * time.Minute
)

// New arma el router completo con todos los módulos cableados.
// El func devuelto frena los sweeps de fondo de los limiters
// (llamarlo en el shutdown).
func New(opts Options) (http.Handler, func(), error) {
	signer, err := jwtauth.NewSigner(opts.JWTSecret)
	if err != nil {
		return nil, nil, err
	}
	verifier, err := jwtauth.NewVerifier(opts.JWTSecret)
	if err != nil {
		return nil, nil, err
	}

	log := opts.Log
	if log == nil {
		log = logger.New(logger.Options{Level: logger.Info})
	}

	// Repos: postgres si hay DB, in-memory para dev y tests.
	var (
		tenantRepo     tenants.Repository
		adminRepo      admins.Repository
		superAdminRepo superadmins.Repository
		customerRepo   customers.Repository
		menuRepo       menus.Repository
		tableRepo      tables.Repository
		orderRepo      orders.Repository
	)
	if opts.DB != nil {
		tenantRepo = pg.NewTenantsRepo(opts.DB)
		adminRepo = pg.NewAdminsRepo(opts.DB)
		superAdminRepo = pg.NewSuperAdminsRepo(opts.DB)
		customerRepo = pg.NewCustomersRepo(opts.DB)
		menuRepo = pg.NewMenusRepo(opts.DB)
		tableRepo = pg.NewTablesRepo(opts.DB)
		orderRepo = pg.NewOrdersRepo(opts.DB)
	} else {
		tenantRepo = mem.NewTenantRepo()
		adminRepo = mem.NewAdminRepo()
		superAdminRepo = mem.NewSuperAdminRepo()
		customerRepo = mem.NewCustomerRepo()
		menuRepo = mem.NewMenuRepo()
		tableRepo = mem.NewTableRepo()
		orderRepo = mem.NewOrderRepo()
	}

	// Services por módulo
	tenantsSvc := tenants.NewService(tenantRepo)
	adminsSvc := admins.NewService(adminRepo, signer)
	superAdminsSvc := superadmins.NewService(superAdminRepo, signer)
	customersSvc := customers.NewService(customerRepo, signer)
	menusSvc := menus.NewService(menuRepo)
	tablesSvc := tables.NewService(tableRepo)
	ordersSvc := orders.NewService(orderRepo, menusSvc)

	if b := opts.Bootstrap; b != nil {
		_, err := superAdminsSvc.Create(context.Background(), superadmins.CreateInput{
			Email:    b.Email,
			Name:     b.Name,
			Password: b.Password,
		})
		if err != nil && !errors.Is(err, superadmins.ErrEmailTaken) {
			return nil, nil, err
		}
	}

	loader := principal.NewLoader(adminsSvc, superAdminsSvc, customersSvc)

	authLimit := opts.AuthLimit.orDefault(5, 15*time.Minute)
	apiLimit := opts.APILimit.orDefault(100, time.Minute)

	authLimiter := ratelimit.New(ratelimit.Config{
		MaxRequests: authLimit.MaxRequests,
		Window:      authLimit.Window,
	})
	apiLimiter := ratelimit.New(ratelimit.Config{
		MaxRequests: apiLimit.MaxRequests,
		Window:      apiLimit.Window,
	})
	stop := func() {
		authLimiter.Stop()
		apiLimiter.Stop()
	}

	respCache := middleware.NewResponseCache(1000)

	authenticate := middleware.Authenticate(verifier, loader)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Audit(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	// Rutas de plataforma: sin tenant, solo super-admins.
	r.Route("/platform", func(pr chi.Router) {
		pr.Group(func(ar chi.Router) {
			ar.Use(middleware.RateLimit(authLimiter, middleware.KeyByIP))
			superadmins.RegisterAuthRoutes(ar, superAdminsSvc)
		})

		pr.Group(func(sr chi.Router) {
			sr.Use(authenticate)
			sr.Use(middleware.RequireSuperAdmin)
			sr.Use(middleware.RateLimit(apiLimiter, middleware.KeyByIPAndPrincipal))

			tenants.RegisterPlatformRoutes(sr, tenantsSvc)

			// Purga manual del response cache (operación de soporte).
			sr.Post("/cache/purge", purgeCacheHandler(respCache))
		})
	})

	// Rutas de tenant: todo lo demás vive bajo un restaurante resuelto
	// por subdominio (u override por header en dev).
	r.Group(func(tr chi.Router) {
		tr.Use(middleware.ResolveTenant(tenantsSvc, opts.BaseDomain))
		tr.Use(authenticate)

		// Superficie pública cacheada.
		tr.Group(func(cr chi.Router) {
			cr.Use(respCache.Wrap("restaurant", restaurantCacheTTL))
			tenants.RegisterPublicRoutes(cr, tenantsSvc)
		})
		tr.Group(func(cr chi.Router) {
			cr.Use(respCache.Wrap("menu", menuCacheTTL))
			menus.RegisterPublicRoutes(cr, menusSvc)
		})

		// Login y registro, con límite agresivo por IP.
		tr.Group(func(ar chi.Router) {
			ar.Use(middleware.RateLimit(authLimiter, middleware.KeyByIP))
			admins.RegisterAuthRoutes(ar, adminsSvc)
			customers.RegisterAuthRoutes(ar, customersSvc)
		})

		// API autenticada del tenant.
		tr.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireAuth)
			ar.Use(middleware.RateLimit(apiLimiter, middleware.KeyByIPAndPrincipal))

			customers.RegisterMeRoutes(ar, customersSvc)

			ar.Group(func(cr chi.Router) {
				cr.Use(middleware.RequireCustomer)
				orders.RegisterCustomerRoutes(cr, ordersSvc)
			})

			ar.Group(func(mr chi.Router) {
				mr.Use(middleware.RequirePermission(admins.PermMenuWrite))
				menus.RegisterRoutes(mr, menusSvc, opts.Uploader, respCache)
			})

			ar.Group(func(wr chi.Router) {
				wr.Use(middleware.RequirePermission(admins.PermTablesWrite))
				tables.RegisterRoutes(wr, tablesSvc)
			})

			ar.Group(func(or chi.Router) {
				or.Use(middleware.RequirePermission(admins.PermOrdersRead))
				orders.RegisterStaffReadRoutes(or, ordersSvc)
			})
			ar.Group(func(or chi.Router) {
				or.Use(middleware.RequirePermission(admins.PermOrdersWrite))
				orders.RegisterStaffWriteRoutes(or, ordersSvc)
			})

			ar.Group(func(sr chi.Router) {
				sr.Use(middleware.RequirePermission(admins.PermAdminsManage))
				admins.RegisterRoutes(sr, adminsSvc)
			})

			ar.Group(func(cr chi.Router) {
				cr.Use(middleware.RequirePermission(admins.PermCustomersRead))
				customers.RegisterAdminRoutes(cr, customersSvc)
			})
		})
	})

	return r, stop, nil
}

type purgeRequest struct {
	Prefix string `json:"prefix"`
}

type purgeResponse struct {
	Success bool `json:"success"`
	Purged  int  `json:"purged"`
}

func purgeCacheHandler(respCache *middleware.ResponseCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req purgeRequest
		// Body vacío o inválido purga todo.
		_ = json.NewDecoder(r.Body).Decode(&req)

		n := respCache.PurgePattern(req.Prefix)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(purgeResponse{Success: true, Purged: n})
	}
}
