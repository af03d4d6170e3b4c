// Seed de desarrollo: crea un super-admin de plataforma y un
// restaurante demo con staff, menú y mesas.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"restaurant-ordering/internal/adapters/auth/jwtauth"
	pg "restaurant-ordering/internal/adapters/storage/postgres"
	"restaurant-ordering/internal/domain/admins"
	"restaurant-ordering/internal/domain/menus"
	"restaurant-ordering/internal/domain/superadmins"
	"restaurant-ordering/internal/domain/tables"
	"restaurant-ordering/internal/domain/tenants"
	"restaurant-ordering/internal/platform/logger"
)

func main() {
	var (
		migrationsDir = flag.String("migrations", "./migrations", "migrations directory")
		password      = flag.String("password", "changeme123", "password for all seeded accounts")
	)
	flag.Parse()

	log := logger.NewFromEnv()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Error("DB_DSN is required", nil)
		os.Exit(1)
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "seed-only-secret"
	}

	db, err := pg.Open(dsn)
	if err != nil {
		log.Error("postgres connection failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer db.Close()

	if err := pg.ApplyMigrations(db, *migrationsDir); err != nil {
		log.Error("migrations failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	signer, err := jwtauth.NewSigner([]byte(secret))
	if err != nil {
		log.Error("signer init failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	superAdminsSvc := superadmins.NewService(pg.NewSuperAdminsRepo(db), signer)
	tenantsSvc := tenants.NewService(pg.NewTenantsRepo(db))
	adminsSvc := admins.NewService(pg.NewAdminsRepo(db), signer)
	menusSvc := menus.NewService(pg.NewMenusRepo(db))
	tablesSvc := tables.NewService(pg.NewTablesRepo(db))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := superAdminsSvc.Create(ctx, superadmins.CreateInput{
		Email:    "root@platform.local",
		Name:     "Platform Root",
		Password: *password,
	}); err != nil && err != superadmins.ErrEmailTaken {
		log.Error("super admin seed failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	t, err := tenantsSvc.Create(ctx, tenants.CreateInput{
		Name:      "La Esquina Demo",
		Subdomain: "demo",
		Address:   "Av. Siempre Viva 742",
		Phone:     "+54 11 5555-0000",
	})
	if err != nil {
		if err == tenants.ErrSubdomainTaken {
			log.Info("demo tenant already seeded", nil)
			return
		}
		log.Error("tenant seed failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	if _, err := adminsSvc.Create(ctx, t.ID, admins.CreateInput{
		Email:    "owner@demo.local",
		Name:     "Demo Owner",
		Password: *password,
		Role:     admins.RoleOwner,
	}); err != nil {
		log.Error("admin seed failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	cat, err := menusSvc.CreateCategory(ctx, t.ID, menus.CategoryInput{Name: "Principales", SortOrder: 1})
	if err != nil {
		log.Error("category seed failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	items := []menus.ItemInput{
		{CategoryID: cat.ID, Name: "Milanesa con papas", Description: "Clásica, con papas fritas", PriceCents: 850000},
		{CategoryID: cat.ID, Name: "Ravioles de ricota", Description: "Con salsa a elección", PriceCents: 720000},
	}
	for _, in := range items {
		if _, err := menusSvc.CreateItem(ctx, t.ID, in); err != nil {
			log.Error("item seed failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}

	for n := 1; n <= 6; n++ {
		if _, err := tablesSvc.Create(ctx, t.ID, tables.CreateInput{Number: n, Seats: 4}); err != nil {
			log.Error("table seed failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}

	log.Info("seed complete", map[string]any{"tenant": t.ID, "subdomain": t.Subdomain})
}
