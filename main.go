package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Pattarapon0/dcommerce-sub002/cart"
	"github.com/Pattarapon0/dcommerce-sub002/catalog"
	"github.com/Pattarapon0/dcommerce-sub002/config"
	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/middleware"
	"github.com/Pattarapon0/dcommerce-sub002/models"
	"github.com/Pattarapon0/dcommerce-sub002/orders"
	"github.com/Pattarapon0/dcommerce-sub002/ratecache"
	"github.com/Pattarapon0/dcommerce-sub002/routes"
	"github.com/Pattarapon0/dcommerce-sub002/stock"
)

func main() {
	log.Println("✅ Starting application...")

	cfg := config.Load()

	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&orders.OrderNumberCounter{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Core services
	ledger := stock.NewLedger(db)
	lookup := catalog.NewCatalog(db)
	carts := cart.NewReader(db)
	validator := cart.NewValidator(carts, cfg.CartLimits)
	assembler := orders.NewAssembler(cfg.DefaultCurrency)
	checkout := orders.NewCheckoutService(db, ledger, lookup, carts, assembler, cfg.CheckoutTimeout)

	// Ownership and seller-match checks are enforced by the gateway in
	// front of this service; the hook stays injectable for deployments
	// that run without one.
	var authorize orders.AuthorizeFunc
	cancel := orders.NewCancelService(db, ledger, authorize)
	status := orders.NewStatusUpdater(db, authorize)

	rates := ratecache.New(cfg.RateCacheTTL, staticRateFetcher())

	// Gin setup
	r := gin.Default()

	r.Use(middleware.RequestID())

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		DB:            db,
		CartValidator: validator,
		Checkout:      checkout,
		Cancel:        cancel,
		Status:        status,
		Rates:         rates,
		BaseCurrency:  cfg.DefaultCurrency,
	})

	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	return db
}

// staticRateFetcher serves rates pinned at deploy time via FX_RATES
// ("USD=0.028,EUR=0.026"). Real rate sourcing is an external service; this
// stands in for it behind the same FetchFunc seam.
func staticRateFetcher() ratecache.FetchFunc {
	pinned := config.PinnedRates()
	return func(ctx context.Context, base, quote string) (decimal.Decimal, error) {
		if rate, ok := pinned[quote]; ok {
			return rate, nil
		}
		return decimal.Zero, errs.Newf(errs.KindNotFound, "no exchange rate configured for %s", quote)
	}
}
