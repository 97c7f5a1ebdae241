package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/Pattarapon0/dcommerce-sub002/models"
)

type Config struct {
	Port            string
	DatabaseURL     string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DefaultCurrency string
	CheckoutTimeout time.Duration
	RateCacheTTL    time.Duration
	CartLimits      models.CartLimits
}

// Load reads .env (if present) and the environment, filling defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DBHost:          getenv("DB_HOST", "localhost"),
		DBPort:          getenv("DB_PORT", "5432"),
		DBUser:          getenv("DB_USER", "postgres"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          getenv("DB_NAME", "dcommerce"),
		DefaultCurrency: getenv("DEFAULT_CURRENCY", "THB"),
		CheckoutTimeout: envDuration("CHECKOUT_TIMEOUT", 10*time.Second),
		RateCacheTTL:    envDuration("RATE_CACHE_TTL", 15*time.Minute),
		CartLimits:      loadCartLimits(),
	}
}

func loadCartLimits() models.CartLimits {
	limits := models.DefaultCartLimits()
	limits.MaxItemsPerCart = envInt("CART_MAX_ITEMS", limits.MaxItemsPerCart)
	limits.MaxQuantityPerItem = envInt("CART_MAX_QTY_PER_ITEM", limits.MaxQuantityPerItem)
	limits.MaxUniqueProductsPerCart = envInt("CART_MAX_UNIQUE_PRODUCTS", limits.MaxUniqueProductsPerCart)
	if v := os.Getenv("CART_MAX_VALUE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			limits.MaxCartValue = d
		}
	}
	return limits
}

// DSN builds the Postgres connection string, preferring DATABASE_URL.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

// PinnedRates parses FX_RATES ("USD=0.028,EUR=0.026") into per-quote rates
// from the platform currency. Malformed pairs are skipped.
func PinnedRates() map[string]decimal.Decimal {
	rates := make(map[string]decimal.Decimal)
	for _, pair := range strings.Split(os.Getenv("FX_RATES"), ",") {
		code, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		if rate, err := decimal.NewFromString(value); err == nil {
			rates[strings.ToUpper(code)] = rate
		}
	}
	return rates
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
