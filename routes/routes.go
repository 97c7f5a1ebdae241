package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Pattarapon0/dcommerce-sub002/cart"
	"github.com/Pattarapon0/dcommerce-sub002/orders"
	"github.com/Pattarapon0/dcommerce-sub002/ratecache"
)

// Deps carries the wired services the route groups hand to their handlers.
type Deps struct {
	DB            *gorm.DB
	CartValidator *cart.Validator
	Checkout      *orders.CheckoutService
	Cancel        *orders.CancelService
	Status        *orders.StatusUpdater
	Rates         *ratecache.Cache
	BaseCurrency  string
}

// SetupRoutes is the single entry-point that wires up the cart, order and
// rate route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	SetupCartRoutes(r, deps)
	SetupOrderRoutes(r, deps)
	SetupRateRoutes(r, deps)
}
