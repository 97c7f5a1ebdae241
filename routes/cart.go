package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/Pattarapon0/dcommerce-sub002/controllers/cart"
)

func SetupCartRoutes(r *gin.Engine, deps Deps) {
	userCart := r.Group("/user/cart")
	{
		userCart.POST("", cartControllers.UpdateCartItem(deps.DB, deps.CartValidator))
		userCart.GET("", cartControllers.GetUserCart(deps.DB))
		userCart.DELETE("", cartControllers.ClearUserCart(deps.DB))
		userCart.DELETE("/:product_id", cartControllers.DeleteCartItem(deps.DB))
	}
}
