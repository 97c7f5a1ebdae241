package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/Pattarapon0/dcommerce-sub002/controllers/order"
)

func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	ordersGroup := r.Group("/orders")
	{
		// Create a new order from the caller's cart
		ordersGroup.POST("/from-cart", orderControllers.PlaceFromCartHandler(deps.DB, deps.Checkout))

		// Create a new order from an explicit item list
		ordersGroup.POST("/from-items", orderControllers.PlaceFromItemsHandler(deps.Checkout))

		// Update a single order item's status (cancellation restores stock)
		ordersGroup.PUT("/items/:itemID/status", orderControllers.UpdateItemStatusHandler(deps.Status, deps.Cancel))

		// Cancel a batch of order items, all-or-nothing
		ordersGroup.POST("/items/bulk-cancel", orderControllers.BulkCancelHandler(deps.Cancel))

		// Fetch orders for a specific buyer
		ordersGroup.GET("/user/:userID", orderControllers.GetUserOrdersHandler(deps.DB))

		// Fetch a seller's order items for the dashboard
		ordersGroup.GET("/seller/:sellerID", orderControllers.GetSellerItemsHandler(deps.DB))

		// Fetch a single order by id or order number
		ordersGroup.GET("/:orderID", orderControllers.GetOrderHandler(deps.DB))
	}
}
