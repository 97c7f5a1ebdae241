package orderControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
	"github.com/Pattarapon0/dcommerce-sub002/orders"
)

// -------- Request Structs --------

type PlaceFromCartRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

type PlaceFromItemsRequest struct {
	ShippingAddress string        `json:"shipping_address" binding:"required"`
	Items           []orders.Line `json:"items" binding:"required,min=1,dive"`
}

type UpdateItemStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BulkCancelRequest struct {
	ItemIDs []uint `json:"item_ids" binding:"required,min=1"`
}

// -------- Helpers --------

func callerID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

func writeError(c *gin.Context, err error) {
	c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
}

// -------- Handlers --------

// POST /orders/from-cart
// Converts the caller's cart into an order. Falls back to the address on the
// buyer's profile when the request carries none.
func PlaceFromCartHandler(db *gorm.DB, checkout *orders.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var req PlaceFromCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		address := req.ShippingAddress
		if address == "" {
			var user models.User
			if err := db.First(&user, "id = ?", userID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "shipping address is required"})
				return
			}
			address = user.Address.Snapshot()
		}

		order, err := checkout.PlaceFromCart(c.Request.Context(), userID, address)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// POST /orders/from-items
func PlaceFromItemsHandler(checkout *orders.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var req PlaceFromItemsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := checkout.PlaceFromItems(c.Request.Context(), userID, req.ShippingAddress, req.Items)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// PUT /orders/items/:itemID/status
// A "cancelled" target routes through the cancellation flow so stock is
// restored; everything else goes through the plain status update.
func UpdateItemStatusHandler(updater *orders.StatusUpdater, cancel *orders.CancelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "itemID must be numeric"})
			return
		}

		var req UpdateItemStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		target, err := models.ParseOrderItemStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if target == models.OrderItemStatusCancelled {
			err = cancel.CancelItems(c.Request.Context(), []uint{uint(itemID)})
		} else {
			err = updater.UpdateItemStatus(c.Request.Context(), uint(itemID), target)
		}
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order item status updated successfully"})
	}
}

// POST /orders/items/bulk-cancel
// All-or-nothing: one invalid item rejects the whole batch.
func BulkCancelHandler(cancel *orders.CancelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BulkCancelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := cancel.CancelItems(c.Request.Context(), req.ItemIDs); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order items cancelled"})
	}
}

// GET /orders/user/:userID
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userID is required"})
			return
		}
		list, err := orders.ListByBuyer(c.Request.Context(), db, userID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /orders/:orderID — numeric id or order number.
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("orderID")
		if ref == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		order, err := orders.GetByRef(c.Request.Context(), db, ref)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /orders/seller/:sellerID
func GetSellerItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID := c.Param("sellerID")
		if sellerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sellerID is required"})
			return
		}
		var status models.OrderItemStatus
		if s := c.Query("status"); s != "" {
			parsed, err := models.ParseOrderItemStatus(s)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			status = parsed
		}
		items, err := orders.ListBySeller(c.Request.Context(), db, sellerID, status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
