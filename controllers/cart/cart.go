package cartControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Pattarapon0/dcommerce-sub002/cart"
	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1,max=100"`
}

// POST /user/cart
// Adds or updates a cart line after the limit validator accepts it.
func UpdateCartItem(db *gorm.DB, validator *cart.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if err == gorm.ErrRecordNotFound {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}
		if !product.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product is not available"})
			return
		}

		if err := validator.Validate(c.Request.Context(), userID, input.ProductID, input.Quantity); err != nil {
			c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		// One cart per user, created on first add.
		var userCart models.Cart
		if err := db.Where(models.Cart{UserID: userID}).FirstOrCreate(&userCart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		var item models.CartItem
		err := db.Where("cart_id = ? AND product_id = ?", userCart.CartID, input.ProductID).First(&item).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				newItem := models.CartItem{
					CartID:           userCart.CartID,
					ProductID:        product.ID,
					ProductName:      product.Name,
					ProductImageURL:  product.ImageURL,
					ProductSellerID:  product.SellerID,
					ProductUnitPrice: product.Price,
					Quantity:         input.Quantity,
					AddedAt:          time.Now(),
				}
				if err := db.Create(&newItem).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
					return
				}
				c.JSON(http.StatusCreated, newItem)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		}

		// Update existing cart item quantity and time
		item.Quantity = input.Quantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// DELETE /user/cart/:product_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)
		productID := c.Param("product_id")

		var userCart models.Cart
		if err := db.Where("user_id = ?", userID).First(&userCart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}

		result := db.Where("cart_id = ? AND product_id = ?", userCart.CartID, productID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		if err := db.Transaction(func(tx *gorm.DB) error {
			return cart.Clear(tx, userID)
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var userCart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&userCart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusOK, []models.CartItem{})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, userCart.Items)
	}
}
