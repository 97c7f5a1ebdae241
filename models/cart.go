package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem snapshots the product fields it needs at add time so the cart can
// be rendered and totalled without a join. Cart items are ephemeral: they are
// deleted once the cart is converted into an order.
type CartItem struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	CartID           uint            `gorm:"index" json:"cart_id"`
	ProductID        uint            `gorm:"index" json:"product_id"`
	ProductName      string          `json:"product_name"`
	ProductImageURL  string          `json:"product_image_url"`
	ProductSellerID  string          `json:"product_seller_id"`
	ProductUnitPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"product_unit_price"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	AddedAt          time.Time       `json:"added_at"`
}

// CartLimits is process-wide configuration checked before any cart mutation.
type CartLimits struct {
	MaxItemsPerCart          int
	MaxQuantityPerItem       int
	MaxUniqueProductsPerCart int
	MaxCartValue             decimal.Decimal
}

func DefaultCartLimits() CartLimits {
	return CartLimits{
		MaxItemsPerCart:          100,
		MaxQuantityPerItem:       100,
		MaxUniqueProductsPerCart: 50,
		MaxCartValue:             decimal.NewFromInt(10000),
	}
}
