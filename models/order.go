package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
)

type OrderItemStatus string

const (
	OrderItemStatusPending    OrderItemStatus = "pending"    // created at checkout
	OrderItemStatusProcessing OrderItemStatus = "processing" // accepted by the seller
	OrderItemStatusShipped    OrderItemStatus = "shipped"    // handed to the carrier
	OrderItemStatusDelivered  OrderItemStatus = "delivered"  // received by the buyer
	OrderItemStatusCancelled  OrderItemStatus = "cancelled"  // terminal, stock restored
)

// ParseOrderItemStatus maps a request string to a status.
func ParseOrderItemStatus(status string) (OrderItemStatus, error) {
	switch strings.ToLower(status) {
	case string(OrderItemStatusPending):
		return OrderItemStatusPending, nil
	case string(OrderItemStatusProcessing):
		return OrderItemStatusProcessing, nil
	case string(OrderItemStatusShipped):
		return OrderItemStatusShipped, nil
	case string(OrderItemStatusDelivered):
		return OrderItemStatusDelivered, nil
	case string(OrderItemStatusCancelled):
		return OrderItemStatusCancelled, nil
	default:
		return "", errs.Newf(errs.KindInvalidTransition, "invalid order item status %q", status)
	}
}

// CanTransitionTo reports whether moving from s to target is a legal
// lifecycle step. The lifecycle is forward-only:
// pending -> processing -> shipped -> delivered, and cancellation is allowed
// from pending or processing only. Every status write must pass this check.
func (s OrderItemStatus) CanTransitionTo(target OrderItemStatus) bool {
	switch s {
	case OrderItemStatusPending:
		return target == OrderItemStatusProcessing || target == OrderItemStatusCancelled
	case OrderItemStatusProcessing:
		return target == OrderItemStatusShipped || target == OrderItemStatusCancelled
	case OrderItemStatusShipped:
		return target == OrderItemStatusDelivered
	default:
		// delivered and cancelled are terminal
		return false
	}
}

// TransitionError returns the user-facing rejection for an illegal move.
func (s OrderItemStatus) TransitionError(target OrderItemStatus) error {
	return errs.Newf(errs.KindInvalidTransition,
		"cannot change order item status from %q to %q", string(s), string(target))
}

// Order is created together with its items at checkout and its line
// composition never changes afterwards; only item statuses and timestamps do.
// Totals are frozen at order time: total = sub_total + tax, tax = 10% of
// sub_total, and later price or tax changes never touch persisted orders.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNumber     string          `gorm:"uniqueIndex;not null" json:"order_number"`
	BuyerID         string          `gorm:"index;not null" json:"buyer_id"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	SubTotal        decimal.Decimal `gorm:"type:decimal(12,2)" json:"sub_total"`
	Tax             decimal.Decimal `gorm:"type:decimal(12,2)" json:"tax"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`
	ShippingAddress string          `json:"shipping_address"` // opaque snapshot, address edits never reach old orders
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem denormalizes product name, image, seller and price at order time
// so catalog changes never alter historical data. Rows are never deleted;
// cancellation is a status.
type OrderItem struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	OrderID          uint            `gorm:"index" json:"order_id"`
	ProductID        uint            `gorm:"index" json:"product_id"`
	SellerID         string          `gorm:"index:idx_order_items_seller_dash,priority:1" json:"seller_id"`
	ProductName      string          `json:"product_name"`
	ProductImageURL  string          `json:"product_image_url"`
	PriceAtOrderTime decimal.Decimal `gorm:"type:decimal(12,2)" json:"price_at_order_time"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	LineTotal        decimal.Decimal `gorm:"type:decimal(12,2)" json:"line_total"`
	Currency         string          `gorm:"type:VARCHAR(3)" json:"currency"`
	Status           OrderItemStatus `gorm:"type:VARCHAR(20);default:'pending';index:idx_order_items_seller_dash,priority:3" json:"status"`
	CreatedAt        time.Time       `gorm:"index:idx_order_items_seller_dash,priority:2" json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
