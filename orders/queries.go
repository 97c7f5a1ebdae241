package orders

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
)

// ListByBuyer returns the buyer's orders, newest first, items preloaded.
func ListByBuyer(ctx context.Context, db *gorm.DB, buyerID string) ([]models.Order, error) {
	var orders []models.Order
	if err := db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, errs.Wrap(errs.KindInternal, "failed to fetch orders", err)
	}
	return orders, nil
}

// GetByRef fetches one order by numeric id or order number. The two columns
// are queried separately: binding a non-numeric ref against the bigint id
// column is an error on Postgres, not a non-match.
func GetByRef(ctx context.Context, db *gorm.DB, ref string) (*models.Order, error) {
	q := db.WithContext(ctx).Preload("Items")
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		q = q.Where("id = ?", id)
	} else {
		q = q.Where("order_number = ?", ref)
	}

	var order models.Order
	err := q.First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Newf(errs.KindNotFound, "order %s not found", ref)
	}
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "failed to fetch order", err)
	}
	return &order, nil
}

// ListBySeller returns a seller's order items for dashboard views, newest
// first, optionally filtered by status.
func ListBySeller(ctx context.Context, db *gorm.DB, sellerID string, status models.OrderItemStatus) ([]models.OrderItem, error) {
	q := db.WithContext(ctx).Where("seller_id = ?", sellerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var items []models.OrderItem
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, errs.Wrap(errs.KindInternal, "failed to fetch seller order items", err)
	}
	return items, nil
}
