package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
	"github.com/Pattarapon0/dcommerce-sub002/stock"
)

// placeOrder checks out two single-unit products and returns the persisted
// order with items loaded.
func placeOrder(t *testing.T, db *gorm.DB) (models.Order, models.Product, models.Product) {
	t.Helper()
	a := seedProduct(t, db, "Mango Sticky Rice Kit", "120.50", 10)
	b := seedProduct(t, db, "Pad Thai Sauce", "89.00", 10)

	checkout := newCheckout(t, db)
	placed, err := checkout.PlaceFromItems(context.Background(), "buyer-1", "Bangkok", []Line{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 3},
	})
	require.NoError(t, err)

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order, placed.ID).Error)
	require.Len(t, order.Items, 2)
	return order, a, b
}

func itemStatus(t *testing.T, db *gorm.DB, id uint) models.OrderItemStatus {
	t.Helper()
	var item models.OrderItem
	require.NoError(t, db.First(&item, id).Error)
	return item.Status
}

func TestCancelRestoresStock(t *testing.T) {
	db := newTestDB(t)
	order, a, b := placeOrder(t, db)
	require.Equal(t, 8, currentStock(t, db, a.ID))
	require.Equal(t, 7, currentStock(t, db, b.ID))

	svc := NewCancelService(db, stock.NewLedger(db), nil)
	ids := []uint{order.Items[0].ID, order.Items[1].ID}
	require.NoError(t, svc.CancelItems(context.Background(), ids))

	assert.Equal(t, models.OrderItemStatusCancelled, itemStatus(t, db, ids[0]))
	assert.Equal(t, models.OrderItemStatusCancelled, itemStatus(t, db, ids[1]))
	assert.Equal(t, 10, currentStock(t, db, a.ID))
	assert.Equal(t, 10, currentStock(t, db, b.ID))
}

// Cancelling twice must fail the state machine, not silently restore stock
// a second time.
func TestDoubleCancelDoesNotDoubleRestore(t *testing.T) {
	db := newTestDB(t)
	order, a, _ := placeOrder(t, db)

	svc := NewCancelService(db, stock.NewLedger(db), nil)
	id := order.Items[0].ID
	require.NoError(t, svc.CancelItems(context.Background(), []uint{id}))
	require.Equal(t, 10, currentStock(t, db, a.ID))

	err := svc.CancelItems(context.Background(), []uint{id})
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidTransition, errs.KindOf(err))
	assert.Equal(t, 10, currentStock(t, db, a.ID), "second cancel must not credit stock again")
}

func TestCancelShippedItemRejected(t *testing.T) {
	db := newTestDB(t)
	order, a, _ := placeOrder(t, db)
	id := order.Items[0].ID
	require.NoError(t, db.Model(&models.OrderItem{}).Where("id = ?", id).
		Update("status", models.OrderItemStatusShipped).Error)

	svc := NewCancelService(db, stock.NewLedger(db), nil)
	err := svc.CancelItems(context.Background(), []uint{id})
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidTransition, errs.KindOf(err))
	assert.Equal(t, models.OrderItemStatusShipped, itemStatus(t, db, id))
	assert.Equal(t, 8, currentStock(t, db, a.ID), "stock must be unchanged")
}

// One shipped item poisons the whole batch: the pending item stays pending
// and no stock moves.
func TestBulkCancelAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	order, a, b := placeOrder(t, db)
	shipped := order.Items[0].ID
	pending := order.Items[1].ID
	require.NoError(t, db.Model(&models.OrderItem{}).Where("id = ?", shipped).
		Update("status", models.OrderItemStatusShipped).Error)

	svc := NewCancelService(db, stock.NewLedger(db), nil)
	err := svc.CancelItems(context.Background(), []uint{shipped, pending})
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidTransition, errs.KindOf(err))

	assert.Equal(t, models.OrderItemStatusPending, itemStatus(t, db, pending))
	assert.Equal(t, 8, currentStock(t, db, a.ID))
	assert.Equal(t, 7, currentStock(t, db, b.ID))
}

func TestCancelMissingItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewCancelService(db, stock.NewLedger(db), nil)

	err := svc.CancelItems(context.Background(), []uint{12345})
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestCancelAuthorizationHook(t *testing.T) {
	db := newTestDB(t)
	order, a, _ := placeOrder(t, db)

	deny := func(ctx context.Context, item *models.OrderItem) error {
		return errs.New(errs.KindForbidden, "not your order item")
	}
	svc := NewCancelService(db, stock.NewLedger(db), deny)

	err := svc.CancelItems(context.Background(), []uint{order.Items[0].ID})
	require.Error(t, err)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	assert.Equal(t, models.OrderItemStatusPending, itemStatus(t, db, order.Items[0].ID))
	assert.Equal(t, 8, currentStock(t, db, a.ID))
}
