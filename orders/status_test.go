package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
)

func TestUpdateItemStatusForward(t *testing.T) {
	db := newTestDB(t)
	order, _, _ := placeOrder(t, db)
	id := order.Items[0].ID

	updater := NewStatusUpdater(db, nil)
	ctx := context.Background()

	require.NoError(t, updater.UpdateItemStatus(ctx, id, models.OrderItemStatusProcessing))
	assert.Equal(t, models.OrderItemStatusProcessing, itemStatus(t, db, id))

	require.NoError(t, updater.UpdateItemStatus(ctx, id, models.OrderItemStatusShipped))
	require.NoError(t, updater.UpdateItemStatus(ctx, id, models.OrderItemStatusDelivered))
	assert.Equal(t, models.OrderItemStatusDelivered, itemStatus(t, db, id))
}

func TestUpdateItemStatusRejectsSkippedStep(t *testing.T) {
	db := newTestDB(t)
	order, _, _ := placeOrder(t, db)
	id := order.Items[0].ID

	updater := NewStatusUpdater(db, nil)
	err := updater.UpdateItemStatus(context.Background(), id, models.OrderItemStatusShipped)
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidTransition, errs.KindOf(err))
	assert.Equal(t, models.OrderItemStatusPending, itemStatus(t, db, id))
}

func TestUpdateItemStatusRejectsBackwardMove(t *testing.T) {
	db := newTestDB(t)
	order, _, _ := placeOrder(t, db)
	id := order.Items[0].ID

	updater := NewStatusUpdater(db, nil)
	require.NoError(t, updater.UpdateItemStatus(context.Background(), id, models.OrderItemStatusProcessing))

	err := updater.UpdateItemStatus(context.Background(), id, models.OrderItemStatusPending)
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidTransition, errs.KindOf(err))
}

// Setting "cancelled" through the plain status path would skip the stock
// restore, so the updater refuses it outright.
func TestUpdateItemStatusRefusesCancellation(t *testing.T) {
	db := newTestDB(t)
	order, _, _ := placeOrder(t, db)

	updater := NewStatusUpdater(db, nil)
	err := updater.UpdateItemStatus(context.Background(), order.Items[0].ID, models.OrderItemStatusCancelled)
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidTransition, errs.KindOf(err))
	assert.Contains(t, err.Error(), "cancellation flow")
}

func TestBulkUpdateStatusAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	order, _, _ := placeOrder(t, db)
	first := order.Items[0].ID
	second := order.Items[1].ID

	updater := NewStatusUpdater(db, nil)
	ctx := context.Background()

	// Move only the first item forward so the batch is mixed.
	require.NoError(t, updater.UpdateItemStatus(ctx, first, models.OrderItemStatusProcessing))

	err := updater.BulkUpdateStatus(ctx, []uint{first, second}, models.OrderItemStatusProcessing)
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidTransition, errs.KindOf(err))
	assert.Equal(t, models.OrderItemStatusPending, itemStatus(t, db, second), "no item in a failed batch may move")
}

func TestBulkUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	order, _, _ := placeOrder(t, db)
	ids := []uint{order.Items[0].ID, order.Items[1].ID}

	updater := NewStatusUpdater(db, nil)
	require.NoError(t, updater.BulkUpdateStatus(context.Background(), ids, models.OrderItemStatusProcessing))
	assert.Equal(t, models.OrderItemStatusProcessing, itemStatus(t, db, ids[0]))
	assert.Equal(t, models.OrderItemStatusProcessing, itemStatus(t, db, ids[1]))
}
