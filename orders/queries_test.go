package orders

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
)

func TestListByBuyer(t *testing.T) {
	db := newTestDB(t)
	order, _, _ := placeOrder(t, db)

	p := seedProduct(t, db, "Jasmine Rice 5kg", "250.00", 10)
	checkout := newCheckout(t, db)
	second, err := checkout.PlaceFromItems(context.Background(), "buyer-1", "Phuket", []Line{
		{ProductID: p.ID, Quantity: 1},
	})
	require.NoError(t, err)
	_, err = checkout.PlaceFromItems(context.Background(), "buyer-2", "Bangkok", []Line{
		{ProductID: p.ID, Quantity: 1},
	})
	require.NoError(t, err)

	list, err := ListByBuyer(context.Background(), db, "buyer-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.OrderNumber, list[0].OrderNumber, "newest order first")
	assert.Equal(t, order.OrderNumber, list[1].OrderNumber)
	assert.Len(t, list[1].Items, 2, "items must be preloaded")
}

func TestListByBuyerEmpty(t *testing.T) {
	db := newTestDB(t)
	placeOrder(t, db)

	list, err := ListByBuyer(context.Background(), db, "buyer-unknown")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetByRefNumericID(t *testing.T) {
	db := newTestDB(t)
	order, _, _ := placeOrder(t, db)

	got, err := GetByRef(context.Background(), db, strconv.FormatUint(uint64(order.ID), 10))
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, got.OrderNumber)
	assert.Len(t, got.Items, 2)
}

// Order numbers are not numeric; the lookup must hit the order_number column
// only, never bind the ref against the bigint id column.
func TestGetByRefOrderNumber(t *testing.T) {
	db := newTestDB(t)
	order, _, _ := placeOrder(t, db)

	got, err := GetByRef(context.Background(), db, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Len(t, got.Items, 2)
}

func TestGetByRefNotFound(t *testing.T) {
	db := newTestDB(t)
	placeOrder(t, db)

	_, err := GetByRef(context.Background(), db, "999999")
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = GetByRef(context.Background(), db, "O-19990101-001")
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestListBySeller(t *testing.T) {
	db := newTestDB(t)
	order, a, _ := placeOrder(t, db)

	items, err := ListBySeller(context.Background(), db, a.SellerID, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ProductID)
	assert.Equal(t, order.ID, items[0].OrderID)
}

func TestListBySellerStatusFilter(t *testing.T) {
	db := newTestDB(t)
	_, a, _ := placeOrder(t, db)

	pending, err := ListBySeller(context.Background(), db, a.SellerID, models.OrderItemStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	shipped, err := ListBySeller(context.Background(), db, a.SellerID, models.OrderItemStatusShipped)
	require.NoError(t, err)
	assert.Empty(t, shipped)
}
