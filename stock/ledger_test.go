package stock

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Name:     "Jasmine Rice 5kg",
		Price:    decimal.RequireFromString("250.00"),
		Stock:    stock,
		IsActive: true,
		SellerID: "seller-a",
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func currentStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, id).Error)
	return p.Stock
}

func TestDecrementWithGuard(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, 5)
	ledger := NewLedger(db)

	require.NoError(t, ledger.DecrementWithGuard(context.Background(), p.ID, 3))
	assert.Equal(t, 2, currentStock(t, db, p.ID))
}

func TestDecrementWithGuardInsufficient(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, 2)
	ledger := NewLedger(db)

	err := ledger.DecrementWithGuard(context.Background(), p.ID, 3)
	require.Error(t, err)
	assert.Equal(t, errs.KindInsufficientStock, errs.KindOf(err))
	assert.Equal(t, 2, currentStock(t, db, p.ID), "failed guard must not mutate stock")
}

func TestDecrementWithGuardExactStock(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, 3)
	ledger := NewLedger(db)

	require.NoError(t, ledger.DecrementWithGuard(context.Background(), p.ID, 3))
	assert.Equal(t, 0, currentStock(t, db, p.ID))

	err := ledger.DecrementWithGuard(context.Background(), p.ID, 1)
	require.Error(t, err)
	assert.Equal(t, errs.KindInsufficientStock, errs.KindOf(err))
}

func TestDecrementWithGuardMissingProduct(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)

	err := ledger.DecrementWithGuard(context.Background(), 999, 1)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestCheckAvailability(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, 4)
	ledger := NewLedger(db)

	ok, err := ledger.CheckAvailability(context.Background(), p.ID, 4)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ledger.CheckAvailability(context.Background(), p.ID, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = ledger.CheckAvailability(context.Background(), 999, 1)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestBulkRestore(t *testing.T) {
	db := newTestDB(t)
	a := seedProduct(t, db, 0)
	b := seedProduct(t, db, 7)
	ledger := NewLedger(db)

	require.NoError(t, ledger.BulkRestore(context.Background(), []Restore{
		{ProductID: a.ID, Quantity: 3},
		{ProductID: b.ID, Quantity: 2},
	}))
	assert.Equal(t, 3, currentStock(t, db, a.ID))
	assert.Equal(t, 9, currentStock(t, db, b.ID))
}

func TestBulkRestoreAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	a := seedProduct(t, db, 1)
	ledger := NewLedger(db)

	err := ledger.BulkRestore(context.Background(), []Restore{
		{ProductID: a.ID, Quantity: 3},
		{ProductID: 999, Quantity: 2},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	assert.Equal(t, 1, currentStock(t, db, a.ID), "no increment may survive a failed batch")
}
