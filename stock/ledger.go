package stock

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
)

// Restore is one (product, quantity) pair to credit back.
type Restore struct {
	ProductID uint
	Quantity  int
}

// Ledger owns every mutation of Product.Stock. Checkout and cancellation go
// through it; an unguarded read-then-write of stock anywhere else is a bug.
type Ledger interface {
	// CheckAvailability is a non-binding read used for early rejection. It
	// may be stale by the time a write happens.
	CheckAvailability(ctx context.Context, productID uint, quantity int) (bool, error)

	// DecrementWithGuard subtracts quantity only if enough stock remains,
	// in a single conditional update. Fails with an insufficient-stock or
	// not-found error without mutating anything.
	DecrementWithGuard(ctx context.Context, productID uint, quantity int) error

	// BulkRestore credits stock back for every pair in one transaction;
	// either all increments apply or none do. Restores are unconditional:
	// concurrent purchases may have reduced stock further in the meantime.
	BulkRestore(ctx context.Context, restores []Restore) error

	// WithTx returns a ledger whose operations run inside tx, so callers
	// can make the stock mutation atomic with their own writes.
	WithTx(tx *gorm.DB) Ledger
}

type GormLedger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) WithTx(tx *gorm.DB) Ledger {
	return &GormLedger{db: tx}
}

func (l *GormLedger) CheckAvailability(ctx context.Context, productID uint, quantity int) (bool, error) {
	var stock int
	err := l.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("stock").
		Where("id = ?", productID).
		Take(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, errs.Newf(errs.KindNotFound, "product %d not found", productID)
	}
	if err != nil {
		return false, errs.Wrap(errs.KindInternal, "failed to read stock", err)
	}
	return stock >= quantity, nil
}

func (l *GormLedger) DecrementWithGuard(ctx context.Context, productID uint, quantity int) error {
	if quantity <= 0 {
		return errs.Newf(errs.KindInternal, "non-positive decrement quantity %d for product %d", quantity, productID)
	}

	res := l.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return errs.Wrap(errs.KindInternal, "failed to decrement stock", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Zero rows: either the product is gone or the guard failed.
	var count int64
	if err := l.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Count(&count).Error; err != nil {
		return errs.Wrap(errs.KindInternal, "failed to probe product", err)
	}
	if count == 0 {
		return errs.Newf(errs.KindNotFound, "product %d not found", productID)
	}
	return errs.Newf(errs.KindInsufficientStock, "insufficient stock for product %d", productID)
}

func (l *GormLedger) BulkRestore(ctx context.Context, restores []Restore) error {
	if len(restores) == 0 {
		return nil
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range restores {
			if r.Quantity <= 0 {
				return errs.Newf(errs.KindInternal, "non-positive restore quantity %d for product %d", r.Quantity, r.ProductID)
			}
			res := tx.Model(&models.Product{}).
				Where("id = ?", r.ProductID).
				Update("stock", gorm.Expr("stock + ?", r.Quantity))
			if res.Error != nil {
				return errs.Wrap(errs.KindInternal, "failed to restore stock", res.Error)
			}
			if res.RowsAffected == 0 {
				return errs.Newf(errs.KindNotFound, "product %d not found", r.ProductID)
			}
		}
		return nil
	})
}
