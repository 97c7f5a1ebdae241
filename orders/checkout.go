package orders

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Pattarapon0/dcommerce-sub002/cart"
	"github.com/Pattarapon0/dcommerce-sub002/catalog"
	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
	"github.com/Pattarapon0/dcommerce-sub002/stock"
)

// maxCommitAttempts bounds retries on order-number collisions and
// serialization conflicts before surfacing a conflict error.
const maxCommitAttempts = 3

// CheckoutService turns a validated cart or item list into a persisted
// order. The commit step runs in one database transaction: order number,
// guarded stock decrement for every line, order insert, cart clear. On any
// failure nothing is persisted and no stock is touched.
type CheckoutService struct {
	db        *gorm.DB
	ledger    stock.Ledger
	catalog   catalog.Lookup
	carts     cart.Reader
	assembler *Assembler
	timeout   time.Duration
	now       func() time.Time
}

func NewCheckoutService(db *gorm.DB, ledger stock.Ledger, lookup catalog.Lookup, carts cart.Reader, assembler *Assembler, timeout time.Duration) *CheckoutService {
	return &CheckoutService{
		db:        db,
		ledger:    ledger,
		catalog:   lookup,
		carts:     carts,
		assembler: assembler,
		timeout:   timeout,
		now:       time.Now,
	}
}

// PlaceFromCart converts the user's cart into an order and clears the cart
// in the same transaction.
func (s *CheckoutService) PlaceFromCart(ctx context.Context, buyerID, shippingAddress string) (*models.Order, error) {
	return s.place(ctx, buyerID, true, func(ctx context.Context) (*models.Order, error) {
		sum, err := s.carts.CheckoutSummary(ctx, buyerID)
		if err != nil {
			return nil, err
		}
		// Advisory pre-check so a stale cart fails early with the
		// offending product named. The binding check is the guarded
		// decrement at commit.
		for _, line := range sum.Items {
			product, err := s.catalog.GetByID(ctx, line.ProductID)
			if err != nil {
				return nil, err
			}
			if !product.IsActive {
				return nil, errs.Newf(errs.KindNotFound, "product %q is no longer available", product.Name)
			}
			if product.Stock < line.Quantity {
				return nil, errs.Newf(errs.KindInsufficientStock,
					"insufficient stock for product %q: %d available, %d requested",
					product.Name, product.Stock, line.Quantity)
			}
		}
		return s.assembler.FromSummary(buyerID, shippingAddress, sum)
	})
}

// PlaceFromItems creates an order from an explicit item list.
func (s *CheckoutService) PlaceFromItems(ctx context.Context, buyerID, shippingAddress string, lines []Line) (*models.Order, error) {
	return s.place(ctx, buyerID, false, func(ctx context.Context) (*models.Order, error) {
		return s.assembler.FromItems(ctx, buyerID, shippingAddress, lines, s.catalog)
	})
}

// place runs assemble + commit with a bounded retry on conflicts. Assembly
// is pure, so each attempt rebuilds the aggregate from scratch rather than
// reusing one gorm may have stamped IDs onto.
func (s *CheckoutService) place(ctx context.Context, buyerID string, clearCart bool, assemble func(context.Context) (*models.Order, error)) (*models.Order, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var lastErr error
	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		order, err := assemble(ctx)
		if err != nil {
			return nil, err
		}

		err = s.commit(ctx, order, buyerID, clearCart)
		if err == nil {
			return order, nil
		}
		if errs.KindOf(err) != errs.KindConflict {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *CheckoutService) commit(ctx context.Context, order *models.Order, buyerID string, clearCart bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextOrderNumber(tx, s.now())
		if err != nil {
			return err
		}
		order.OrderNumber = number

		ledger := s.ledger.WithTx(tx)
		for i := range order.Items {
			item := &order.Items[i]
			if err := ledger.DecrementWithGuard(ctx, item.ProductID, item.Quantity); err != nil {
				if errs.KindOf(err) == errs.KindInsufficientStock {
					return errs.Newf(errs.KindInsufficientStock,
						"insufficient stock for product %q", item.ProductName)
				}
				return err
			}
		}

		if err := tx.Create(order).Error; err != nil {
			if isDuplicateKey(err) {
				return errs.Wrap(errs.KindConflict, "order number collision", err)
			}
			return errs.Wrap(errs.KindInternal, "failed to create order", err)
		}

		if clearCart {
			return cart.Clear(tx, buyerID)
		}
		return nil
	})
}

// forUpdate takes a row-level write lock on the rows the query touches.
// SQLite (tests) has no FOR UPDATE; its single writer provides the same
// serialization.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
