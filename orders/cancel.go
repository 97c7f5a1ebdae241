package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
	"github.com/Pattarapon0/dcommerce-sub002/stock"
)

// AuthorizeFunc checks whether the caller may act on the item
// (buyer-ownership or seller-match). Authorization itself lives outside this
// system; a nil func means the caller was already authorized upstream.
type AuthorizeFunc func(ctx context.Context, item *models.OrderItem) error

// CancelService reverses checkout for order items: it marks them cancelled
// through the state machine and restores their stock, atomically. Batches
// are all-or-nothing: one invalid item aborts the whole batch with an error
// naming it. Callers wanting best-effort semantics issue single-item calls.
type CancelService struct {
	db        *gorm.DB
	ledger    stock.Ledger
	authorize AuthorizeFunc
}

func NewCancelService(db *gorm.DB, ledger stock.Ledger, authorize AuthorizeFunc) *CancelService {
	return &CancelService{db: db, ledger: ledger, authorize: authorize}
}

// CancelItems cancels the given order items and restores their stock in one
// transaction. A second cancel of the same item fails with an
// invalid-transition error; it never restores stock twice.
func (s *CancelService) CancelItems(ctx context.Context, itemIDs []uint) error {
	if len(itemIDs) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := lockItems(ctx, tx, itemIDs)
		if err != nil {
			return err
		}

		cancellable := []models.OrderItemStatus{models.OrderItemStatusPending, models.OrderItemStatusProcessing}
		for i := range items {
			item := &items[i]
			if s.authorize != nil {
				if err := s.authorize(ctx, item); err != nil {
					return err
				}
			}
			if !item.Status.CanTransitionTo(models.OrderItemStatusCancelled) {
				return errs.Newf(errs.KindInvalidTransition,
					"order item %d: cannot change status from %q to %q",
					item.ID, string(item.Status), string(models.OrderItemStatusCancelled))
			}
		}

		res := tx.Model(&models.OrderItem{}).
			Where("id IN ? AND status IN ?", itemIDs, cancellable).
			Update("status", models.OrderItemStatusCancelled)
		if res.Error != nil {
			return errs.Wrap(errs.KindInternal, "failed to cancel order items", res.Error)
		}
		if res.RowsAffected != int64(len(items)) {
			return errs.New(errs.KindConflict, "order items were modified concurrently")
		}

		// Two items for the same product restore as one summed credit.
		byProduct := make(map[uint]int, len(items))
		order := make([]uint, 0, len(items))
		for _, item := range items {
			if _, seen := byProduct[item.ProductID]; !seen {
				order = append(order, item.ProductID)
			}
			byProduct[item.ProductID] += item.Quantity
		}
		restores := make([]stock.Restore, 0, len(byProduct))
		for _, productID := range order {
			restores = append(restores, stock.Restore{ProductID: productID, Quantity: byProduct[productID]})
		}
		return s.ledger.WithTx(tx).BulkRestore(ctx, restores)
	})
}

// lockItems fetches the items under a write lock and fails if any id is
// missing.
func lockItems(ctx context.Context, tx *gorm.DB, itemIDs []uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := forUpdate(tx.WithContext(ctx)).Find(&items, itemIDs).Error; err != nil {
		return nil, errs.Wrap(errs.KindInternal, "failed to fetch order items", err)
	}
	if len(items) != len(uniqueIDs(itemIDs)) {
		found := make(map[uint]bool, len(items))
		for _, item := range items {
			found[item.ID] = true
		}
		for _, id := range itemIDs {
			if !found[id] {
				return nil, errs.Newf(errs.KindNotFound, "order item %d not found", id)
			}
		}
	}
	return items, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
