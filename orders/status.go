package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
)

// StatusUpdater applies order-item status transitions through the state
// machine. Cancellation is not reachable here: cancelling must restore
// stock, which only CancelService does.
type StatusUpdater struct {
	db        *gorm.DB
	authorize AuthorizeFunc
}

func NewStatusUpdater(db *gorm.DB, authorize AuthorizeFunc) *StatusUpdater {
	return &StatusUpdater{db: db, authorize: authorize}
}

// UpdateItemStatus moves one item to target if the transition is legal.
func (u *StatusUpdater) UpdateItemStatus(ctx context.Context, itemID uint, target models.OrderItemStatus) error {
	return u.BulkUpdateStatus(ctx, []uint{itemID}, target)
}

// BulkUpdateStatus moves every item to target, all-or-nothing: the first
// item that fails the transition check aborts the batch and the error names
// it.
func (u *StatusUpdater) BulkUpdateStatus(ctx context.Context, itemIDs []uint, target models.OrderItemStatus) error {
	if target == models.OrderItemStatusCancelled {
		return errs.New(errs.KindInvalidTransition,
			"cancellation must go through the cancellation flow so stock is restored")
	}
	if len(itemIDs) == 0 {
		return nil
	}

	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := lockItems(ctx, tx, itemIDs)
		if err != nil {
			return err
		}

		// All items in a batch move from the same current status, so the
		// conditional update below can re-assert it.
		current := items[0].Status
		for i := range items {
			item := &items[i]
			if u.authorize != nil {
				if err := u.authorize(ctx, item); err != nil {
					return err
				}
			}
			if item.Status != current {
				return errs.Newf(errs.KindInvalidTransition,
					"order item %d is %q while the batch is %q", item.ID, string(item.Status), string(current))
			}
			if !item.Status.CanTransitionTo(target) {
				return errs.Newf(errs.KindInvalidTransition,
					"order item %d: cannot change status from %q to %q",
					item.ID, string(item.Status), string(target))
			}
		}

		res := tx.Model(&models.OrderItem{}).
			Where("id IN ? AND status = ?", itemIDs, current).
			Update("status", target)
		if res.Error != nil {
			return errs.Wrap(errs.KindInternal, "failed to update order item status", res.Error)
		}
		if res.RowsAffected != int64(len(items)) {
			return errs.New(errs.KindConflict, "order items were modified concurrently")
		}
		return nil
	})
}
