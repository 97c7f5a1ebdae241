package orders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
)

// OrderNumberCounter hands out sequential per-day order numbers. The row is
// incremented inside the checkout transaction so a rollback never burns a
// number into a persisted order, and the unique index on orders.order_number
// is the backstop if two first-orders-of-the-day race on row creation.
type OrderNumberCounter struct {
	Day     string `gorm:"primaryKey;type:VARCHAR(8)"`
	LastSeq int    `gorm:"not null"`
}

// nextOrderNumber reserves the next O-YYYYMMDD-NNN number inside tx. The
// atomic increment takes the row's write lock, serializing number generation
// per calendar day. The sequence is zero-padded to three digits and widens
// past 999 (O-YYYYMMDD-1000); numbers stay sequential and unique either way.
func nextOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	day := now.Format("20060102")

	res := tx.Model(&OrderNumberCounter{}).
		Where("day = ?", day).
		Update("last_seq", gorm.Expr("last_seq + 1"))
	if res.Error != nil {
		return "", errs.Wrap(errs.KindInternal, "failed to advance order number counter", res.Error)
	}

	if res.RowsAffected == 0 {
		// First order of the day. A concurrent first order hits the
		// primary key; the orchestrator retries the transaction.
		if err := tx.Create(&OrderNumberCounter{Day: day, LastSeq: 1}).Error; err != nil {
			if isDuplicateKey(err) {
				return "", errs.Wrap(errs.KindConflict, "order number counter contention", err)
			}
			return "", errs.Wrap(errs.KindInternal, "failed to create order number counter", err)
		}
		return fmt.Sprintf("O-%s-%03d", day, 1), nil
	}

	var counter OrderNumberCounter
	if err := tx.First(&counter, "day = ?", day).Error; err != nil {
		return "", errs.Wrap(errs.KindInternal, "failed to read order number counter", err)
	}
	return fmt.Sprintf("O-%s-%03d", day, counter.LastSeq), nil
}

// isDuplicateKey covers the drivers in play: gorm's translated error,
// Postgres 23505 and SQLite's constraint message.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
