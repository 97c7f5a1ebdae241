package cart

import (
	"context"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
)

// Validator enforces per-user cart limits before any mutation is attempted.
type Validator struct {
	reader Reader
	limits models.CartLimits
}

func NewValidator(reader Reader, limits models.CartLimits) *Validator {
	return &Validator{reader: reader, limits: limits}
}

// Validate checks the limits in a fixed order and stops at the first
// violation. A user with no cart yet passes every check: the empty-cart case
// is not an error.
//
// The max-value rule compares the cart's current value against the limit,
// not the value after the add. An add that pushes the total past the limit
// is still accepted as long as the pre-add value is within it.
func (v *Validator) Validate(ctx context.Context, userID string, productID uint, incomingQuantity int) error {
	if incomingQuantity > v.limits.MaxQuantityPerItem {
		return errs.Newf(errs.KindLimitExceeded,
			"quantity %d exceeds the per-item limit of %d", incomingQuantity, v.limits.MaxQuantityPerItem)
	}

	agg, err := v.reader.Aggregate(ctx, userID)
	if err != nil {
		if errs.KindOf(err) == errs.KindNotFound {
			return nil
		}
		return err
	}

	if _, inCart := agg.Quantities[productID]; !inCart {
		if agg.UniqueProducts+1 > v.limits.MaxUniqueProductsPerCart {
			return errs.Newf(errs.KindLimitExceeded,
				"cart cannot hold more than %d different products", v.limits.MaxUniqueProductsPerCart)
		}
	}

	if agg.TotalItems+incomingQuantity > v.limits.MaxItemsPerCart {
		return errs.Newf(errs.KindLimitExceeded,
			"cart cannot hold more than %d items", v.limits.MaxItemsPerCart)
	}

	if agg.TotalValue.GreaterThan(v.limits.MaxCartValue) {
		return errs.Newf(errs.KindLimitExceeded,
			"cart value %s exceeds the limit of %s", agg.TotalValue.StringFixed(2), v.limits.MaxCartValue.StringFixed(2))
	}

	return nil
}
