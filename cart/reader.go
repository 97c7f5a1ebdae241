package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
)

// Aggregate is the read-only cart view the limit validator checks against.
type Aggregate struct {
	TotalItems     int
	UniqueProducts int
	TotalValue     decimal.Decimal
	Quantities     map[uint]int // per product, so "new product" can be detected
}

// SummaryItem is one cart line ready for order assembly, carrying the
// snapshot fields captured when the item was added.
type SummaryItem struct {
	ProductID   uint
	ProductName string
	ImageURL    string
	SellerID    string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// Summary is the checkout view of a cart.
type Summary struct {
	Items       []SummaryItem
	TotalAmount decimal.Decimal
}

// Reader supplies cart snapshots to the validator and the checkout path.
type Reader interface {
	Aggregate(ctx context.Context, userID string) (Aggregate, error)
	CheckoutSummary(ctx context.Context, userID string) (*Summary, error)
}

type GormReader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) *GormReader {
	return &GormReader{db: db}
}

func (r *GormReader) load(ctx context.Context, userID string) (*models.Cart, error) {
	var c models.Cart
	err := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Newf(errs.KindNotFound, "user %s has no cart", userID)
	}
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "failed to fetch cart", err)
	}
	return &c, nil
}

func (r *GormReader) Aggregate(ctx context.Context, userID string) (Aggregate, error) {
	c, err := r.load(ctx, userID)
	if err != nil {
		return Aggregate{}, err
	}

	agg := Aggregate{
		TotalValue: decimal.Zero,
		Quantities: make(map[uint]int, len(c.Items)),
	}
	for _, item := range c.Items {
		agg.TotalItems += item.Quantity
		agg.Quantities[item.ProductID] += item.Quantity
		agg.TotalValue = agg.TotalValue.Add(
			item.ProductUnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	agg.UniqueProducts = len(agg.Quantities)
	return agg, nil
}

func (r *GormReader) CheckoutSummary(ctx context.Context, userID string) (*Summary, error) {
	c, err := r.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, errs.New(errs.KindNotFound, "cart is empty")
	}

	sum := &Summary{
		Items:       make([]SummaryItem, 0, len(c.Items)),
		TotalAmount: decimal.Zero,
	}
	for _, item := range c.Items {
		line := item.ProductUnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum.TotalAmount = sum.TotalAmount.Add(line)
		sum.Items = append(sum.Items, SummaryItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ImageURL:    item.ProductImageURL,
			SellerID:    item.ProductSellerID,
			UnitPrice:   item.ProductUnitPrice,
			Quantity:    item.Quantity,
		})
	}
	return sum, nil
}

// Clear removes every item from the user's cart inside the caller's
// transaction. Used by checkout after the order is committed.
func Clear(tx *gorm.DB, userID string) error {
	var c models.Cart
	err := tx.Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return errs.Wrap(errs.KindInternal, "failed to fetch cart", err)
	}
	if err := tx.Where("cart_id = ?", c.CartID).Delete(&models.CartItem{}).Error; err != nil {
		return errs.Wrap(errs.KindInternal, "failed to clear cart", err)
	}
	return nil
}
