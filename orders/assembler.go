package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Pattarapon0/dcommerce-sub002/cart"
	"github.com/Pattarapon0/dcommerce-sub002/catalog"
	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
)

// taxRate is the flat placeholder rate applied to every order.
var taxRate = decimal.New(1, -1) // 0.1

// Line is one requested (product, quantity) pair on the explicit-items path.
type Line struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1,max=100"`
}

// Assembler builds an Order aggregate from a cart summary or an explicit
// item list, pricing every line at time of order. It never writes anything:
// the orchestrator owns the commit, so assembly can be retried freely.
type Assembler struct {
	currency string
}

func NewAssembler(currency string) *Assembler {
	return &Assembler{currency: currency}
}

// FromSummary assembles an order from a cart checkout summary. The summary
// lines already carry the snapshot fields captured when they were added.
func (a *Assembler) FromSummary(buyerID, shippingAddress string, sum *cart.Summary) (*models.Order, error) {
	if sum == nil || len(sum.Items) == 0 {
		return nil, errs.New(errs.KindNotFound, "cart is empty")
	}

	items := make([]models.OrderItem, 0, len(sum.Items))
	for _, line := range sum.Items {
		if line.Quantity < 1 {
			return nil, errs.Newf(errs.KindInternal, "invalid quantity %d for product %q", line.Quantity, line.ProductName)
		}
		items = append(items, a.item(line.ProductID, line.SellerID, line.ProductName, line.ImageURL, line.UnitPrice, line.Quantity))
	}
	return a.finish(buyerID, shippingAddress, items), nil
}

// FromItems assembles an order from explicit lines, looking every product up
// live. Any failed lookup, inactive product or short stock fails the whole
// assembly with an error naming the offending product. The stock check here
// is advisory; the orchestrator rechecks atomically at commit.
func (a *Assembler) FromItems(ctx context.Context, buyerID, shippingAddress string, lines []Line, lookup catalog.Lookup) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, errs.New(errs.KindNotFound, "order must have at least one item")
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, errs.Newf(errs.KindInternal, "invalid quantity %d for product %d", line.Quantity, line.ProductID)
		}
		product, err := lookup.GetByID(ctx, line.ProductID)
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
		items = append(items, a.item(product.ID, product.SellerID, product.Name, product.ImageURL, product.Price, line.Quantity))
	}
	return a.finish(buyerID, shippingAddress, items), nil
}

func (a *Assembler) item(productID uint, sellerID, name, imageURL string, unitPrice decimal.Decimal, quantity int) models.OrderItem {
	return models.OrderItem{
		ProductID:        productID,
		SellerID:         sellerID,
		ProductName:      name,
		ProductImageURL:  imageURL,
		PriceAtOrderTime: unitPrice,
		Quantity:         quantity,
		LineTotal:        unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Currency:         a.currency,
		Status:           models.OrderItemStatusPending,
	}
}

// finish totals the lines. Tax is rounded before the total is formed so the
// persisted identity total == sub_total + tax holds exactly.
func (a *Assembler) finish(buyerID, shippingAddress string, items []models.OrderItem) *models.Order {
	subTotal := decimal.Zero
	for _, item := range items {
		subTotal = subTotal.Add(item.LineTotal)
	}
	tax := subTotal.Mul(taxRate).Round(2)

	return &models.Order{
		BuyerID:         buyerID,
		Items:           items,
		SubTotal:        subTotal,
		Tax:             tax,
		Total:           subTotal.Add(tax),
		ShippingAddress: shippingAddress,
	}
}
