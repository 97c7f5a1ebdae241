package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/models"
)

// Lookup is the read-only product view the order path consumes.
type Lookup interface {
	GetByID(ctx context.Context, productID uint) (*models.Product, error)
}

type GormCatalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) GetByID(ctx context.Context, productID uint) (*models.Product, error) {
	var product models.Product
	err := c.db.WithContext(ctx).First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Newf(errs.KindNotFound, "product %d not found", productID)
	}
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "failed to fetch product", err)
	}
	return &product, nil
}
