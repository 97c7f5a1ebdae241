package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	ImageURL  string          `json:"image_url"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	IsActive  bool            `gorm:"not null;default:true" json:"is_active"`
	SellerID  string          `gorm:"index;not null" json:"seller_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}
