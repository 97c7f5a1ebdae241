package models

import (
	"strings"
	"time"
)

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Address   Address   `gorm:"embedded" json:"address"`
	Cart      Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Orders    []Order   `gorm:"foreignKey:BuyerID;constraint:OnDelete:SET NULL" json:"orders"`
	CreatedAt time.Time `json:"created_at"`
}

// Address model embedded in User
type Address struct {
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}

// Snapshot flattens the address into the opaque string stored on an order.
func (a Address) Snapshot() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.City, a.State, a.PostalCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
