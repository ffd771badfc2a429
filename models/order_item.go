package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order      Order  `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint   `gorm:"not null" json:"menu_item_id"`
	Menu       Menu   `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu,omitempty"`
	Quantity   int    `gorm:"not null" json:"quantity"`
	Note       string `gorm:"type:text" json:"note"`
	// Snapshot harga menu saat item dimasukkan; tidak pernah dibaca ulang
	// dari katalog supaya bill lama kebal terhadap perubahan harga.
	PriceAtTime float64   `gorm:"type:decimal(10,2);not null" json:"price_at_time"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// LineTotal = price_at_time * quantity, dibulatkan 2 desimal.
func (i *OrderItem) LineTotal() float64 {
	total, _ := decimal.NewFromFloat(i.PriceAtTime).
		Mul(decimal.NewFromInt(int64(i.Quantity))).
		Round(2).Float64()
	return total
}
