package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending = "pending" // order masuk, masih bisa berubah
	OrderStatusServed  = "served"  // sudah diantar ke meja, total dibekukan
)

type Order struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	SessionID  uint         `gorm:"not null;index" json:"session_id"`
	Session    TableSession `gorm:"foreignKey:SessionID;references:ID" json:"-"`
	Status     string       `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
	ServedAt   *time.Time   `json:"served_at"`
	FinalTotal *float64     `gorm:"type:decimal(10,2)" json:"final_total"`
	Items      []OrderItem  `gorm:"foreignKey:OrderID" json:"items"`
}

// TotalAmount memakai nilai beku jika order sudah served,
// selain itu dihitung dari line total item saat ini (live kitchen display).
func (o *Order) TotalAmount() float64 {
	if o.FinalTotal != nil {
		return *o.FinalTotal
	}
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(decimal.NewFromFloat(item.LineTotal()))
	}
	total, _ := sum.Round(2).Float64()
	return total
}
