package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TableSession merepresentasikan satu kali duduk di meja, dari open sampai close.
// Paling banyak satu sesi per meja boleh memiliki EndedAt = NULL.
type TableSession struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	TableID      uint        `gorm:"not null;index:idx_table_active" json:"table_id"`
	Table        DiningTable `gorm:"foreignKey:TableID;references:ID" json:"-"`
	CustomerName *string     `gorm:"type:varchar(255)" json:"customer_name"`
	StartedAt    time.Time   `gorm:"not null" json:"started_at"`
	EndedAt      *time.Time  `gorm:"index:idx_table_active" json:"ended_at"`
	FinalBill    *float64    `gorm:"type:decimal(10,2)" json:"final_bill"`
	Orders       []Order     `gorm:"foreignKey:SessionID" json:"orders,omitempty"`
}

func (s *TableSession) IsActive() bool {
	return s.EndedAt == nil
}

// TotalAmount mengembalikan final bill jika sesi sudah ditutup,
// kalau belum dihitung live dari seluruh order.
func (s *TableSession) TotalAmount() float64 {
	if s.FinalBill != nil {
		return *s.FinalBill
	}
	sum := decimal.Zero
	for _, o := range s.Orders {
		sum = sum.Add(decimal.NewFromFloat(o.TotalAmount()))
	}
	total, _ := sum.Round(2).Float64()
	return total
}
