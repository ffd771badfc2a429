package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	item := OrderItem{Quantity: 2, PriceAtTime: 4.5}
	assert.Equal(t, 9.0, item.LineTotal())

	// Perkalian desimal tidak boleh drift (0.1 * 3 = 0.3, bukan 0.30000000000000004)
	item = OrderItem{Quantity: 3, PriceAtTime: 0.1}
	assert.Equal(t, 0.3, item.LineTotal())
}

func TestOrderTotalAmountLiveVersusFrozen(t *testing.T) {
	order := Order{
		Status: OrderStatusPending,
		Items: []OrderItem{
			{Quantity: 2, PriceAtTime: 4.5},
			{Quantity: 1, PriceAtTime: 3.0},
		},
	}
	assert.Equal(t, 12.0, order.TotalAmount())

	// Nilai beku menang atas item saat ini
	frozen := 20.0
	order.FinalTotal = &frozen
	order.Status = OrderStatusServed
	assert.Equal(t, 20.0, order.TotalAmount())

	// Order kosong sah dan bernilai nol
	empty := Order{Status: OrderStatusPending}
	assert.Equal(t, 0.0, empty.TotalAmount())
}

func TestSessionTotalAmount(t *testing.T) {
	frozen := 20.0
	session := TableSession{
		StartedAt: time.Now(),
		Orders: []Order{
			{Status: OrderStatusServed, FinalTotal: &frozen},
			{Status: OrderStatusPending, Items: []OrderItem{
				{Quantity: 2, PriceAtTime: 4.5},
				{Quantity: 1, PriceAtTime: 3.0},
			}},
		},
	}

	// Sesi masih terbuka: served pakai nilai beku, pending dihitung live
	assert.Equal(t, 32.0, session.TotalAmount())

	// Setelah ditutup final bill yang dipakai, bukan hitungan ulang
	bill := 32.0
	now := time.Now()
	session.FinalBill = &bill
	session.EndedAt = &now
	session.Orders = nil
	assert.Equal(t, 32.0, session.TotalAmount())
}

func TestSessionTotalAvoidsFloatDrift(t *testing.T) {
	// Sepuluh order pending @ 0.1 harus genap 1.0
	orders := make([]Order, 0, 10)
	for i := 0; i < 10; i++ {
		orders = append(orders, Order{
			Status: OrderStatusPending,
			Items:  []OrderItem{{Quantity: 1, PriceAtTime: 0.1}},
		})
	}
	session := TableSession{StartedAt: time.Now(), Orders: orders}
	assert.Equal(t, 1.0, session.TotalAmount())
}
