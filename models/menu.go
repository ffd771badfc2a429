package models

import "time"

// Menu adalah katalog item yang dikelola di luar core ini;
// dari sini hanya dibaca untuk snapshot harga dan cek ketersediaan.
type Menu struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAvailable bool      `gorm:"not null" json:"is_available"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
