package models

import "time"

type DiningTable struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Number    int            `gorm:"uniqueIndex;not null" json:"number"`
	Sessions  []TableSession `gorm:"foreignKey:TableID" json:"-"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

// TableOccupancy adalah proyeksi untuk floor-plan view staff:
// meja di-join dengan sesi aktifnya (jika ada).
type TableOccupancy struct {
	ID              uint       `json:"id"`
	Number          int        `json:"number"`
	IsOccupied      bool       `json:"is_occupied"`
	ActiveSessionID *uint      `json:"active_session_id"`
	CustomerName    *string    `json:"customer_name"`
	CustomerArrival *time.Time `json:"customer_arrival"`
}
