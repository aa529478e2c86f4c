package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem dibuat sekali saat submit dan tidak pernah diubah.
// UnitPrice adalah snapshot harga menu saat order, bukan harga menu terkini.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order        Order           `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID   uint            `gorm:"not null" json:"menu_item_id"`
	MenuItemName string          `gorm:"type:varchar(255);not null" json:"menu_item_name"`
	Category     string          `gorm:"type:varchar(100)" json:"category"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Notes        string          `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
}
