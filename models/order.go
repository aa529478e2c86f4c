package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	TableID     uint            `gorm:"not null;index" json:"table_id"`
	Table       Table           `gorm:"foreignKey:TableID" json:"table"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes       string          `gorm:"type:text" json:"notes"`
	// IdempotencyKey diisi client saat submit; retry dengan key yang sama
	// mengembalikan order yang sudah ada, bukan membuat duplikat.
	IdempotencyKey *string     `gorm:"type:varchar(64);uniqueIndex" json:"idempotency_key,omitempty"`
	CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems     []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}
