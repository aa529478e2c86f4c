package models

import "time"

type Table struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	TableNumber int         `gorm:"uniqueIndex;not null" json:"table_number"`
	Seats       int         `gorm:"not null;default:4" json:"seats"`
	Status      TableStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

// Selectable -> meja bisa dipilih untuk order baru selama tidak occupied.
// Meja reserved mengikuti kebijakan (reservedSelectable).
func (t Table) Selectable(reservedSelectable bool) bool {
	switch t.Status {
	case TableOccupied:
		return false
	case TableReserved:
		return reservedSelectable
	}
	return true
}
