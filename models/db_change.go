package models

import "time"

// DBChange adalah change-log yang diisi setiap tulis order/meja,
// dipakai ChangeMonitor sebagai pengganti change feed dari store eksternal.
type DBChange struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	TableName  string    `gorm:"type:varchar(50);not null;index" json:"table_name"`
	RecordID   int64     `gorm:"not null" json:"record_id"`
	ActionType string    `gorm:"type:varchar(10);not null" json:"action_type"` // INSERT, UPDATE, DELETE
	ChangedAt  time.Time `gorm:"not null" json:"changed_at"`
	Processed  bool      `gorm:"not null;default:false;index" json:"processed"`
}
