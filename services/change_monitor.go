package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/dinehall/restaurant-foh/models"
	"github.com/dinehall/restaurant-foh/realtime"
	"github.com/dinehall/restaurant-foh/utils"
)

// ChangeMonitor membaca change-log secara periodik dan meneruskan
// perubahan order/meja ke hub websocket dan OrderBoard. Ini pengganti
// subscription change feed dari store eksternal untuk device lain.
type ChangeMonitor struct {
	DB       *gorm.DB
	Board    *OrderBoard
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB, board *OrderBoard) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		Board:    board,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []models.DBChange

	tx := cm.DB.Begin()
	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Error fetching changes: %v", err)
		return
	}

	boardDirty := false
	for _, change := range changes {
		switch change.TableName {
		case "orders":
			cm.processOrderChange(change)
			boardDirty = true
		case "tables":
			cm.processTableChange(change)
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			utils.ErrorLogger.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.ErrorLogger.Printf("Error committing change batch: %v", err)
		return
	}

	// Sekali poke per batch, burst insert/update dilebur jadi satu refresh.
	if boardDirty {
		if cm.Board != nil {
			cm.Board.Notify()
		}
		realtime.BroadcastBoardRefresh()
	}
}

func (cm *ChangeMonitor) processOrderChange(change models.DBChange) {
	if change.ActionType == "DELETE" {
		return
	}

	var order models.Order
	if err := cm.DB.Preload("OrderItems").First(&order, change.RecordID).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching changed order %d: %v", change.RecordID, err)
		return
	}
	realtime.BroadcastOrderUpdate(order)
}

func (cm *ChangeMonitor) processTableChange(change models.DBChange) {
	if change.ActionType == "DELETE" {
		return
	}

	var table models.Table
	if err := cm.DB.First(&table, change.RecordID).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching changed table %d: %v", change.RecordID, err)
		return
	}
	realtime.BroadcastTableUpdate(table)
}
