package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dinehall/restaurant-foh/models"
)

// setupMonitorDB -> sqlite shared-cache per nama test, karena monitor
// membaca lewat koneksi lain di samping transaksi batch-nya.
func setupMonitorDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.DBChange{},
	))
	db.Create(&models.Table{TableNumber: 1, Seats: 4, Status: models.TableOccupied})
	return db
}

func seedChange(t *testing.T, db *gorm.DB, table string, recordID int64) models.DBChange {
	t.Helper()
	change := models.DBChange{
		TableName:  table,
		RecordID:   recordID,
		ActionType: "INSERT",
		ChangedAt:  time.Now(),
	}
	require.NoError(t, db.Create(&change).Error)
	return change
}

func TestCheckChangesMarksProcessedAndPokesBoard(t *testing.T) {
	db := setupMonitorDB(t)

	order := seedOrder(t, db, models.OrderPending, time.Now())
	seedChange(t, db, "orders", int64(order.ID))
	seedChange(t, db, "tables", 1)

	board := NewOrderBoard(db)
	cm := NewChangeMonitor(db, board)
	cm.checkChanges()

	// Batch ter-mark processed, tidak diproses dua kali
	var pending int64
	db.Model(&models.DBChange{}).Where("processed = ?", false).Count(&pending)
	assert.Zero(t, pending)

	// Perubahan order bikin board dirty
	assert.Len(t, board.changes, 1)

	// Poll berikutnya tidak menemukan apa-apa dan tidak poke lagi
	cm.checkChanges()
	assert.Len(t, board.changes, 1)
}

func TestCheckChangesTableOnlySkipsBoard(t *testing.T) {
	db := setupMonitorDB(t)
	seedChange(t, db, "tables", 1)

	board := NewOrderBoard(db)
	cm := NewChangeMonitor(db, board)
	cm.checkChanges()

	var pending int64
	db.Model(&models.DBChange{}).Where("processed = ?", false).Count(&pending)
	assert.Zero(t, pending)

	// Perubahan meja saja tidak perlu refresh board order
	assert.Len(t, board.changes, 0)
}

func TestMonitorPollDrivesBoardRefresh(t *testing.T) {
	db := setupMonitorDB(t)

	board := NewOrderBoard(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go board.Run(ctx)

	cm := NewChangeMonitor(db, board)
	cm.Interval = 10 * time.Millisecond
	cm.Start()
	defer cm.Stop()

	order := seedOrder(t, db, models.OrderPending, time.Now())
	seedChange(t, db, "orders", int64(order.ID))

	assert.Eventually(t, func() bool {
		if len(board.Snapshot()) != 1 {
			return false
		}
		var pending int64
		db.Model(&models.DBChange{}).Where("processed = ?", false).Count(&pending)
		return pending == 0
	}, 2*time.Second, 10*time.Millisecond)
}
