package services

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/dinehall/restaurant-foh/models"
	"github.com/dinehall/restaurant-foh/utils"
)

// OrderBoard adalah read model daftar order aktif untuk tampilan admin/kitchen.
// Order served tidak ikut; cancelled tetap tampil. Snapshot terakhir yang
// berhasil di-fetch dipertahankan saat fetch berikutnya gagal, supaya board
// tidak "berkedip" kosong karena gangguan sesaat.
type OrderBoard struct {
	DB *gorm.DB

	mu      sync.RWMutex
	orders  []models.Order
	loaded  bool
	nextGen uint64
	applied uint64

	changes chan struct{}
}

func NewOrderBoard(db *gorm.DB) *OrderBoard {
	return &OrderBoard{
		DB:      db,
		changes: make(chan struct{}, 1),
	}
}

// Refresh -> ambil ulang order aktif. Aman dipanggil bersamaan dari
// notifikasi perubahan dan refresh manual; fetch yang selesai terakhir
// yang menang, fetch lama tidak menimpa hasil yang lebih baru.
func (b *OrderBoard) Refresh(ctx context.Context) ([]models.Order, error) {
	b.mu.Lock()
	b.nextGen++
	gen := b.nextGen
	b.mu.Unlock()

	var orders []models.Order
	err := b.DB.WithContext(ctx).
		Preload("Table").
		Preload("OrderItems").
		Where("status <> ?", models.OrderServed).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		// Data lama tetap ditampilkan, error dilaporkan ke caller.
		return b.Snapshot(), &FetchError{What: "active orders", Err: err}
	}

	b.mu.Lock()
	if gen >= b.applied {
		b.orders = orders
		b.applied = gen
		b.loaded = true
	}
	result := make([]models.Order, len(b.orders))
	copy(result, b.orders)
	b.mu.Unlock()

	return result, nil
}

// Snapshot -> salinan hasil fetch terakhir yang berhasil.
func (b *OrderBoard) Snapshot() []models.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

// Loaded -> true setelah minimal satu Refresh berhasil.
func (b *OrderBoard) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loaded
}

// Notify -> tandai ada perubahan di storage order. Non-blocking;
// burst notifikasi dilebur jadi satu refresh.
func (b *OrderBoard) Notify() {
	select {
	case b.changes <- struct{}{}:
	default:
	}
}

// Run -> dengarkan notifikasi perubahan sampai ctx selesai.
// Teardown subscription terikat ke lifetime ctx pemanggil.
func (b *OrderBoard) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.changes:
			if _, err := b.Refresh(ctx); err != nil {
				utils.ErrorLogger.Printf("Board refresh after change failed: %v", err)
			}
		}
	}
}
