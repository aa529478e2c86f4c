package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dinehall/restaurant-foh/cart"
	"github.com/dinehall/restaurant-foh/config"
	"github.com/dinehall/restaurant-foh/models"
	"github.com/dinehall/restaurant-foh/realtime"
	"github.com/dinehall/restaurant-foh/utils"
)

// OrderService memegang state machine order dan sekuens submit.
// Semua tulis multi-langkah dibungkus satu transaksi: order tanpa item
// atau item tanpa transisi meja tidak pernah bocor ke store.
type OrderService struct {
	DB     *gorm.DB
	Policy config.Policy
}

func NewOrderService(db *gorm.DB, policy config.Policy) *OrderService {
	return &OrderService{DB: db, Policy: policy}
}

// SubmitOrder -> buat order pending + order items (harga snapshot dari cart)
// + tandai meja occupied, semuanya all-or-nothing.
//
// idemKey boleh kosong. Kalau diisi dan sudah pernah dipakai, order lama
// dikembalikan tanpa tulis baru, supaya retry submit tidak menduplikasi.
func (s *OrderService) SubmitOrder(ctx context.Context, tableID uint, ct *cart.Cart, orderNotes string, idemKey string) (*models.Order, error) {
	if ct == nil || ct.Empty() {
		return nil, ErrEmptyOrder
	}

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout())
	defer cancel()
	db := s.DB.WithContext(ctx)

	if idemKey != "" {
		var existing models.Order
		err := db.Preload("OrderItems").Preload("Table").
			Where("idempotency_key = ?", idemKey).First(&existing).Error
		if err == nil {
			return &existing, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, &FetchError{What: "order by idempotency key", Err: err}
		}
	}

	order := models.Order{
		TableID:     tableID,
		TotalAmount: ct.Total(),
		Status:      models.OrderPending,
		Notes:       orderNotes,
	}
	if idemKey != "" {
		order.IdempotencyKey = &idemKey
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return &WriteError{Step: StepOrderInsert, Err: err}
		}

		entries := ct.Items()
		items := make([]models.OrderItem, 0, len(entries))
		for _, it := range entries {
			items = append(items, models.OrderItem{
				OrderID:      order.ID,
				MenuItemID:   it.MenuItemID,
				MenuItemName: it.Name,
				Category:     it.Category,
				Quantity:     it.Quantity,
				UnitPrice:    it.UnitPrice,
				// Subtotal dihitung ulang dari snapshot, jaga-jaga drift
				Subtotal: it.Subtotal(),
				Notes:    it.Notes,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return &WriteError{Step: StepItemsInsert, Err: err}
		}
		order.OrderItems = items

		// Occupy bersyarat: hanya kalau meja masih selectable.
		// Dua device yang rebutan meja yang sama: yang kedua gagal di sini.
		res := tx.Model(&models.Table{}).
			Where("id = ? AND status IN ?", tableID, s.selectableStatuses()).
			Update("status", models.TableOccupied)
		if res.Error != nil {
			return &WriteError{Step: StepTableOccupy, Err: res.Error}
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Table{}).Where("id = ?", tableID).Count(&count).Error; err != nil {
				return &WriteError{Step: StepTableOccupy, Err: err}
			}
			if count == 0 {
				return ErrTableNotFound
			}
			return ErrTableOccupied
		}
		return nil
	})
	if err != nil {
		// Dua submit dengan key sama bisa lolos lookup di atas berbarengan;
		// yang kalah nabrak unique index, kembalikan order yang sudah jadi.
		if idemKey != "" {
			var we *WriteError
			if errors.As(err, &we) && we.Step == StepOrderInsert {
				var existing models.Order
				ferr := db.Preload("OrderItems").Preload("Table").
					Where("idempotency_key = ?", idemKey).First(&existing).Error
				if ferr == nil {
					return &existing, nil
				}
			}
		}
		return nil, err
	}

	s.recordChange(db, "orders", int64(order.ID), "INSERT")
	s.recordChange(db, "tables", int64(tableID), "UPDATE")
	realtime.BroadcastOrderCreate(order)

	utils.InfoLogger.Printf("Order #%d submitted for table %d (total %s, %d items)",
		order.ID, tableID, utils.FormatCurrency(order.TotalAmount), len(order.OrderItems))
	return &order, nil
}

// Advance -> jalankan satu transisi status order.
//
// releaseTable hanya berlaku untuk transisi ke served dan dikontrol caller,
// bukan efek samping otomatis dari status. Cancel membebaskan meja
// mengikuti Policy.ReleaseTableOnCancel.
func (s *OrderService) Advance(ctx context.Context, orderID uint, newStatus models.OrderStatus, releaseTable bool) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout())
	defer cancel()
	db := s.DB.WithContext(ctx)

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return nil, &FetchError{What: "order", Err: err}
	}

	// Status terminal ditolak di sini, bukan sekadar disembunyikan view.
	if !newStatus.Valid() || !order.Status.CanTransitionTo(newStatus) {
		return nil, &InvalidTransitionError{From: order.Status, To: newStatus}
	}

	release := (newStatus == models.OrderServed && releaseTable) ||
		(newStatus == models.OrderCancelled && s.Policy.ReleaseTableOnCancel)

	err := db.Transaction(func(tx *gorm.DB) error {
		// Guarded pada status hasil baca: dua advance berbarengan tidak bisa
		// dua-duanya menang, yang telat kena 0 rows di sini.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Update("status", newStatus)
		if res.Error != nil {
			return &WriteError{Step: StepStatusUpdate, Err: res.Error}
		}
		if res.RowsAffected == 0 {
			var current models.Order
			if err := tx.First(&current, orderID).Error; err != nil {
				return &FetchError{What: "order", Err: err}
			}
			return &InvalidTransitionError{From: current.Status, To: newStatus}
		}
		if release {
			if err := tx.Model(&models.Table{}).
				Where("id = ?", order.TableID).
				Update("status", models.TableAvailable).Error; err != nil {
				return &WriteError{Step: StepTableRelease, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = newStatus
	s.recordChange(db, "orders", int64(order.ID), "UPDATE")
	if release {
		s.recordChange(db, "tables", int64(order.TableID), "UPDATE")
	}
	realtime.BroadcastOrderUpdate(order)

	utils.InfoLogger.Printf("Order #%d -> %s (table released: %v)", order.ID, newStatus, release)
	return &order, nil
}

func (s *OrderService) selectableStatuses() []models.TableStatus {
	statuses := []models.TableStatus{models.TableAvailable}
	if s.Policy.ReservedSelectable {
		statuses = append(statuses, models.TableReserved)
	}
	return statuses
}

func (s *OrderService) writeTimeout() time.Duration {
	if s.Policy.WriteTimeout > 0 {
		return s.Policy.WriteTimeout
	}
	return 5 * time.Second
}

// recordChange -> isi change-log untuk ChangeMonitor. Gagal tulis di sini
// tidak membatalkan operasi utamanya, cukup dicatat.
func (s *OrderService) recordChange(db *gorm.DB, table string, recordID int64, action string) {
	change := models.DBChange{
		TableName:  table,
		RecordID:   recordID,
		ActionType: action,
		ChangedAt:  time.Now(),
	}
	if err := db.Create(&change).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to record %s change for %s/%d: %v", action, table, recordID, err)
	}
}
