// Package cart menampung pilihan menu sementara sebelum order disubmit.
// Murni in-memory, tidak ada I/O; satu Cart untuk satu komposisi order.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/dinehall/restaurant-foh/models"
)

// Item adalah satu baris cart: referensi menu + jumlah + catatan opsional.
type Item struct {
	MenuItemID uint            `json:"menu_item_id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	Notes      string          `json:"notes,omitempty"`
}

// Subtotal -> unit_price x quantity
func (it Item) Subtotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Cart menjaga urutan insert supaya tampilan stabil.
type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// AddItem -> kalau menu sudah ada di cart, quantity +1; kalau belum, entry baru qty 1.
func (ct *Cart) AddItem(mi models.MenuItem) {
	for i := range ct.items {
		if ct.items[i].MenuItemID == mi.ID {
			ct.items[i].Quantity++
			return
		}
	}
	ct.items = append(ct.items, Item{
		MenuItemID: mi.ID,
		Name:       mi.Name,
		Category:   mi.Category,
		UnitPrice:  mi.Price,
		Quantity:   1,
	})
}

// RemoveItem -> quantity -1; entry hilang dari cart saat quantity terakhir.
// No-op kalau menu tidak ada di cart. Tidak pernah ada entry dengan qty < 1.
func (ct *Cart) RemoveItem(menuItemID uint) {
	for i := range ct.items {
		if ct.items[i].MenuItemID != menuItemID {
			continue
		}
		if ct.items[i].Quantity > 1 {
			ct.items[i].Quantity--
		} else {
			ct.items = append(ct.items[:i], ct.items[i+1:]...)
		}
		return
	}
}

// SetNotes -> tulis/timpa catatan pada entry; no-op kalau tidak ada.
func (ct *Cart) SetNotes(menuItemID uint, notes string) {
	for i := range ct.items {
		if ct.items[i].MenuItemID == menuItemID {
			ct.items[i].Notes = notes
			return
		}
	}
}

// Total dihitung ulang setiap panggilan supaya tidak ada total basi.
func (ct *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range ct.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Items -> salinan isi cart, urut sesuai insert.
func (ct *Cart) Items() []Item {
	out := make([]Item, len(ct.items))
	copy(out, ct.items)
	return out
}

func (ct *Cart) Empty() bool {
	return len(ct.items) == 0
}
