package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dinehall/restaurant-foh/models"
)

func menuItem(id uint, name string, price string) models.MenuItem {
	return models.MenuItem{
		ID:       id,
		Name:     name,
		Category: "Mains",
		Price:    decimal.RequireFromString(price),
	}
}

func TestAddItemIncrementsExistingEntry(t *testing.T) {
	ct := New()
	burger := menuItem(1, "Burger", "10.00")

	ct.AddItem(burger)
	ct.AddItem(burger)

	items := ct.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, ct.Total().Equal(decimal.RequireFromString("20.00")))
}

func TestRemoveItemDecrementsThenDrops(t *testing.T) {
	ct := New()
	burger := menuItem(1, "Burger", "10.00")
	ct.AddItem(burger)
	ct.AddItem(burger)

	ct.RemoveItem(1)
	items := ct.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	// qty 1 -> entry hilang, bukan qty 0
	ct.RemoveItem(1)
	assert.True(t, ct.Empty())
}

func TestAddThenRemoveRoundTrip(t *testing.T) {
	ct := New()
	ct.AddItem(menuItem(1, "Burger", "10.00"))
	ct.RemoveItem(1)

	assert.True(t, ct.Empty())
	assert.True(t, ct.Total().IsZero())
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	ct := New()
	ct.AddItem(menuItem(1, "Burger", "10.00"))

	ct.RemoveItem(99)

	assert.Len(t, ct.Items(), 1)
}

func TestSetNotes(t *testing.T) {
	ct := New()
	ct.AddItem(menuItem(1, "Burger", "10.00"))

	ct.SetNotes(1, "no onions")
	assert.Equal(t, "no onions", ct.Items()[0].Notes)

	ct.SetNotes(1, "extra cheese")
	assert.Equal(t, "extra cheese", ct.Items()[0].Notes)

	// no-op untuk menu yang tidak ada
	ct.SetNotes(42, "whatever")
	assert.Len(t, ct.Items(), 1)
}

func TestTotalIsExactOverManyItems(t *testing.T) {
	// 0.10 dijumlah 1000x harus persis 100.00 (bukan drift float)
	ct := New()
	coffee := menuItem(7, "Coffee", "0.10")
	for i := 0; i < 1000; i++ {
		ct.AddItem(coffee)
	}

	assert.True(t, ct.Total().Equal(decimal.RequireFromString("100.00")),
		"got %s", ct.Total())
}

func TestTotalRecomputedFreshEachCall(t *testing.T) {
	ct := New()
	ct.AddItem(menuItem(1, "Burger", "10.00"))
	ct.AddItem(menuItem(2, "Soda", "5.50"))

	assert.True(t, ct.Total().Equal(decimal.RequireFromString("15.50")))

	ct.AddItem(menuItem(1, "Burger", "10.00"))
	assert.True(t, ct.Total().Equal(decimal.RequireFromString("25.50")))

	ct.RemoveItem(2)
	assert.True(t, ct.Total().Equal(decimal.RequireFromString("20.00")))
}

func TestQuantityNeverBelowOne(t *testing.T) {
	ct := New()
	item := menuItem(1, "Burger", "10.00")

	for i := 0; i < 5; i++ {
		ct.AddItem(item)
	}
	for i := 0; i < 10; i++ {
		ct.RemoveItem(1)
		for _, it := range ct.Items() {
			assert.GreaterOrEqual(t, it.Quantity, 1)
		}
	}
	assert.True(t, ct.Empty())
}
