package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dinehall/restaurant-foh/models"
)

func setupMenuRouter(t *testing.T, role string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := setupControllerDB(t)
	mc := NewMenuController(db)

	r := gin.New()
	r.Use(fakeSession(role))
	r.GET("/menu", mc.GetAllMenuItems)
	r.GET("/menu/:menu_id", mc.GetMenuItemByID)
	r.POST("/menu", mc.CreateMenuItem)
	r.PATCH("/menu/:menu_id", mc.UpdateMenuItem)
	r.DELETE("/menu/:menu_id", mc.DeleteMenuItem)
	return r, db
}

func TestGetAllMenuItemsAvailableOnlySorted(t *testing.T) {
	r, db := setupMenuRouter(t, "staff")
	db.Create(&models.MenuItem{Name: "Tiramisu", Category: "Desserts", Price: decimal.RequireFromString("5.50"), Available: true})
	db.Create(&models.MenuItem{Name: "Burger", Category: "Mains", Price: decimal.RequireFromString("10.00"), Available: true})
	db.Create(&models.MenuItem{Name: "Old Special", Category: "Mains", Price: decimal.RequireFromString("9.00"), Available: false})
	db.Create(&models.MenuItem{Name: "Pizza", Category: "Mains", Price: decimal.RequireFromString("11.00"), Available: true})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menu", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.MenuItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Yang non-available tidak tampil; urut kategori lalu nama
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "Tiramisu", resp.Data[0].Name)
	assert.Equal(t, "Burger", resp.Data[1].Name)
	assert.Equal(t, "Pizza", resp.Data[2].Name)
}

func TestCreateMenuItemAdminOnly(t *testing.T) {
	r, db := setupMenuRouter(t, "staff")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/menu", jsonBody(t, gin.H{
		"name": "Burger", "price": "10.00", "category": "Mains",
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	db.Model(&models.MenuItem{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateMenuItemRejectsNegativePrice(t *testing.T) {
	r, _ := setupMenuRouter(t, "admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/menu", jsonBody(t, gin.H{
		"name": "Burger", "price": "-1.00", "category": "Mains",
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMenuItemPartialFields(t *testing.T) {
	r, db := setupMenuRouter(t, "admin")
	item := seedMenuItem(t, db, "Burger", "10.00")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/menu/1", jsonBody(t, gin.H{
		"price": "12.50", "available": false,
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.MenuItem
	require.NoError(t, db.First(&stored, item.ID).Error)
	assert.Equal(t, "Burger", stored.Name)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("12.50")))
	assert.False(t, stored.Available)
}

func TestMenuPriceChangeKeepsOrderSnapshot(t *testing.T) {
	r, db := setupMenuRouter(t, "admin")
	item := seedMenuItem(t, db, "Burger", "10.00")

	// Order lama menyimpan snapshot harga sendiri
	order := models.Order{TableID: 1, TotalAmount: decimal.RequireFromString("10.00"), Status: models.OrderPending}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&models.OrderItem{
		OrderID:      order.ID,
		MenuItemID:   item.ID,
		MenuItemName: item.Name,
		Quantity:     1,
		UnitPrice:    item.Price,
		Subtotal:     item.Price,
	}).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/menu/1", jsonBody(t, gin.H{"price": "15.00"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot models.OrderItem
	require.NoError(t, db.First(&snapshot, "order_id = ?", order.ID).Error)
	assert.True(t, snapshot.UnitPrice.Equal(decimal.RequireFromString("10.00")))
}

func TestDeleteMenuItem(t *testing.T) {
	r, db := setupMenuRouter(t, "admin")
	item := seedMenuItem(t, db, "Burger", "10.00")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/menu/1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.MenuItem{}).Where("id = ?", item.ID).Count(&count)
	assert.Zero(t, count)

	// Detail menu yang sudah dihapus -> 404
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menu/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
