package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dinehall/restaurant-foh/config"
	"github.com/dinehall/restaurant-foh/models"
	"github.com/dinehall/restaurant-foh/router"
	"github.com/dinehall/restaurant-foh/services"
	"github.com/dinehall/restaurant-foh/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestFrontOfHouseFlow menguji alur utama:
// 1. Login admin -> token
// 2. Lihat grid meja, pilih meja available
// 3. Submit order dari menu
// 4. Dapur: prepare -> ready, staff: serve (meja dibebaskan)
// 5. Board tidak lagi menampilkan order yang served
func TestFrontOfHouseFlow(t *testing.T) {
	db := setupIntegrationDB(t)
	policy := config.DefaultPolicy()
	board := services.NewOrderBoard(db)
	r := router.SetupRouter(db, policy, board)

	token := loginTest(t, r)

	// Grid meja
	tables := listTablesTest(t, r, token)
	require.NotEmpty(t, tables)
	assert.Equal(t, float64(1), tables[0]["table_number"])
	assert.Equal(t, true, tables[0]["selectable"])

	// Submit order
	orderID := createOrderTest(t, r, token)

	// Board menampilkan order pending
	activeBefore := boardOrdersTest(t, r, token)
	require.Len(t, activeBefore, 1)

	// Lifecycle sampai served
	for _, step := range []string{"prepare", "ready", "serve"} {
		w := doAuthedRequest(t, r, http.MethodPost,
			fmt.Sprintf("/api/orders/%d/%s", orderID, step), nil, token)
		require.Equal(t, http.StatusOK, w.Code, "step %s: %s", step, w.Body.String())
	}

	// Meja kembali available setelah serve
	var table models.Table
	require.NoError(t, db.First(&table, 1).Error)
	assert.Equal(t, models.TableAvailable, table.Status)

	// Board kosong lagi
	activeAfter := boardOrdersTest(t, r, token)
	assert.Empty(t, activeAfter)
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.DBChange{},
	))

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Name:     "Test Admin",
		Email:    "admin@example.com",
		Password: string(hashed),
		Role:     "admin",
	})

	db.Create(&models.Table{TableNumber: 1, Seats: 4, Status: models.TableAvailable})
	db.Create(&models.MenuItem{Name: "Margherita Pizza", Category: "Mains",
		Price: decimal.RequireFromString("11.00"), Available: true})
	db.Create(&models.MenuItem{Name: "Espresso", Category: "Drinks",
		Price: decimal.RequireFromString("2.50"), Available: true})
	return db
}

func loginTest(t *testing.T, r *gin.Engine) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
	})

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func doAuthedRequest(t *testing.T, r *gin.Engine, method, path string, body []byte, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func listTablesTest(t *testing.T, r *gin.Engine, token string) []map[string]interface{} {
	t.Helper()
	w := doAuthedRequest(t, r, http.MethodGet, "/api/tables", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func createOrderTest(t *testing.T, r *gin.Engine, token string) uint {
	t.Helper()
	body, _ := json.Marshal(map[string]interface{}{
		"table_id": 1,
		"notes":    "window seat",
		"items": []map[string]interface{}{
			{"menu_item_id": 1, "quantity": 2},
			{"menu_item_id": 2, "quantity": 1, "notes": "double shot"},
		},
	})

	w := doAuthedRequest(t, r, http.MethodPost, "/api/orders", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.TotalAmount.Equal(decimal.RequireFromString("24.50")),
		"total = %s", resp.Data.TotalAmount)
	require.Len(t, resp.Data.OrderItems, 2)

	// Meja langsung occupied setelah submit
	tables := listTablesTest(t, r, token)
	assert.Equal(t, false, tables[0]["selectable"])
	return resp.Data.ID
}

func boardOrdersTest(t *testing.T, r *gin.Engine, token string) []models.Order {
	t.Helper()
	w := doAuthedRequest(t, r, http.MethodGet, "/api/board/orders", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}
