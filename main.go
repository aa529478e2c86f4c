package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dinehall/restaurant-foh/config"
	"github.com/dinehall/restaurant-foh/models"
	"github.com/dinehall/restaurant-foh/router"
	"github.com/dinehall/restaurant-foh/services"
	"github.com/dinehall/restaurant-foh/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedIfEmpty(db)

	policy := config.DefaultPolicy()

	// Board hidup selama proses; subscription change feed ikut ctx ini.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	board := services.NewOrderBoard(db)
	if _, err := board.Refresh(ctx); err != nil {
		utils.ErrorLogger.Printf("Initial board load failed: %v", err)
	}
	go board.Run(ctx)

	monitor := services.NewChangeMonitor(db, board)
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(db, policy, board)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.DBChange{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seedIfEmpty -> isi meja dan menu contoh di environment kosong
// supaya grid FOH langsung bisa dipakai.
func seedIfEmpty(db *gorm.DB) {
	var tableCount int64
	db.Model(&models.Table{}).Count(&tableCount)
	if tableCount == 0 {
		for n := 1; n <= 8; n++ {
			seats := 4
			if n%3 == 0 {
				seats = 6
			}
			db.Create(&models.Table{TableNumber: n, Seats: seats, Status: models.TableAvailable})
		}
		utils.InfoLogger.Println("Seeded 8 tables")
	}

	var menuCount int64
	db.Model(&models.MenuItem{}).Count(&menuCount)
	if menuCount == 0 {
		items := []models.MenuItem{
			{Name: "Bruschetta", Description: "Grilled bread, tomato, basil", Price: decimal.RequireFromString("6.50"), Category: "Starters", Available: true},
			{Name: "Caesar Salad", Description: "Romaine, parmesan, croutons", Price: decimal.RequireFromString("8.00"), Category: "Starters", Available: true},
			{Name: "Margherita Pizza", Description: "Tomato, mozzarella, basil", Price: decimal.RequireFromString("11.00"), Category: "Mains", Available: true},
			{Name: "Grilled Salmon", Description: "With seasonal vegetables", Price: decimal.RequireFromString("16.50"), Category: "Mains", Available: true},
			{Name: "Tiramisu", Description: "Classic mascarpone dessert", Price: decimal.RequireFromString("5.50"), Category: "Desserts", Available: true},
			{Name: "Espresso", Description: "", Price: decimal.RequireFromString("2.50"), Category: "Drinks", Available: true},
		}
		for i := range items {
			db.Create(&items[i])
		}
		utils.InfoLogger.Printf("Seeded %d menu items", len(items))
	}
}
