package config

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// InitDB -> buka koneksi MySQL dari environment (.env dimuat di main)
func InitDB() (*gorm.DB, error) {
	user := getEnv("DB_USER", "root")
	pass := os.Getenv("DB_PASSWORD")
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "3306")
	name := getEnv("DB_NAME", "restaurant_foh")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name)

	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// Policy menampung keputusan bisnis yang sengaja dibuat eksplisit
// dan bisa dikonfigurasi, bukan tersirat di kode view.
type Policy struct {
	// ReservedSelectable: meja reserved boleh dipakai order baru.
	ReservedSelectable bool
	// ReleaseTableOnCancel: cancel order ikut membebaskan meja.
	ReleaseTableOnCancel bool
	// WriteTimeout membatasi lama satu sekuens tulis ke store.
	WriteTimeout time.Duration
}

// DefaultPolicy -> reserved tetap selectable (perilaku lama),
// cancel membebaskan meja, timeout tulis 5 detik.
func DefaultPolicy() Policy {
	return Policy{
		ReservedSelectable:   getEnvBool("FOH_RESERVED_SELECTABLE", true),
		ReleaseTableOnCancel: getEnvBool("FOH_RELEASE_ON_CANCEL", true),
		WriteTimeout:         5 * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return fallback
}
