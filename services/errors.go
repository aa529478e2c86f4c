package services

import (
	"errors"
	"fmt"

	"github.com/dinehall/restaurant-foh/models"
)

var (
	// ErrEmptyOrder -> submit dipanggil dengan cart kosong; tidak ada tulis sama sekali.
	ErrEmptyOrder = errors.New("order must contain at least one item")

	// ErrTableOccupied -> meja keburu dipakai order lain (conditional update gagal).
	ErrTableOccupied = errors.New("table is no longer available")

	// ErrTableNotFound -> tableID tidak ada sama sekali, beda dari meja terisi.
	ErrTableNotFound = errors.New("table not found")
)

// InvalidTransitionError -> transisi status order yang tidak ada di tabel transisi.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order transition %s -> %s", e.From, e.To)
}

// Langkah tulis dalam sekuens submit/advance, untuk WriteError.
const (
	StepOrderInsert  = "order_insert"
	StepItemsInsert  = "order_items_insert"
	StepTableOccupy  = "table_occupy"
	StepStatusUpdate = "order_status_update"
	StepTableRelease = "table_release"
)

// WriteError menandai langkah mana yang gagal supaya caller bisa
// menalar partial state (di dalam transaksi semuanya di-rollback).
type WriteError struct {
	Step string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write failed at %s: %v", e.Step, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// FetchError -> baca dari store gagal; data lama tetap boleh ditampilkan.
type FetchError struct {
	What string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.What, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
