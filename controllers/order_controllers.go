package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dinehall/restaurant-foh/cart"
	"github.com/dinehall/restaurant-foh/models"
	"github.com/dinehall/restaurant-foh/services"
	"github.com/dinehall/restaurant-foh/utils"
)

type OrderController struct {
	DB      *gorm.DB
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB, svc *services.OrderService) *OrderController {
	return &OrderController{DB: db, Service: svc}
}

// CreateOrder -> submit order untuk satu meja.
// Harga diambil dari menu sekali di sini (snapshot masuk cart);
// sekuens tulisnya sendiri tidak membaca ulang harga menu.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type itemReq struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required,min=1,max=50"`
		Notes      string `json:"notes"`
	}
	var body struct {
		TableID        uint      `json:"table_id" binding:"required"`
		Notes          string    `json:"notes"`
		IdempotencyKey string    `json:"idempotency_key"`
		Items          []itemReq `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.IdempotencyKey != "" {
		if _, err := uuid.Parse(body.IdempotencyKey); err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("idempotency_key must be a UUID"))
			return
		}
	}

	ct := cart.New()
	for _, it := range body.Items {
		var menu models.MenuItem
		if err := oc.DB.Where("available = ?", true).First(&menu, it.MenuItemID).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("menu item %d not found or unavailable", it.MenuItemID))
			return
		}
		for n := 0; n < it.Quantity; n++ {
			ct.AddItem(menu)
		}
		if it.Notes != "" {
			ct.SetNotes(menu.ID, it.Notes)
		}
	}

	order, err := oc.Service.SubmitOrder(c.Request.Context(), body.TableID, ct, body.Notes, body.IdempotencyKey)
	if err != nil {
		oc.respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> detail 1 order beserta items dan meja
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("Table").
		First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// StartPreparing -> kitchen mengambil order: pending => preparing
func (oc *OrderController) StartPreparing(c *gin.Context) {
	oc.advance(c, models.OrderPreparing, false)
}

// MarkReady -> masakan selesai: preparing => ready
func (oc *OrderController) MarkReady(c *gin.Context) {
	oc.advance(c, models.OrderReady, false)
}

// MarkServed -> order diantar: ready => served.
// release_table (default true) ikut membebaskan meja.
func (oc *OrderController) MarkServed(c *gin.Context) {
	release := true
	var body struct {
		ReleaseTable *bool `json:"release_table"`
	}
	if err := c.ShouldBindJSON(&body); err == nil && body.ReleaseTable != nil {
		release = *body.ReleaseTable
	}
	oc.advance(c, models.OrderServed, release)
}

// CancelOrder -> batalkan order non-terminal. Pembebasan meja
// mengikuti policy, bukan parameter caller.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	oc.advance(c, models.OrderCancelled, false)
}

func (oc *OrderController) advance(c *gin.Context, newStatus models.OrderStatus, releaseTable bool) {
	sess, _ := sessionFrom(c)
	if sess.Role != "admin" && sess.Role != "staff" && sess.Role != "kitchen" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	updated, err := oc.Service.Advance(c.Request.Context(), order.ID, newStatus, releaseTable)
	if err != nil {
		oc.respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order "+updated.Status.Display(), updated)
}

// respondServiceError -> petakan error service ke status HTTP.
// Failure tidak pernah dibiarkan bisu: selalu jadi respons yang jelas.
func (oc *OrderController) respondServiceError(c *gin.Context, err error) {
	var invalid *services.InvalidTransitionError
	var write *services.WriteError

	switch {
	case errors.Is(err, services.ErrEmptyOrder):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrTableNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrTableOccupied):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.As(err, &invalid):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.As(err, &write):
		utils.ErrorLogger.Printf("Order write failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
