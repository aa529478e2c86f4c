package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dinehall/restaurant-foh/models"
	"github.com/dinehall/restaurant-foh/services"
	"github.com/dinehall/restaurant-foh/utils"
)

// BoardController menyajikan read model order aktif untuk admin.
type BoardController struct {
	Board *services.OrderBoard
}

func NewBoardController(board *services.OrderBoard) *BoardController {
	return &BoardController{Board: board}
}

// authorizeBoard -> satu-satunya titik keputusan akses board.
// Admin boleh; role yang belum ter-load juga boleh (profil belum tiba).
func authorizeBoard(sess models.Session, ok bool) bool {
	if !ok || sess.Role == "" {
		return true
	}
	return sess.Role == "admin"
}

// GetActiveOrders -> order non-served (cancelled ikut tampil),
// terbaru dulu. Saat fetch gagal, snapshot lama tetap dikirim.
func (bc *BoardController) GetActiveOrders(c *gin.Context) {
	if !authorizeBoard(sessionFrom(c)) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	orders, err := bc.Board.Refresh(c.Request.Context())
	if err != nil {
		utils.ErrorLogger.Printf("Board fetch failed, serving last snapshot: %v", err)
		if bc.Board.Loaded() {
			utils.RespondJSON(c, http.StatusOK, "Active orders (cached)", orders)
			return
		}
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Active orders", orders)
}

// GetKitchenDisplay -> order yang sedang dikerjakan dapur
func (bc *BoardController) GetKitchenDisplay(c *gin.Context) {
	sess, _ := sessionFrom(c)
	if sess.Role != "kitchen" && sess.Role != "staff" && sess.Role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	orders := bc.Board.Snapshot()
	display := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == models.OrderPending || o.Status == models.OrderPreparing || o.Status == models.OrderReady {
			display = append(display, o)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Kitchen display orders", display)
}
