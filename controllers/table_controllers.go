package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehall/restaurant-foh/config"
	"github.com/dinehall/restaurant-foh/models"
	"github.com/dinehall/restaurant-foh/realtime"
	"github.com/dinehall/restaurant-foh/utils"
)

type TableController struct {
	DB     *gorm.DB
	Policy config.Policy
}

func NewTableController(db *gorm.DB, policy config.Policy) *TableController {
	return &TableController{DB: db, Policy: policy}
}

// tableView -> meja + flag selectable sesuai kebijakan, untuk grid FOH
type tableView struct {
	models.Table
	StatusLabel string `json:"status_label"`
	Selectable  bool   `json:"selectable"`
}

// GetAllTables -> semua meja urut table_number
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("table_number ASC").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := make([]tableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, tableView{
			Table:       t,
			StatusLabel: t.Status.Display(),
			Selectable:  t.Selectable(tc.Policy.ReservedSelectable),
		})
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", views)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", tableView{
		Table:       table,
		StatusLabel: table.Status.Display(),
		Selectable:  table.Selectable(tc.Policy.ReservedSelectable),
	})
}

// CreateTable -> admin menambahkan meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	sess, _ := sessionFrom(c)
	if sess.Role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req struct {
		TableNumber int                `json:"table_number" binding:"required"`
		Seats       int                `json:"seats"`
		Status      models.TableStatus `json:"status"` // optional, default available
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Seats:       req.Seats,
		Status:      models.TableAvailable,
	}
	if table.Seats == 0 {
		table.Seats = 4
	}
	if req.Status != "" {
		if !req.Status.Valid() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("unknown table status"))
			return
		}
		table.Status = req.Status
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastTableUpdate(table)
	utils.InfoLogger.Printf("New table created: %d (status=%s)", table.TableNumber, table.Status)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// UpdateTableStatus -> admin/staff override status meja (reservasi dsb.)
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	sess, _ := sessionFrom(c)
	if sess.Role != "admin" && sess.Role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	tableID := c.Param("table_id")
	var body struct {
		Status models.TableStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !body.Status.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown table status"))
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.Status = body.Status
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastTableUpdate(table)
	utils.InfoLogger.Printf("Table %d status changed to %s", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// DeleteTable -> admin menghapus meja
func (tc *TableController) DeleteTable(c *gin.Context) {
	sess, _ := sessionFrom(c)
	if sess.Role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}
