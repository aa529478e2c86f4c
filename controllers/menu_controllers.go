package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dinehall/restaurant-foh/models"
	"github.com/dinehall/restaurant-foh/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenuItems -> menu yang available, urut kategori lalu nama
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Where("available = ?", true).
		Order("category, name").
		Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// GetMenuItemByID -> detail 1 menu
func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// CreateMenuItem -> admin menambah menu
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	sess, _ := sessionFrom(c)
	if sess.Role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req struct {
		Name        string          `json:"name" binding:"required"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price" binding:"required"`
		Category    string          `json:"category" binding:"required"`
		Available   *bool           `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, errNegativePrice)
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Available:   true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (%s)", item.Name, utils.FormatCurrency(item.Price))
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem -> admin mengubah menu (harga baru tidak menyentuh order lama)
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	sess, _ := sessionFrom(c)
	if sess.Role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name        *string          `json:"name"`
		Description *string          `json:"description"`
		Price       *decimal.Decimal `json:"price"`
		Category    *string          `json:"category"`
		Available   *bool            `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			utils.RespondError(c, http.StatusBadRequest, errNegativePrice)
			return
		}
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem -> admin menonaktifkan menu; order lama tetap utuh
// karena order item menyimpan snapshot nama/harga sendiri.
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	sess, _ := sessionFrom(c)
	if sess.Role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"id": item.ID})
}
