package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smartmenu/middlewares"
	"smartmenu/models"
	"smartmenu/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenuItems -> owner's menu, optionally filtered by category or
// availability
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)

	query := mc.DB.Where("user_id = ?", identity.ID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("available") == "true" {
		query = query.Where("available = ?", true)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

type menuItemRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	Category        string  `json:"category"`
	ImageURL        string  `json:"image_url"`
	Available       *bool   `json:"available"`
	Allergens       string  `json:"allergens"`
	PrepTimeMinutes int     `json:"prep_time_minutes"`
	Featured        bool    `json:"featured"`
}

// CreateMenuItem -> add a dish to the owner's menu
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{
		UserID:          identity.ID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		Available:       true,
		Allergens:       req.Allergens,
		PrepTimeMinutes: req.PrepTimeMinutes,
		Featured:        req.Featured,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (user=%d)", item.Name, identity.ID)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// GetMenuItemByID -> detail of one dish, owner-scoped
func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.Where("id = ? AND user_id = ?", id, identity.ID).First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// UpdateMenuItem -> edit a dish
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.Where("id = ? AND user_id = ?", id, identity.ID).First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category
	item.ImageURL = req.ImageURL
	item.Allergens = req.Allergens
	item.PrepTimeMinutes = req.PrepTimeMinutes
	item.Featured = req.Featured
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// ToggleAvailability -> flip a dish on or off the live menu
func (mc *MenuController) ToggleAvailability(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.Where("id = ? AND user_id = ?", id, identity.ID).First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	item.Available = !item.Available
	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item availability toggled", item)
}

// DeleteMenuItem -> remove a dish from the menu
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.Where("id = ? AND user_id = ?", id, identity.ID).First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item %d deleted (user=%d)", item.ID, identity.ID)
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"id": item.ID})
}
