package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartmenu/events"
	"smartmenu/middlewares"
	"smartmenu/models"
	"smartmenu/utils"
)

type TableController struct {
	DB *gorm.DB
	// FrontendURL is the base the QR codes point customers at.
	FrontendURL string
}

func NewTableController(db *gorm.DB, frontendURL string) *TableController {
	return &TableController{DB: db, FrontendURL: frontendURL}
}

// GetAllTables -> the owner's tables and rooms
func (tc *TableController) GetAllTables(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)

	var tables []models.Table
	if err := tc.DB.Where("user_id = ?", identity.ID).Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// CreateTable -> register a table/room and mint its QR identity
func (tc *TableController) CreateTable(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)

	var req struct {
		TableNumber string `json:"table_number" binding:"required,max=50"`
		Room        bool   `json:"room"`
		Location    string `json:"location" binding:"max=100"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Table numbers are unique per owner.
	var count int64
	tc.DB.Model(&models.Table{}).
		Where("user_id = ? AND table_number = ?", identity.ID, req.TableNumber).
		Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("a table with this number already exists"))
		return
	}

	table := models.Table{
		UserID:      identity.ID,
		TableNumber: req.TableNumber,
		QRCodeID:    uuid.New().String(),
		Room:        req.Room,
		Location:    req.Location,
		Active:      true,
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// The QR URL embeds the table id, so it is filled in after the
	// first save.
	table.QRCodeURL = fmt.Sprintf("%s/customer-menu?table=%d", tc.FrontendURL, table.ID)
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableCreate(table)
	utils.InfoLogger.Printf("New table created: %s (user=%d)", table.TableNumber, identity.ID)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetTableByID -> detail of one table, owner-scoped
func (tc *TableController) GetTableByID(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, _ := strconv.Atoi(c.Param("table_id"))

	var table models.Table
	if err := tc.DB.Where("id = ? AND user_id = ?", id, identity.ID).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> rename or relocate a table
func (tc *TableController) UpdateTable(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, _ := strconv.Atoi(c.Param("table_id"))

	var table models.Table
	if err := tc.DB.Where("id = ? AND user_id = ?", id, identity.ID).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	var req struct {
		TableNumber *string `json:"table_number"`
		Room        *bool   `json:"room"`
		Location    *string `json:"location"`
		Active      *bool   `json:"active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TableNumber != nil {
		table.TableNumber = *req.TableNumber
	}
	if req.Room != nil {
		table.Room = *req.Room
	}
	if req.Location != nil {
		table.Location = *req.Location
	}
	if req.Active != nil {
		table.Active = *req.Active
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableUpdate(table)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> remove a table; its QR code stops resolving
func (tc *TableController) DeleteTable(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, _ := strconv.Atoi(c.Param("table_id"))

	var table models.Table
	if err := tc.DB.Where("id = ? AND user_id = ?", id, identity.ID).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableDelete(table)
	utils.InfoLogger.Printf("Table %d deleted (user=%d)", table.ID, identity.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}
