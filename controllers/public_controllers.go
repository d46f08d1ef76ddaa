package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smartmenu/events"
	"smartmenu/models"
	"smartmenu/services"
	"smartmenu/utils"
)

// PublicController serves the customer-facing endpoints reached by
// scanning a table QR code. Nothing here requires authentication.
type PublicController struct {
	DB       *gorm.DB
	Sessions *services.SessionService
}

func NewPublicController(db *gorm.DB, sessions *services.SessionService) *PublicController {
	return &PublicController{DB: db, Sessions: sessions}
}

// GetTableInfo -> table identity for the customer view
func (pc *PublicController) GetTableInfo(c *gin.Context) {
	tableID := c.Param("table_id")

	var table models.Table
	if err := pc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table info", gin.H{
		"id":           table.ID,
		"table_number": table.TableNumber,
		"user_id":      table.UserID,
		"qr_code_id":   table.QRCodeID,
		"qr_code_url":  table.QRCodeURL,
	})
}

// GetMenuForTable -> available menu items of the restaurant owning the
// table. A device_id query param also touches the customer session.
func (pc *PublicController) GetMenuForTable(c *gin.Context) {
	tableID := c.Param("table_id")

	var table models.Table
	if err := pc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	if deviceID := c.Query("device_id"); deviceID != "" {
		if _, err := pc.Sessions.Touch(deviceID, table.ID, table.UserID, "", ""); err != nil {
			utils.ErrorLogger.Printf("Failed to track session for device %s: %v", deviceID, err)
		}
	}

	var items []models.MenuItem
	if err := pc.DB.Where("user_id = ? AND available = ?", table.UserID, true).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu for table", gin.H{
		"table_id":     table.ID,
		"table_number": table.TableNumber,
		"menu_items":   items,
		"total_items":  len(items),
	})
}

// TrackSession -> record a device sighting at a table
func (pc *PublicController) TrackSession(c *gin.Context) {
	var req struct {
		DeviceID      string `json:"device_id" binding:"required"`
		TableID       uint   `json:"table_id" binding:"required"`
		CustomerName  string `json:"customer_name"`
		CustomerPhone string `json:"customer_phone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := pc.DB.First(&table, req.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	summary, err := pc.Sessions.Touch(req.DeviceID, table.ID, table.UserID, req.CustomerName, req.CustomerPhone)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session tracked", summary)
}

// GetSession -> returning-customer lookup by device id
func (pc *PublicController) GetSession(c *gin.Context) {
	deviceID := c.Param("device_id")

	summary, err := pc.Sessions.Lookup(deviceID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondJSON(c, http.StatusOK, "No session found", gin.H{
				"is_returning_customer": false,
			})
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session found", summary)
}

// PlaceOrder -> customer places an order without logging in. Prices
// come from the stored menu items, never from the request.
func (pc *PublicController) PlaceOrder(c *gin.Context) {
	var req struct {
		TableID      uint   `json:"table_id" binding:"required"`
		DeviceID     string `json:"device_id"`
		CustomerName string `json:"customer_name"`
		Notes        string `json:"notes"`
		Items        []struct {
			MenuItemID          uint   `json:"menu_item_id" binding:"required"`
			Quantity            int    `json:"quantity" binding:"required,min=1"`
			SpecialInstructions string `json:"special_instructions"`
		} `json:"items" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := pc.DB.First(&table, req.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	order := models.Order{
		UserID:        table.UserID,
		TableID:       table.ID,
		TableNumber:   table.TableNumber,
		DeviceID:      req.DeviceID,
		CustomerName:  req.CustomerName,
		OrderNumber:   utils.GenerateOrderNumber(),
		Status:        models.OrderStatusPending,
		CustomerNotes: req.Notes,
	}

	var subtotal float64
	for _, item := range req.Items {
		var menuItem models.MenuItem
		if err := pc.DB.First(&menuItem, item.MenuItemID).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("menu item %d not found", item.MenuItemID))
			return
		}
		if !menuItem.Available || menuItem.UserID != table.UserID {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("menu item %d is not available", item.MenuItemID))
			return
		}

		order.Items = append(order.Items, models.OrderItem{
			MenuItemID:          menuItem.ID,
			MenuItemName:        menuItem.Name,
			Price:               menuItem.Price,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		})
		subtotal += menuItem.Price * float64(item.Quantity)
	}

	order.Subtotal = subtotal
	order.Total = subtotal

	if err := pc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Remember the customer's name for next time.
	if req.CustomerName != "" && req.DeviceID != "" {
		pc.Sessions.SetCustomerName(req.DeviceID, req.CustomerName)
	}

	events.BroadcastOrderCreate(order)
	utils.InfoLogger.Printf("Order %s placed at table %s", order.OrderNumber, table.TableNumber)

	utils.RespondJSON(c, http.StatusCreated, "Order placed successfully", gin.H{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
		"total":        order.Total,
	})
}

// GetOrderStatus -> customer tracks their order by its order number
func (pc *PublicController) GetOrderStatus(c *gin.Context) {
	orderNumber := c.Param("order_number")

	var order models.Order
	if err := pc.DB.Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status", order)
}

// SubmitFeedback -> customer rates a completed order
func (pc *PublicController) SubmitFeedback(c *gin.Context) {
	var req struct {
		OrderNumber string `json:"order_number" binding:"required"`
		Rating      int    `json:"rating" binding:"required,min=1,max=5"`
		Comments    string `json:"comments"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := pc.DB.Where("order_number = ?", req.OrderNumber).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	feedback := models.Feedback{
		UserID:      order.UserID,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TableNumber: order.TableNumber,
		TotalAmount: order.Total,
		Rating:      req.Rating,
		Comments:    req.Comments,
	}

	if err := pc.DB.Create(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastFeedbackCreate(feedback)

	utils.RespondJSON(c, http.StatusOK, "Thank you for your feedback!", gin.H{
		"feedback_id": feedback.ID,
	})
}
