package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smartmenu/events"
	"smartmenu/middlewares"
	"smartmenu/models"
	"smartmenu/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// GetAllOrders -> the owner's orders, newest first, optional status
// filter
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)

	query := oc.DB.Preload("Items").Where("user_id = ?", identity.ID).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", status))
			return
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order with its items
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("Items").Where("id = ? AND user_id = ?", id, identity.ID).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> move an order through its workflow
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, _ := strconv.Atoi(c.Param("order_id"))

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidOrderStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", req.Status))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").Where("id = ? AND user_id = ?", id, identity.ID).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	order.Status = req.Status
	if req.Status == models.OrderStatusCompleted {
		now := time.Now()
		order.CompletedAt = &now
	}

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrderUpdate(order)
	utils.InfoLogger.Printf("Order %s status changed to %s", order.OrderNumber, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder -> drop an order entirely
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Where("id = ? AND user_id = ?", id, identity.ID).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	if err := oc.DB.Select("Items").Delete(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s deleted (user=%d)", order.OrderNumber, identity.ID)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"id": order.ID})
}
