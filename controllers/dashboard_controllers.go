package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smartmenu/middlewares"
	"smartmenu/models"
	"smartmenu/utils"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GetStats -> headline numbers for the owner dashboard
func (dc *DashboardController) GetStats(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalOrders   int64   `json:"total_orders"`
		TodayOrders   int64   `json:"today_orders"`
		PendingOrders int64   `json:"pending_orders"`
		TotalSales    float64 `json:"total_sales"`
		TodaySales    float64 `json:"today_sales"`
		ActiveItems   int64   `json:"active_items"`
		TablesCount   int64   `json:"tables_count"`
	}

	dc.DB.Model(&models.Order{}).Where("user_id = ?", identity.ID).Count(&stats.TotalOrders)
	dc.DB.Model(&models.Order{}).
		Where("user_id = ? AND DATE(created_at) = ?", identity.ID, today).
		Count(&stats.TodayOrders)
	dc.DB.Model(&models.Order{}).
		Where("user_id = ? AND status = ?", identity.ID, models.OrderStatusPending).
		Count(&stats.PendingOrders)

	dc.DB.Model(&models.Order{}).
		Where("user_id = ? AND status = ?", identity.ID, models.OrderStatusCompleted).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&stats.TotalSales)
	dc.DB.Model(&models.Order{}).
		Where("user_id = ? AND status = ? AND DATE(created_at) = ?", identity.ID, models.OrderStatusCompleted, today).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&stats.TodaySales)

	dc.DB.Model(&models.MenuItem{}).
		Where("user_id = ? AND available = ?", identity.ID, true).
		Count(&stats.ActiveItems)
	dc.DB.Model(&models.Table{}).Where("user_id = ?", identity.ID).Count(&stats.TablesCount)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// GetRecentOrders -> the ten most recent orders
func (dc *DashboardController) GetRecentOrders(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)

	var orders []models.Order
	if err := dc.DB.Where("user_id = ?", identity.ID).
		Order("created_at DESC").Limit(10).Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Recent orders", orders)
}

// GetTopItems -> best sellers by quantity across the owner's orders
func (dc *DashboardController) GetTopItems(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)

	var topItems []struct {
		Name         string  `json:"name"`
		TotalSold    int64   `json:"total_sold"`
		TotalRevenue float64 `json:"total_revenue"`
	}

	err := dc.DB.Model(&models.OrderItem{}).
		Select("order_items.menu_item_name AS name, SUM(order_items.quantity) AS total_sold, SUM(order_items.price * order_items.quantity) AS total_revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ?", identity.ID).
		Group("order_items.menu_item_name").
		Order("total_sold DESC").
		Limit(5).
		Scan(&topItems).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Top items", topItems)
}

// GetRecentFeedback -> the five most recent feedback entries
func (dc *DashboardController) GetRecentFeedback(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)

	var feedback []models.Feedback
	if err := dc.DB.Where("user_id = ?", identity.ID).
		Order("created_at DESC").Limit(5).Find(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Recent feedback", feedback)
}
