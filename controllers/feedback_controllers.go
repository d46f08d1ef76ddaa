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

type FeedbackController struct {
	DB *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{DB: db}
}

// GetAllFeedback -> paged feedback for the owner with rating and
// order-number filters
func (fc *FeedbackController) GetAllFeedback(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 10
	}

	query := fc.DB.Model(&models.Feedback{}).Where("user_id = ?", identity.ID)

	if ratingStr := c.Query("rating"); ratingStr != "" {
		if rating, err := strconv.Atoi(ratingStr); err == nil && rating > 0 {
			query = query.Where("rating = ?", rating)
		}
	}
	if orderNumber := c.Query("order_number"); orderNumber != "" {
		query = query.Where("order_number LIKE ?", "%"+orderNumber+"%")
	}

	switch c.DefaultQuery("sort_by", "date_desc") {
	case "date_asc":
		query = query.Order("created_at ASC")
	case "rating_desc":
		query = query.Order("rating DESC").Order("created_at DESC")
	case "rating_asc":
		query = query.Order("rating ASC").Order("created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var entries []models.Feedback
	if err := query.Offset(page * size).Limit(size).Find(&entries).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	totalPages := int(total) / size
	if int(total)%size != 0 {
		totalPages++
	}

	utils.RespondJSON(c, http.StatusOK, "Feedback entries", gin.H{
		"entries":      entries,
		"current_page": page,
		"total_pages":  totalPages,
		"total_items":  total,
	})
}

// GetFeedbackByID -> one feedback entry, owner-scoped
func (fc *FeedbackController) GetFeedbackByID(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, _ := strconv.Atoi(c.Param("feedback_id"))

	var feedback models.Feedback
	if err := fc.DB.Where("id = ? AND user_id = ?", id, identity.ID).First(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("feedback not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Feedback detail", feedback)
}

// GetFeedbackStats -> average rating and the 1-5 star distribution
func (fc *FeedbackController) GetFeedbackStats(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)

	var total int64
	fc.DB.Model(&models.Feedback{}).Where("user_id = ?", identity.ID).Count(&total)

	var avgRating float64
	fc.DB.Model(&models.Feedback{}).Where("user_id = ?", identity.ID).
		Select("COALESCE(AVG(rating), 0)").Row().Scan(&avgRating)

	distribution := make(map[string]int64, 5)
	for rating := 1; rating <= 5; rating++ {
		var count int64
		fc.DB.Model(&models.Feedback{}).
			Where("user_id = ? AND rating = ?", identity.ID, rating).
			Count(&count)
		distribution[strconv.Itoa(rating)] = count
	}

	utils.RespondJSON(c, http.StatusOK, "Feedback stats", gin.H{
		"total_feedback":      total,
		"average_rating":      avgRating,
		"rating_distribution": distribution,
	})
}
