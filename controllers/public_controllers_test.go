package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smartmenu/controllers"
	"smartmenu/models"
	"smartmenu/services"
	"smartmenu/utils"
)

func setupTestDBForPublic() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Table{}, &models.MenuItem{},
		&models.Order{}, &models.OrderItem{},
		&models.CustomerSession{}, &models.Feedback{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

func setupPublicRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	publicCtrl := controllers.NewPublicController(db, services.NewSessionService(db))
	pub := router.Group("/api/public")
	{
		pub.GET("/table/:table_id", publicCtrl.GetTableInfo)
		pub.GET("/menu/:table_id", publicCtrl.GetMenuForTable)
		pub.POST("/session", publicCtrl.TrackSession)
		pub.GET("/session/:device_id", publicCtrl.GetSession)
		pub.POST("/order", publicCtrl.PlaceOrder)
		pub.GET("/order/:order_number", publicCtrl.GetOrderStatus)
		pub.POST("/feedback", publicCtrl.SubmitFeedback)
	}
	return router
}

func seedRestaurant(db *gorm.DB, username string) (models.User, models.Table, []models.MenuItem) {
	hashed, _ := utils.HashPassword("password")
	owner := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hashed,
		Role:     models.RoleOwner,
		Active:   true,
	}
	db.Create(&owner)

	table := models.Table{
		UserID:      owner.ID,
		TableNumber: "T-" + username,
		QRCodeID:    "qr-" + username,
		Active:      true,
	}
	db.Create(&table)

	items := []models.MenuItem{
		{UserID: owner.ID, Name: "Nasi Goreng", Price: 25000, Category: "Food", Available: true},
		{UserID: owner.ID, Name: "Es Teh", Price: 5000, Category: "Drink", Available: true},
		{UserID: owner.ID, Name: "Sold Out Soup", Price: 30000, Category: "Food", Available: false},
	}
	for i := range items {
		db.Create(&items[i])
	}
	return owner, table, items
}

func TestGetTableInfo(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForPublic()
	_, table, _ := seedRestaurant(db, "pub_info")
	router := setupPublicRouter(db)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", fmt.Sprintf("/api/public/table/%d", table.ID), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, table.TableNumber, data["table_number"])

	// Unknown table id
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/public/table/999999", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMenuForTableOnlyAvailableItems(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForPublic()
	_, table, _ := seedRestaurant(db, "pub_menu")
	router := setupPublicRouter(db)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", fmt.Sprintf("/api/public/menu/%d?device_id=menu-device", table.ID), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total_items"])

	// Browsing with a device id also records the session.
	var session models.CustomerSession
	assert.NoError(t, db.Where("device_id = ?", "menu-device").First(&session).Error)
	assert.Equal(t, 1, session.VisitCount)
}

func TestTrackSessionAndLookup(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForPublic()
	_, table, _ := seedRestaurant(db, "pub_session")
	router := setupPublicRouter(db)

	payload := map[string]interface{}{
		"device_id":     "track-device",
		"table_id":      table.ID,
		"customer_name": "Dewi",
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/public/session", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Second visit flips the returning flag.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/public/session", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["visit_count"])
	assert.Equal(t, true, data["is_returning_customer"])
	assert.Equal(t, "Dewi", data["customer_name"])
}

func TestGetSessionUnknownDevice(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForPublic()
	router := setupPublicRouter(db)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/public/session/never-seen-device", nil)
	router.ServeHTTP(w, req)

	// Unknown devices are not an error, just not returning customers.
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_returning_customer"])
}

func TestPlaceOrderServerSidePricing(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForPublic()
	_, table, items := seedRestaurant(db, "pub_order")
	router := setupPublicRouter(db)

	payload := map[string]interface{}{
		"table_id":      table.ID,
		"device_id":     "order-device",
		"customer_name": "Rina",
		"items": []map[string]interface{}{
			{"menu_item_id": items[0].ID, "quantity": 2},
			{"menu_item_id": items[1].ID, "quantity": 1, "special_instructions": "less sugar"},
		},
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/public/order", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})

	// 2 x 25000 + 1 x 5000, priced from the stored menu regardless of
	// anything the client might claim.
	assert.Equal(t, float64(55000), data["total"])
	assert.Equal(t, models.OrderStatusPending, data["status"])
	assert.Regexp(t, regexp.MustCompile(`^ORD\d{17}$`), data["order_number"])

	// Placing an order with a name updates the device session.
	var session models.CustomerSession
	assert.NoError(t, db.Where("device_id = ?", "order-device").First(&session).Error)
	assert.Equal(t, "Rina", session.CustomerName)
}

func TestPlaceOrderRejectsUnavailableItem(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForPublic()
	_, table, items := seedRestaurant(db, "pub_order_bad")
	router := setupPublicRouter(db)

	payload := map[string]interface{}{
		"table_id": table.ID,
		"items": []map[string]interface{}{
			{"menu_item_id": items[2].ID, "quantity": 1}, // Sold Out Soup
		},
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/public/order", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderRejectsOtherRestaurantsItem(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForPublic()
	_, tableA, _ := seedRestaurant(db, "pub_cross_a")
	_, _, itemsB := seedRestaurant(db, "pub_cross_b")
	router := setupPublicRouter(db)

	payload := map[string]interface{}{
		"table_id": tableA.ID,
		"items": []map[string]interface{}{
			{"menu_item_id": itemsB[0].ID, "quantity": 1},
		},
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/public/order", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderStatusAndFeedback(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForPublic()
	_, table, items := seedRestaurant(db, "pub_feedback")
	router := setupPublicRouter(db)

	payload := map[string]interface{}{
		"table_id": table.ID,
		"items": []map[string]interface{}{
			{"menu_item_id": items[0].ID, "quantity": 1},
		},
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/public/order", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	orderNumber := createResp["data"].(map[string]interface{})["order_number"].(string)

	// Track by order number
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/public/order/"+orderNumber, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var statusResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &statusResp))
	orderData := statusResp["data"].(map[string]interface{})
	assert.Equal(t, models.OrderStatusPending, orderData["status"])
	assert.Len(t, orderData["items"], 1)

	// Leave feedback
	fbPayload := map[string]interface{}{
		"order_number": orderNumber,
		"rating":       5,
		"comments":     "Great food",
	}
	fbBody, _ := json.Marshal(fbPayload)
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/public/feedback", bytes.NewBuffer(fbBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var feedback models.Feedback
	assert.NoError(t, db.Where("order_number = ?", orderNumber).First(&feedback).Error)
	assert.Equal(t, 5, feedback.Rating)
	assert.Equal(t, table.TableNumber, feedback.TableNumber)

	// Out-of-range ratings are rejected by binding.
	fbPayload["rating"] = 6
	fbBody, _ = json.Marshal(fbPayload)
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/public/feedback", bytes.NewBuffer(fbBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
