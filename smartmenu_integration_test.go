package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smartmenu/models"
	"smartmenu/router"
	"smartmenu/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the full customer journey:
// 0. Owner registers and logs in -> token
// 1. Owner creates a table (QR minted) and a menu item
// 2. Customer scans the QR, browses the menu, places an order
// 3. Owner works the order to completed
// 4. Customer leaves feedback by order number
// 5. Owner checks the dashboard stats
func TestEndToEndIntegration(t *testing.T) {
	db := setupTestDB()
	tm := utils.NewTokenManager([]byte("integration-secret"), time.Hour)
	r := router.SetupRouter(db, tm, "http://localhost:3000")

	registerTest(t, r)
	token := loginTest(t, r)

	tableID := createTableTest(t, r, token)
	itemID := createMenuItemTest(t, r, token)

	orderID, orderNumber := placeOrderTest(t, r, tableID, itemID)
	completeOrderTest(t, r, orderID, token)
	submitFeedbackTest(t, r, orderNumber)
	checkDashboardTest(t, r, token)
}

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.CustomerSession{},
		&models.Feedback{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	return db
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}, wantCode int) apiResponse {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != wantCode {
		t.Fatalf("%s %s: expected %d, got %d, body=%s", method, url, wantCode, w.Code, w.Body.String())
	}

	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, url, err)
	}
	return resp
}

func registerTest(t *testing.T, r *gin.Engine) {
	doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"username":        "integration_owner",
		"email":           "owner@example.com",
		"password":        "secret123",
		"restaurant_name": "Integration Cafe",
	}, http.StatusCreated)
}

func loginTest(t *testing.T, r *gin.Engine) string {
	resp := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "integration_owner",
		"password": "secret123",
	}, http.StatusOK)

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("loginTest: decode data: %v", err)
	}
	if data.Token == "" {
		t.Fatalf("loginTest: token empty")
	}
	return data.Token
}

func createTableTest(t *testing.T, r *gin.Engine, token string) uint {
	resp := doJSON(t, r, http.MethodPost, "/api/tables", token, map[string]interface{}{
		"table_number": "A1",
		"location":     "main hall",
	}, http.StatusCreated)

	var data struct {
		ID        uint   `json:"id"`
		QRCodeID  string `json:"qr_code_id"`
		QRCodeURL string `json:"qr_code_url"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("createTableTest: decode data: %v", err)
	}
	if data.QRCodeID == "" || data.QRCodeURL == "" {
		t.Fatalf("createTableTest: QR identity missing: %+v", data)
	}
	return data.ID
}

func createMenuItemTest(t *testing.T, r *gin.Engine, token string) uint {
	resp := doJSON(t, r, http.MethodPost, "/api/menu-items", token, map[string]interface{}{
		"name":     "Nasi Goreng",
		"price":    25000,
		"category": "Food",
	}, http.StatusCreated)

	var data struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("createMenuItemTest: decode data: %v", err)
	}
	return data.ID
}

func placeOrderTest(t *testing.T, r *gin.Engine, tableID, itemID uint) (uint, string) {
	// Customer first hits the menu with their device id, which starts
	// a session.
	doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/public/menu/%d?device_id=e2e-device", tableID), "", nil, http.StatusOK)

	resp := doJSON(t, r, http.MethodPost, "/api/public/order", "", map[string]interface{}{
		"table_id":      tableID,
		"device_id":     "e2e-device",
		"customer_name": "Walk-in Guest",
		"items": []map[string]interface{}{
			{"menu_item_id": itemID, "quantity": 2},
		},
	}, http.StatusCreated)

	var data struct {
		OrderID     uint    `json:"order_id"`
		OrderNumber string  `json:"order_number"`
		Status      string  `json:"status"`
		Total       float64 `json:"total"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("placeOrderTest: decode data: %v", err)
	}
	if data.Status != models.OrderStatusPending {
		t.Fatalf("placeOrderTest: expected status pending, got %s", data.Status)
	}
	if data.Total != 50000 {
		t.Fatalf("placeOrderTest: expected total 50000, got %v", data.Total)
	}
	return data.OrderID, data.OrderNumber
}

func completeOrderTest(t *testing.T, r *gin.Engine, orderID uint, token string) {
	for _, status := range []string{
		models.OrderStatusConfirmed,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusCompleted,
	} {
		doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/orders/%d", orderID), token,
			map[string]string{"status": status}, http.StatusOK)
	}

	resp := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), token, nil, http.StatusOK)
	var data struct {
		Status      string  `json:"status"`
		CompletedAt *string `json:"completed_at"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("completeOrderTest: decode data: %v", err)
	}
	if data.Status != models.OrderStatusCompleted {
		t.Fatalf("completeOrderTest: expected completed, got %s", data.Status)
	}
	if data.CompletedAt == nil {
		t.Fatalf("completeOrderTest: completed_at not set")
	}
}

func submitFeedbackTest(t *testing.T, r *gin.Engine, orderNumber string) {
	doJSON(t, r, http.MethodPost, "/api/public/feedback", "", map[string]interface{}{
		"order_number": orderNumber,
		"rating":       5,
		"comments":     "Fast and tasty",
	}, http.StatusOK)
}

func checkDashboardTest(t *testing.T, r *gin.Engine, token string) {
	resp := doJSON(t, r, http.MethodGet, "/api/dashboard/stats", token, nil, http.StatusOK)

	var data struct {
		TotalOrders int64   `json:"total_orders"`
		TotalSales  float64 `json:"total_sales"`
		TablesCount int64   `json:"tables_count"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("checkDashboardTest: decode data: %v", err)
	}
	if data.TotalOrders != 1 {
		t.Fatalf("checkDashboardTest: expected 1 order, got %d", data.TotalOrders)
	}
	if data.TotalSales != 50000 {
		t.Fatalf("checkDashboardTest: expected sales 50000, got %v", data.TotalSales)
	}
	if data.TablesCount != 1 {
		t.Fatalf("checkDashboardTest: expected 1 table, got %d", data.TablesCount)
	}
}
