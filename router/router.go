package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smartmenu/controllers"
	"smartmenu/middlewares"
	"smartmenu/models"
	"smartmenu/services"
	"smartmenu/utils"
)

// SetupRouter wires every endpoint. The token manager is built once in
// main and threaded through here; nothing reads the signing key from
// ambient state.
func SetupRouter(db *gorm.DB, tm *utils.TokenManager, frontendURL string) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	authSvc := services.NewAuthService(db, tm)
	sessionSvc := services.NewSessionService(db)

	authCtrl := controllers.NewAuthController(authSvc)
	publicCtrl := controllers.NewPublicController(db, sessionSvc)
	menuCtrl := controllers.NewMenuController(db)
	tableCtrl := controllers.NewTableController(db, frontendURL)
	orderCtrl := controllers.NewOrderController(db)
	feedbackCtrl := controllers.NewFeedbackController(db)
	dashboardCtrl := controllers.NewDashboardController(db)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	// ----------------------------------------------------------------
	//                      AUTH ROUTES
	// ----------------------------------------------------------------
	auth := api.Group("/auth")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
	}
	api.GET("/auth/me",
		middlewares.Authenticate(tm, db), middlewares.RequireAuth(), authCtrl.Me)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES (no auth)
	// ----------------------------------------------------------------
	public := api.Group("/public")
	{
		public.GET("/table/:table_id", publicCtrl.GetTableInfo)
		public.GET("/menu/:table_id", publicCtrl.GetMenuForTable)
		public.POST("/session", publicCtrl.TrackSession)
		public.GET("/session/:device_id", publicCtrl.GetSession)
		public.POST("/order", publicCtrl.PlaceOrder)
		public.GET("/order/:order_number", publicCtrl.GetOrderStatus)
		public.POST("/feedback", publicCtrl.SubmitFeedback)
	}

	// ----------------------------------------------------------------
	//                      OWNER ROUTES (bearer token)
	// ----------------------------------------------------------------
	owner := api.Group("/")
	owner.Use(middlewares.Authenticate(tm, db))
	owner.Use(middlewares.RequireRole(models.RoleOwner, models.RoleStaff))
	{
		// MENU ITEMS
		owner.GET("/menu-items", menuCtrl.GetAllMenuItems)
		owner.POST("/menu-items", menuCtrl.CreateMenuItem)
		owner.GET("/menu-items/:item_id", menuCtrl.GetMenuItemByID)
		owner.PUT("/menu-items/:item_id", menuCtrl.UpdateMenuItem)
		owner.PATCH("/menu-items/:item_id/toggle", menuCtrl.ToggleAvailability)
		owner.DELETE("/menu-items/:item_id", menuCtrl.DeleteMenuItem)

		// TABLES
		owner.GET("/tables", tableCtrl.GetAllTables)
		owner.POST("/tables", tableCtrl.CreateTable)
		owner.GET("/tables/:table_id", tableCtrl.GetTableByID)
		owner.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
		owner.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		// ORDERS
		owner.GET("/orders", orderCtrl.GetAllOrders)
		owner.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		owner.PUT("/orders/:order_id", orderCtrl.UpdateOrderStatus)
		owner.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

		// FEEDBACK
		owner.GET("/feedback", feedbackCtrl.GetAllFeedback)
		owner.GET("/feedback/stats", feedbackCtrl.GetFeedbackStats)
		owner.GET("/feedback/:feedback_id", feedbackCtrl.GetFeedbackByID)

		// DASHBOARD
		owner.GET("/dashboard/stats", dashboardCtrl.GetStats)
		owner.GET("/dashboard/recent-orders", dashboardCtrl.GetRecentOrders)
		owner.GET("/dashboard/top-items", dashboardCtrl.GetTopItems)
		owner.GET("/dashboard/recent-feedback", dashboardCtrl.GetRecentFeedback)
	}

	// WebSocket feed for the owner dashboard
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuth(tm, db))
	{
		ws.GET("/events", controllers.EventsHandler)
	}

	return r
}
