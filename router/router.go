package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinein-app/controllers"
	"github.com/yeremiapane/dinein-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Rate limiter global per IP
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	// Inisialisasi controller
	tableCtrl := controllers.NewTableController(db)
	sessionCtrl := controllers.NewSessionController(db)
	orderCtrl := controllers.NewOrderController(db)
	menuCtrl := controllers.NewMenuController(db)
	analyticsCtrl := controllers.NewAnalyticsController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// WebSocket untuk floor-plan / kitchen display, token via query string
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.NewStrictRateLimiter())
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/:role", controllers.KDSHandler)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	// TABLES (floor plan)
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.GET("/tables/:table_id/session", sessionCtrl.GetActiveSession)

	// TABLE SESSIONS (seating)
	auth.POST("/table-sessions", sessionCtrl.OpenSession)
	auth.POST("/table-sessions/:session_id/close", sessionCtrl.CloseSession)

	// ORDERS
	auth.GET("/orders", orderCtrl.ListOrders)
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.POST("/orders/:order_id/toggle-served", orderCtrl.ToggleServed)
	auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

	// ORDER ITEMS
	auth.POST("/orders/:order_id/items", orderCtrl.AddOrderItem)
	auth.DELETE("/order-items/:item_id", orderCtrl.DeleteOrderItem)

	// MENU CATALOG (read-only lookup)
	auth.GET("/menus", menuCtrl.GetAllMenus)
	auth.GET("/menus/:menu_id", menuCtrl.GetMenuByID)

	// ANALYTICS
	auth.GET("/analytics/revenue/weekly", analyticsCtrl.GetWeeklyRevenue)

	// Routes khusus Admin
	admin := auth.Group("/")
	admin.Use(middlewares.RequireAdmin())
	{
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.DELETE("/table-sessions/:session_id", sessionCtrl.DeleteSession)
	}

	return r
}
