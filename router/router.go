package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehall/restaurant-foh/config"
	"github.com/dinehall/restaurant-foh/controllers"
	"github.com/dinehall/restaurant-foh/middlewares"
	"github.com/dinehall/restaurant-foh/services"
)

// SetupRouter merangkai alur FOH: login -> grid meja -> menu/cart ->
// submit order -> board/kitchen menggerakkan lifecycle.
func SetupRouter(db *gorm.DB, policy config.Policy, board *services.OrderBoard) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	orderSvc := services.NewOrderService(db, policy)

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db, policy)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db, orderSvc)
	boardCtrl := controllers.NewBoardController(board)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.NewRateLimiter(120, 60).RateLimit())
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)

	// TABLES (grid FOH + administrasi meja)
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTableStatus)
	auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// MENU
	auth.GET("/menu", menuCtrl.GetAllMenuItems)
	auth.GET("/menu/:menu_id", menuCtrl.GetMenuItemByID)
	auth.POST("/menu", menuCtrl.CreateMenuItem)
	auth.PATCH("/menu/:menu_id", menuCtrl.UpdateMenuItem)
	auth.DELETE("/menu/:menu_id", menuCtrl.DeleteMenuItem)

	// ORDERS (submit + lifecycle)
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.POST("/orders/:order_id/prepare", orderCtrl.StartPreparing)
	auth.POST("/orders/:order_id/ready", orderCtrl.MarkReady)
	auth.POST("/orders/:order_id/serve", orderCtrl.MarkServed)
	auth.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)

	// BOARD (admin) + kitchen display
	auth.GET("/board/orders", boardCtrl.GetActiveOrders)
	auth.GET("/kitchen/display", boardCtrl.GetKitchenDisplay)

	// WebSocket live feed, token lewat query
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/stream", controllers.FOHStreamHandler)
	}

	return r
}
