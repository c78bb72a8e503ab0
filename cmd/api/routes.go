package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"mughal/internal/handlers"
	"mughal/internal/middleware"
)

// routeDeps carries everything the router mounts.
type routeDeps struct {
	auth         *handlers.AuthHandler
	products     *handlers.ProductHandler
	parties      *handlers.PartyHandler
	transactions *handlers.TransactionHandler
	expenses     *handlers.ExpenseHandler
	reports      *handlers.ReportHandler
	backup       *handlers.BackupHandler

	sessions     middleware.SessionChecker
	backupAPIKey string
}

func newRouter(d routeDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/auth/login", d.auth.Login)

	// Backup routes (API key auth, not JWT)
	backup := v1.Group("/backup")
	backup.Use(middleware.BackupAuthMiddleware(d.backupAPIKey))
	backup.GET("/snapshot", d.backup.GetSnapshot)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(d.sessions))

	protected.POST("/auth/logout", d.auth.Logout)
	protected.GET("/auth/session", d.auth.GetSession)

	// Every role
	all := protected.Group("/", middleware.RequireRole(middleware.AllRoles...))
	all.GET("/reports/dashboard", d.reports.GetDashboard)
	all.GET("/reports/sales-chart", d.reports.GetSalesChart)
	all.GET("/insights", d.reports.GetInsights)
	all.GET("/products", d.products.ListProducts)
	all.GET("/products/:id", d.products.GetProduct)
	all.GET("/parties", d.parties.ListParties)
	all.GET("/parties/:id", d.parties.GetParty)
	all.GET("/transactions", d.transactions.ListTransactions)
	all.GET("/transactions/:id", d.transactions.GetTransaction)
	all.GET("/transactions/:id/invoice", d.transactions.GetInvoice)

	// Point of sale and returns
	counter := protected.Group("/", middleware.RequireRole(middleware.CounterRoles...))
	counter.POST("/sales", d.transactions.CreateSale)
	counter.GET("/returns/invoice/:id", d.transactions.GetReturnableInvoice)
	counter.POST("/returns", d.transactions.CreateReturn)

	// Purchasing, stock and statements
	stock := protected.Group("/", middleware.RequireRole(middleware.StockRoles...))
	stock.POST("/purchases", d.transactions.CreatePurchase)
	stock.POST("/products", d.products.CreateProduct)
	stock.PUT("/products/:id", d.products.UpdateProduct)
	stock.GET("/parties/:id/statement", d.parties.GetStatement)

	// Back office
	admin := protected.Group("/", middleware.RequireRole(middleware.AdminOnly...))
	admin.POST("/expenses", d.expenses.CreateExpense)
	admin.GET("/expenses", d.expenses.ListExpenses)
	admin.GET("/reports/profit-loss", d.reports.GetProfitAndLoss)
	admin.GET("/reports/profit-loss.csv", d.reports.DownloadProfitAndLoss)
	admin.GET("/reports/reconcile", d.reports.GetReconciliation)
	admin.GET("/login-logs", d.auth.GetLoginLogs)

	return router
}
