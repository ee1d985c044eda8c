package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	// Scraped products endpoints
	r.GET("/products/search", handler.SearchProducts)
	r.GET("/products/cached", handler.GetCachedProducts)

	// Watch monitor endpoints
	r.GET("/watches", handler.ListWatches)
	r.POST("/watches/:name/start", handler.StartWatch)
	r.POST("/watches/:name/stop", handler.StopWatch)

	// Inventory endpoints
	r.GET("/inventory", handler.ListInventory)
	r.POST("/inventory", handler.CreateInventory)
	r.PUT("/inventory/:id", handler.UpdateInventory)
	r.DELETE("/inventory/:id", handler.DeleteInventory)
	r.GET("/inventory/barcode/:barcode", handler.GetInventoryByBarcode)
	r.POST("/inventory/scan", handler.ScanInventory)

	// Health endpoint
	r.GET("/health", handler.GetHealth)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "Market Comb",
			"description": "Inventory tracker with marketplace watch monitors",
			"endpoints": map[string]string{
				"search":    "/products/search?keywords=<kw>&min_price=&max_price=&sort=",
				"cached":    "/products/cached",
				"watches":   "/watches",
				"inventory": "/inventory",
				"health":    "/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
