package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/minizon/minizon/internal/handlers"
	"github.com/minizon/minizon/internal/middleware"
)

// CORSMiddleware allows the browser frontend to talk to the API. The
// allowed origin comes from ALLOWED_ORIGIN; the fallback matches a local
// dev frontend.
func CORSMiddleware() gin.HandlerFunc {
	origin := os.Getenv("ALLOWED_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(CORSMiddleware())

	v1 := router.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// --- Public Catalog Routes ---
		v1.GET("/categories", h.GetAllCategories)
		v1.GET("/items", h.SearchItems)
		v1.GET("/items/:id", h.GetItem)
		v1.GET("/items/:id/ratings", h.GetItemRatings)
		v1.GET("/sellers/:id/ratings", h.GetSellerRatings)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			// Profile & balance
			auth.GET("/profile/me", h.GetMe)
			auth.PUT("/profile/me", h.UpdateMe)
			auth.POST("/profile/topup", h.TopUp)

			// Catalog management
			auth.POST("/categories", h.CreateCategory)
			auth.POST("/items", h.CreateItem)
			auth.POST("/items/:id/suggest-description", h.SuggestItemDescription)

			// Seller inventory
			auth.GET("/inventory", h.GetMyInventory)
			auth.POST("/inventory", h.CreateInventoryRecord)
			auth.PUT("/inventory/:item_id", h.UpdateInventoryRecord)
			auth.DELETE("/inventory/:item_id", h.DeleteInventoryRecord)

			// Cart & checkout
			auth.GET("/cart", h.GetCart)
			auth.POST("/cart/items", h.AddToCart)
			auth.PUT("/cart/items/:item_id/:seller_id", h.UpdateCartLine)
			auth.DELETE("/cart/items/:item_id/:seller_id", h.RemoveCartLine)
			auth.POST("/checkout", h.Checkout)

			// Buyer order history
			auth.GET("/orders", h.GetMyOrders)
			auth.GET("/orders/:id", h.GetOrderDetails)

			// Seller fulfillment
			auth.GET("/sales", h.GetMySales)
			auth.POST("/sales/:order_id/:item_id/fulfill", h.MarkLineFulfilled)

			// Ratings
			auth.POST("/items/:id/ratings", h.RateItem)
			auth.POST("/items/:id/ratings/:rater_id/upvote", h.UpvoteItemRating)
			auth.POST("/sellers/:id/ratings", h.RateSeller)
		}
	}

	return router
}
