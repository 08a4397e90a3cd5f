package routes

import (
	"time"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/controllers"
	"github.com/furnitune/furnitune-api/middleware"
	"github.com/furnitune/furnitune-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP engine with every API route registered
func SetupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	if !cfg.IsTest() {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	if cfg.AssetsDir != "" {
		router.Static("/assets", cfg.AssetsDir)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", controllers.HealthCheck)
		v1.GET("/database/status", controllers.DatabaseStatus)

		// Image tags cannot send a bearer token
		v1.GET("/uploads/:filename", controllers.GetUploadedImage)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
		}

		protected := v1.Group("")
		protected.Use(middleware.EnsureValidToken(cfg))
		{
			users := protected.Group("/users/me")
			{
				users.GET("", controllers.GetMyProfile)
				users.PUT("", controllers.UpdateMyProfile)
				users.PUT("/password", controllers.ChangeMyPassword)
				users.POST("/image", controllers.UploadProfileImage)
				users.GET("/stats", controllers.GetMyStats)
			}

			products := protected.Group("/products")
			{
				products.GET("", controllers.ListProducts)
				products.GET("/categories", controllers.ListCategories)
				products.GET("/:id", controllers.GetProduct)
				products.GET("/:id/reviews", controllers.GetProductReviews)
				products.GET("/:id/rating-distribution", controllers.GetRatingDistribution)
				products.GET("/:id/can-review", controllers.CanReviewProduct)
				products.GET("/:id/my-review", controllers.GetMyProductReview)
			}

			cart := protected.Group("/cart")
			{
				cart.GET("", controllers.GetCart)
				cart.POST("", controllers.AddToCart)
				cart.DELETE("", controllers.ClearCart)
				cart.PUT("/:id", controllers.UpdateCartItem)
				cart.DELETE("/:id", controllers.RemoveCartItem)
			}

			orders := protected.Group("/orders")
			{
				orders.GET("", controllers.ListOrders)
				orders.POST("", controllers.CreateOrder)
				orders.GET("/stats", controllers.GetOrderStats)
				orders.GET("/:id", controllers.GetOrder)
				orders.POST("/:id/cancel", controllers.CancelOrder)
				orders.PUT("/:id/status", middleware.RequireScope(services.ScopeManageOrders), controllers.UpdateOrderStatus)
			}

			reviews := protected.Group("/reviews")
			{
				reviews.POST("", controllers.CreateReview)
				reviews.GET("/me", controllers.ListMyReviews)
				reviews.DELETE("/:id", controllers.DeleteReview)
			}

			wishlist := protected.Group("/wishlist")
			{
				wishlist.GET("", controllers.GetWishlist)
				wishlist.GET("/ids", controllers.GetWishlistIDs)
				wishlist.GET("/:productId", controllers.CheckWishlist)
				wishlist.POST("/:productId", controllers.AddToWishlist)
				wishlist.DELETE("/:productId", controllers.RemoveFromWishlist)
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.ListNotifications)
				notifications.GET("/unread-count", controllers.GetUnreadCount)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.DELETE("/:id", controllers.DeleteNotification)
			}
		}
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	allowAll := len(origins) == 0
	for _, origin := range origins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
