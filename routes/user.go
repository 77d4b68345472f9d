package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storelane/storefront-api/cache"
	cartControllers "github.com/storelane/storefront-api/controllers/cart"
	couponControllers "github.com/storelane/storefront-api/controllers/coupon"
	orderControllers "github.com/storelane/storefront-api/controllers/order"
	productControllers "github.com/storelane/storefront-api/controllers/product"
	userControllers "github.com/storelane/storefront-api/controllers/user"
	"github.com/storelane/storefront-api/middleware"
	"github.com/storelane/storefront-api/pricing"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires a bearer token.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cc *cache.CouponCache, policy pricing.Policy) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/profile", userControllers.GetProfile(db))
		userGroup.PUT("/profile", userControllers.UpdateProfile(db))

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(db))
			cartGroup.POST("", cartControllers.AddCartItem(db))
			cartGroup.PUT("/:item_id", cartControllers.UpdateCartItemQuantity(db))
			cartGroup.DELETE("/:item_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("", cartControllers.ClearUserCart(db))
		}

		userGroup.POST("/coupons/validate", couponControllers.ValidateCoupon(db, cc))

		orderGroup := userGroup.Group("/orders")
		{
			orderGroup.POST("", orderControllers.CreateOrderHandler(db, cc, policy))
			orderGroup.GET("", orderControllers.GetUserOrdersHandler(db))
			orderGroup.GET("/:order_id", orderControllers.GetOrderByIDHandler(db))
			orderGroup.POST("/:order_id/cancel", orderControllers.CancelOrderHandler(db))
		}

		userGroup.GET("/products", productControllers.GetProducts(db))
		userGroup.GET("/products/:id", productControllers.GetProductByID(db))
		userGroup.GET("/categories", productControllers.GetAllCategories(db))
	}
}
