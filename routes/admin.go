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
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires an admin
// role token or the admin API key.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cc *cache.CouponCache) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin)
	{
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.GET("", productControllers.GetProducts(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}

		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productControllers.CreateCategory(db))
			categoryAdmin.PUT("/:id", productControllers.UpdateCategory(db))
			categoryAdmin.GET("", productControllers.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productControllers.DeleteCategory(db))
		}

		couponAdmin := adminGroup.Group("/coupons")
		{
			couponAdmin.POST("", couponControllers.CreateCoupon(db))
			couponAdmin.GET("", couponControllers.GetAllCoupons(db))
			couponAdmin.PUT("/:id", couponControllers.UpdateCoupon(db, cc))
			couponAdmin.DELETE("/:id", couponControllers.DeleteCoupon(db, cc))
		}

		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
			orderAdmin.PATCH("/:order_id/status", orderControllers.UpdateOrderStatusHandler(db))
		}

		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(db))
	}
}
