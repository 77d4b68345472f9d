package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storelane/storefront-api/cache"
	"github.com/storelane/storefront-api/pricing"
)

// SetupRoutes is the single entry-point that wires up the user, admin and
// payment route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cc *cache.CouponCache, policy pricing.Policy) {
	SetupUserRoutes(r, db, cc, policy)
	SetupAdminRoutes(r, db, cc)
	SetupPaymentRoutes(r, db)
}
