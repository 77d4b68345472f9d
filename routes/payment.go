package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/storelane/storefront-api/controllers/order"
)

// SetupPaymentRoutes registers the payment-gateway callback. The gateway
// itself is external; only its webhook crosses into this service.
func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB) {
	payment := r.Group("/payment")
	{
		payment.POST("/webhook",
			orderControllers.PaymentWebhookAuth(),
			orderControllers.PaymentWebhookHandler(db),
		)
	}
}
