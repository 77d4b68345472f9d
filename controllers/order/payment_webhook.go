package orderControllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storelane/storefront-api/models"
	"github.com/storelane/storefront-api/utils"
)

type PaymentWebhookRequest struct {
	OrderRef string `json:"order_ref" binding:"required"`
	Status   string `json:"status" binding:"required,oneof=authorized declined"`
	Note     string `json:"note"`
}

// PaymentWebhookAuth verifies the shared secret the payment gateway signs
// callbacks with.
func PaymentWebhookAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := os.Getenv("PAYMENT_WEBHOOK_SECRET")
		if secret == "" || c.GetHeader("X-Webhook-Secret") != secret {
			c.JSON(http.StatusUnauthorized, utils.Response{Success: false, Message: "invalid webhook credentials"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// POST /payment/webhook
// The gateway confirms or declines a payment; confirmation moves the order
// from pending to paid under the system actor.
func PaymentWebhookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentWebhookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.FailBadRequest(c, err)
			return
		}

		order, err := loadOrder(db, req.OrderRef)
		if err != nil {
			utils.Fail(c, err)
			return
		}

		if req.Status == "declined" {
			// Declined payments leave the order pending; the customer may
			// retry or cancel.
			utils.OKMessage(c, http.StatusOK, "payment declined recorded")
			return
		}

		actor := models.Actor{IsSystem: true}
		if err := ApplyTransition(db, order, models.OrderStatusPaid, actor, req.Note); err != nil {
			utils.Fail(c, err)
			return
		}
		broadcastOrderEvent("order_status", order)
		utils.OK(c, http.StatusOK, order)
	}
}
