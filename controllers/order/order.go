package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storelane/storefront-api/cache"
	"github.com/storelane/storefront-api/middleware"
	"github.com/storelane/storefront-api/models"
	"github.com/storelane/storefront-api/pricing"
	"github.com/storelane/storefront-api/utils"
)

// -------- Request Structs --------

type CreateOrderRequest struct {
	ShippingAddress models.Address `json:"shipping_address" binding:"required"`
	ContactName     string         `json:"contact_name"`
	ContactPhone    string         `json:"contact_phone"`
	CouponCode      string         `json:"coupon_code"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// generateOrderRef builds a unique, sortable order reference.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// CreateOrder turns the caller's cart into an immutable priced order. Stock
// checks, stock decrements, coupon usage and the order insert commit together
// or not at all; product and coupon rows are locked for the duration so
// concurrent checkouts cannot both take the last unit or the last usage.
func CreateOrder(db *gorm.DB, userID string, req CreateOrderRequest, policy pricing.Policy) (*models.Order, error) {
	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewEmptyCartError()
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, utils.NewEmptyCartError()
	}

	now := time.Now()
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var (
			lines      []pricing.Line
			orderItems []models.OrderItem
			subtotal   float64
		)

		for _, item := range cart.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.NewNotFoundError("product")
				}
				return err
			}

			if product.Stock < item.Quantity {
				return utils.NewInsufficientStockError(product.Name)
			}

			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			subtotal += item.Price * float64(item.Quantity)
			lines = append(lines, pricing.Line{Price: item.Price, Quantity: item.Quantity})
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				UnitPrice:   item.Price,
				Quantity:    item.Quantity,
			})
		}
		subtotal = pricing.Round2(subtotal)

		// Re-validate the coupon against the locked row so a concurrent
		// checkout cannot spend the same last usage.
		var discount *pricing.Discount
		var coupon *models.Coupon
		if req.CouponCode != "" {
			var cp models.Coupon
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("LOWER(code) = LOWER(?)", req.CouponCode).First(&cp).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.NewCouponError(utils.CodeCouponNotFound, "coupon not found")
				}
				return err
			}
			if err := cp.Check(subtotal, now); err != nil {
				return err
			}
			cp.UsedCount++
			if err := tx.Save(&cp).Error; err != nil {
				return err
			}
			discount = cp.Descriptor()
			coupon = &cp
		}

		totals, err := pricing.ComputeTotals(lines, discount, policy)
		if err != nil {
			return err
		}

		order = models.Order{
			OrderRef:        generateOrderRef(),
			UserID:          userID,
			Items:           orderItems,
			Subtotal:        totals.Subtotal,
			Discount:        totals.Discount,
			Tax:             totals.Tax,
			Shipping:        totals.Shipping,
			Total:           totals.Total,
			Status:          models.OrderStatusPending,
			ShippingAddress: req.ShippingAddress,
			ContactName:     req.ContactName,
			ContactPhone:    req.ContactPhone,
			CreatedAt:       now,
			StatusHistory: []models.OrderStatusEvent{
				{Status: models.OrderStatusPending, CreatedAt: now},
			},
		}
		if coupon != nil {
			order.CouponCode = coupon.Code
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Checkout clears the cart, it does not delete it.
		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ApplyTransition moves an order to a new status if the transition table and
// the actor's role allow it, appending the status history row in the same
// transaction. The update is a compare-and-set on the status the caller saw;
// a concurrent transition that got there first makes this one fail as an
// illegal edge instead of silently overwriting it.
func ApplyTransition(db *gorm.DB, order *models.Order, to models.OrderStatus, actor models.Actor, note string) error {
	if err := models.CanTransition(order, to, actor); err != nil {
		return err
	}

	now := time.Now()
	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Update("status", to)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var current models.Order
			if err := tx.Select("status").First(&current, order.ID).Error; err != nil {
				return err
			}
			return utils.NewInvalidTransitionError(string(current.Status), string(to))
		}
		event := models.OrderStatusEvent{
			OrderID:   order.ID,
			Status:    to,
			Note:      note,
			CreatedAt: now,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		order.Status = to
		order.StatusHistory = append(order.StatusHistory, event)
		return nil
	})
}

// -------- Handlers --------

// POST /user/orders
func CreateOrderHandler(db *gorm.DB, cc *cache.CouponCache, policy pricing.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.FailBadRequest(c, err)
			return
		}

		order, err := CreateOrder(db, userID, req, policy)
		if err != nil {
			utils.Fail(c, err)
			return
		}

		if req.CouponCode != "" {
			cc.Invalidate(c.Request.Context(), req.CouponCode)
		}
		broadcastOrderEvent("order_created", order)
		utils.OK(c, http.StatusCreated, order)
	}
}

// GET /user/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Preload("StatusHistory").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusOK, orders)
	}
}

// loadOrder fetches an order by numeric id or order ref.
func loadOrder(db *gorm.DB, id string) (*models.Order, error) {
	query := db.Preload("Items").Preload("StatusHistory")

	var order models.Order
	var err error
	if numericID, convErr := strconv.Atoi(id); convErr == nil {
		err = query.First(&order, "id = ?", numericID).Error
	} else {
		err = query.First(&order, "order_ref = ?", id).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("order")
		}
		return nil, err
	}
	return &order, nil
}

// GET /user/orders/:order_id
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := loadOrder(db, c.Param("order_id"))
		if err != nil {
			utils.Fail(c, err)
			return
		}

		actor := middleware.CurrentActor(c)
		if actor.Role != models.RoleAdmin && order.UserID != actor.UserID {
			utils.Fail(c, utils.NewForbiddenError())
			return
		}
		utils.OK(c, http.StatusOK, order)
	}
}

// POST /user/orders/:order_id/cancel
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := loadOrder(db, c.Param("order_id"))
		if err != nil {
			utils.Fail(c, err)
			return
		}

		actor := middleware.CurrentActor(c)
		if actor.Role != models.RoleAdmin && order.UserID != actor.UserID {
			utils.Fail(c, utils.NewForbiddenError())
			return
		}

		note := "cancelled by customer"
		if actor.Role == models.RoleAdmin {
			note = "cancelled by admin"
		}
		if err := ApplyTransition(db, order, models.OrderStatusCancelled, actor, note); err != nil {
			utils.Fail(c, err)
			return
		}
		broadcastOrderEvent("order_status", order)
		utils.OK(c, http.StatusOK, order)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		query := db.
			Preload("User").
			Preload("Items").
			Preload("StatusHistory").
			Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if err := query.Find(&orders).Error; err != nil {
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusOK, orders)
	}
}

// PATCH /admin/orders/:order_id/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.FailBadRequest(c, err)
			return
		}

		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			utils.Fail(c, err)
			return
		}

		order, err := loadOrder(db, c.Param("order_id"))
		if err != nil {
			utils.Fail(c, err)
			return
		}

		if err := ApplyTransition(db, order, newStatus, middleware.CurrentActor(c), req.Note); err != nil {
			utils.Fail(c, err)
			return
		}
		broadcastOrderEvent("order_status", order)
		utils.OK(c, http.StatusOK, order)
	}
}
