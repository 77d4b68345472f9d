package couponControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storelane/storefront-api/cache"
	"github.com/storelane/storefront-api/models"
	"github.com/storelane/storefront-api/pricing"
	"github.com/storelane/storefront-api/utils"
)

type ValidateCouponInput struct {
	Code  string   `json:"code" binding:"required"`
	Total *float64 `json:"total" binding:"required"`
}

type CouponInput struct {
	Code          string    `json:"code" binding:"required"`
	DiscountType  string    `json:"discount_type" binding:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue float64   `json:"discount_value" binding:"required,gt=0"`
	MinOrderValue float64   `json:"min_order_value" binding:"gte=0"`
	MaxDiscount   float64   `json:"max_discount" binding:"gte=0"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
	UsageLimit    int       `json:"usage_limit" binding:"gte=0"`
	IsActive      *bool     `json:"is_active"`
}

// FindByCode looks a coupon up case-insensitively, consulting the cache
// first when one is configured.
func FindByCode(c *gin.Context, db *gorm.DB, cc *cache.CouponCache, code string) (*models.Coupon, error) {
	if coupon := cc.Get(c.Request.Context(), code); coupon != nil {
		return coupon, nil
	}

	var coupon models.Coupon
	err := db.Where("LOWER(code) = LOWER(?)", code).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewCouponError(utils.CodeCouponNotFound, "coupon not found")
		}
		return nil, err
	}
	cc.Set(c.Request.Context(), &coupon)
	return &coupon, nil
}

// POST /user/coupons/validate
// Side-effect free: usage is only consumed when an order commits.
func ValidateCoupon(db *gorm.DB, cc *cache.CouponCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ValidateCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.FailBadRequest(c, err)
			return
		}
		if *input.Total < 0 {
			utils.Fail(c, utils.NewValidationError("total must not be negative"))
			return
		}

		coupon, err := FindByCode(c, db, cc, input.Code)
		if err != nil {
			utils.Fail(c, err)
			return
		}
		if err := coupon.Check(*input.Total, time.Now()); err != nil {
			utils.Fail(c, err)
			return
		}

		totals, err := pricing.ComputeTotals(
			[]pricing.Line{{Price: *input.Total, Quantity: 1}},
			coupon.Descriptor(),
			pricing.Policy{},
		)
		if err != nil {
			utils.Fail(c, err)
			return
		}

		utils.OK(c, http.StatusOK, gin.H{
			"code":           coupon.Code,
			"discount_type":  coupon.DiscountType,
			"discount_value": coupon.DiscountValue,
			"max_discount":   coupon.MaxDiscount,
			"discount":       totals.Discount,
		})
	}
}

// POST /admin/coupons
func CreateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.FailBadRequest(c, err)
			return
		}
		if !input.EndDate.After(input.StartDate) {
			utils.Fail(c, utils.NewValidationError("end_date must be after start_date"))
			return
		}

		coupon := models.Coupon{
			Code:          strings.ToUpper(strings.TrimSpace(input.Code)),
			DiscountType:  input.DiscountType,
			DiscountValue: input.DiscountValue,
			MinOrderValue: input.MinOrderValue,
			MaxDiscount:   input.MaxDiscount,
			StartDate:     input.StartDate,
			EndDate:       input.EndDate,
			UsageLimit:    input.UsageLimit,
			IsActive:      true,
		}
		if input.IsActive != nil {
			coupon.IsActive = *input.IsActive
		}

		if err := db.Create(&coupon).Error; err != nil {
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusCreated, coupon)
	}
}

// GET /admin/coupons
func GetAllCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupons []models.Coupon
		if err := db.Order("created_at DESC").Find(&coupons).Error; err != nil {
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusOK, coupons)
	}
}

// PUT /admin/coupons/:id
func UpdateCoupon(db *gorm.DB, cc *cache.CouponCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupon models.Coupon
		if err := db.First(&coupon, "id = ?", c.Param("id")).Error; err != nil {
			utils.Fail(c, utils.NewNotFoundError("coupon"))
			return
		}

		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.FailBadRequest(c, err)
			return
		}
		if !input.EndDate.After(input.StartDate) {
			utils.Fail(c, utils.NewValidationError("end_date must be after start_date"))
			return
		}

		coupon.Code = strings.ToUpper(strings.TrimSpace(input.Code))
		coupon.DiscountType = input.DiscountType
		coupon.DiscountValue = input.DiscountValue
		coupon.MinOrderValue = input.MinOrderValue
		coupon.MaxDiscount = input.MaxDiscount
		coupon.StartDate = input.StartDate
		coupon.EndDate = input.EndDate
		coupon.UsageLimit = input.UsageLimit
		if input.IsActive != nil {
			coupon.IsActive = *input.IsActive
		}

		if err := db.Save(&coupon).Error; err != nil {
			utils.Fail(c, err)
			return
		}
		cc.Invalidate(c.Request.Context(), coupon.Code)
		utils.OK(c, http.StatusOK, coupon)
	}
}

// DELETE /admin/coupons/:id
func DeleteCoupon(db *gorm.DB, cc *cache.CouponCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupon models.Coupon
		if err := db.First(&coupon, "id = ?", c.Param("id")).Error; err != nil {
			utils.Fail(c, utils.NewNotFoundError("coupon"))
			return
		}
		if err := db.Delete(&coupon).Error; err != nil {
			utils.Fail(c, err)
			return
		}
		cc.Invalidate(c.Request.Context(), coupon.Code)
		utils.OKMessage(c, http.StatusOK, "Coupon deleted")
	}
}
