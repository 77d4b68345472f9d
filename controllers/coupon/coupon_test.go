package couponControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storelane/storefront-api/models"
	"github.com/storelane/storefront-api/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Coupon{}))
	return db
}

func newRouter(db *gorm.DB, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "tester")
		c.Set("role", role)
	})
	// Cache disabled in tests; a nil CouponCache is a no-op.
	r.POST("/user/coupons/validate", ValidateCoupon(db, nil))
	r.POST("/admin/coupons", CreateCoupon(db))
	r.GET("/admin/coupons", GetAllCoupons(db))
	r.PUT("/admin/coupons/:id", UpdateCoupon(db, nil))
	r.DELETE("/admin/coupons/:id", DeleteCoupon(db, nil))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func seedCoupon(t *testing.T, db *gorm.DB) models.Coupon {
	t.Helper()
	now := time.Now()
	cp := models.Coupon{
		Code:          "SUMMER25",
		DiscountType:  "PERCENTAGE",
		DiscountValue: 25,
		MaxDiscount:   30,
		MinOrderValue: 50,
		StartDate:     now.Add(-time.Hour),
		EndDate:       now.Add(time.Hour),
		UsageLimit:    100,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&cp).Error)
	return cp
}

func TestValidateCouponSuccess(t *testing.T) {
	db := newTestDB(t)
	seedCoupon(t, db)
	r := newRouter(db, models.RoleUser)

	w, resp := doJSON(t, r, http.MethodPost, "/user/coupons/validate", gin.H{
		"code": "SUMMER25", "total": 100,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "SUMMER25", data["code"])
	assert.Equal(t, 25.0, data["discount"]) // 25% of 100, below the 30 cap
}

func TestValidateCouponCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	seedCoupon(t, db)
	r := newRouter(db, models.RoleUser)

	w, _ := doJSON(t, r, http.MethodPost, "/user/coupons/validate", gin.H{
		"code": "summer25", "total": 100,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidateCouponAppliesMaxDiscountCap(t *testing.T) {
	db := newTestDB(t)
	seedCoupon(t, db)
	r := newRouter(db, models.RoleUser)

	_, resp := doJSON(t, r, http.MethodPost, "/user/coupons/validate", gin.H{
		"code": "SUMMER25", "total": 200,
	})
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, 30.0, data["discount"]) // 25% of 200 = 50, capped at 30
}

func TestValidateCouponRejections(t *testing.T) {
	db := newTestDB(t)
	cp := seedCoupon(t, db)
	r := newRouter(db, models.RoleUser)

	w, resp := doJSON(t, r, http.MethodPost, "/user/coupons/validate", gin.H{
		"code": "NOPE", "total": 100,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, utils.CodeCouponNotFound, resp.Code)

	w, resp = doJSON(t, r, http.MethodPost, "/user/coupons/validate", gin.H{
		"code": cp.Code, "total": 49.99,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.CodeMinimumNotMet, resp.Code)

	require.NoError(t, db.Model(&models.Coupon{}).Where("id = ?", cp.ID).Update("is_active", false).Error)
	w, resp = doJSON(t, r, http.MethodPost, "/user/coupons/validate", gin.H{
		"code": cp.Code, "total": 100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.CodeCouponInactive, resp.Code)
}

func TestValidateCouponZeroTotal(t *testing.T) {
	db := newTestDB(t)
	cp := seedCoupon(t, db)
	r := newRouter(db, models.RoleUser)

	// An explicit zero total is a legal subtotal and gets a domain answer,
	// not a binding error.
	w, resp := doJSON(t, r, http.MethodPost, "/user/coupons/validate", gin.H{
		"code": cp.Code, "total": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.CodeMinimumNotMet, resp.Code)

	w, resp = doJSON(t, r, http.MethodPost, "/user/coupons/validate", gin.H{
		"code": cp.Code, "total": -5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.CodeValidation, resp.Code)
}

func TestValidateCouponIsSideEffectFree(t *testing.T) {
	db := newTestDB(t)
	cp := seedCoupon(t, db)
	r := newRouter(db, models.RoleUser)

	for i := 0; i < 5; i++ {
		w, _ := doJSON(t, r, http.MethodPost, "/user/coupons/validate", gin.H{
			"code": cp.Code, "total": 100,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	var reloaded models.Coupon
	require.NoError(t, db.First(&reloaded, cp.ID).Error)
	assert.Equal(t, 0, reloaded.UsedCount)
}

func TestAdminCouponCRUD(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, models.RoleAdmin)
	now := time.Now()

	w, resp := doJSON(t, r, http.MethodPost, "/admin/coupons", gin.H{
		"code":           "welcome10",
		"discount_type":  "FIXED",
		"discount_value": 10,
		"start_date":     now.Format(time.RFC3339),
		"end_date":       now.Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := resp.Data.(map[string]interface{})
	// Codes are normalized to upper case on write.
	assert.Equal(t, "WELCOME10", data["code"])
	id := data["id"]

	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/admin/coupons/%v", id), gin.H{
		"code":           "WELCOME10",
		"discount_type":  "FIXED",
		"discount_value": 15,
		"start_date":     now.Format(time.RFC3339),
		"end_date":       now.Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusOK, w.Code)

	var cp models.Coupon
	require.NoError(t, db.Where("code = ?", "WELCOME10").First(&cp).Error)
	assert.Equal(t, 15.0, cp.DiscountValue)

	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/coupons/%v", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	err := db.Where("code = ?", "WELCOME10").First(&cp).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCouponRejectsInvertedWindow(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, models.RoleAdmin)
	now := time.Now()

	w, resp := doJSON(t, r, http.MethodPost, "/admin/coupons", gin.H{
		"code":           "BACKWARDS",
		"discount_type":  "FIXED",
		"discount_value": 5,
		"start_date":     now.Format(time.RFC3339),
		"end_date":       now.Add(-time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.CodeValidation, resp.Code)
}
