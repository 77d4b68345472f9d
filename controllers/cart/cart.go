package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storelane/storefront-api/models"
	"github.com/storelane/storefront-api/utils"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type UpdateQuantityInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func snapshot(cart *models.Cart) gin.H {
	return gin.H{
		"cart_id": cart.CartID,
		"user_id": cart.UserID,
		"items":   cart.Items,
		"total":   cart.Total(),
	}
}

// loadCart fetches the user's cart with items, creating nothing.
func loadCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// POST /user/cart
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.FailBadRequest(c, err)
			return
		}
		if input.Quantity <= 0 {
			utils.Fail(c, utils.NewInvalidQuantityError())
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.Fail(c, utils.NewNotFoundError("product"))
				return
			}
			utils.Fail(c, err)
			return
		}

		now := time.Now()
		cart, err := loadCart(db, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.Fail(c, err)
				return
			}
			// Lazy cart creation on first add.
			cart = &models.Cart{UserID: userID}
			if err := db.Create(cart).Error; err != nil {
				utils.Fail(c, err)
				return
			}
		}

		// Merge into an existing line if present; every add re-snapshots the
		// current effective price.
		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ?", cart.CartID, product.ID).First(&item).Error
		switch {
		case err == nil:
			item.Quantity += input.Quantity
			item.Price = product.EffectivePrice(now)
			item.ProductName = product.Name
			item.AddedAt = now
			if err := db.Save(&item).Error; err != nil {
				utils.Fail(c, err)
				return
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:      cart.CartID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Price:       product.EffectivePrice(now),
				Quantity:    input.Quantity,
				AddedAt:     now,
			}
			if err := db.Create(&item).Error; err != nil {
				utils.Fail(c, err)
				return
			}
		default:
			utils.Fail(c, err)
			return
		}

		cart, err = loadCart(db, userID)
		if err != nil {
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusCreated, snapshot(cart))
	}
}

// PUT /user/cart/:item_id
func UpdateCartItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		itemID := c.Param("item_id")

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.FailBadRequest(c, err)
			return
		}

		cart, err := loadCart(db, userID)
		if err != nil {
			utils.Fail(c, utils.NewItemNotFoundError())
			return
		}

		var item models.CartItem
		if err := db.Where("cart_id = ? AND id = ?", cart.CartID, itemID).First(&item).Error; err != nil {
			utils.Fail(c, utils.NewItemNotFoundError())
			return
		}

		// Zero or negative quantity removes the line.
		if *input.Quantity <= 0 {
			if err := db.Delete(&item).Error; err != nil {
				utils.Fail(c, err)
				return
			}
		} else {
			item.Quantity = *input.Quantity
			if err := db.Save(&item).Error; err != nil {
				utils.Fail(c, err)
				return
			}
		}

		cart, err = loadCart(db, userID)
		if err != nil {
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusOK, snapshot(cart))
	}
}

// DELETE /user/cart/:item_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		itemID := c.Param("item_id")

		cart, err := loadCart(db, userID)
		if err != nil {
			utils.Fail(c, utils.NewItemNotFoundError())
			return
		}

		result := db.Where("cart_id = ? AND id = ?", cart.CartID, itemID).Delete(&models.CartItem{})
		if result.Error != nil {
			utils.Fail(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			utils.Fail(c, utils.NewItemNotFoundError())
			return
		}
		utils.OKMessage(c, http.StatusOK, "Cart item deleted")
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		cart, err := loadCart(db, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.OKMessage(c, http.StatusOK, "Cart cleared")
				return
			}
			utils.Fail(c, err)
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			utils.Fail(c, err)
			return
		}
		utils.OKMessage(c, http.StatusOK, "Cart cleared")
	}
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		cart, err := loadCart(db, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// A user without a cart sees an empty one.
				utils.OK(c, http.StatusOK, snapshot(&models.Cart{UserID: userID, Items: []models.CartItem{}}))
				return
			}
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusOK, snapshot(cart))
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			utils.Fail(c, utils.NewValidationError("user_id is required"))
			return
		}

		cart, err := loadCart(db, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.OK(c, http.StatusOK, snapshot(&models.Cart{UserID: userID, Items: []models.CartItem{}}))
				return
			}
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusOK, snapshot(cart))
	}
}
