package productControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storelane/storefront-api/models"
	"github.com/storelane/storefront-api/utils"
)

type ProductInput struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Price       float64    `json:"price" binding:"required,gt=0"`
	SalePrice   *float64   `json:"sale_price"`
	SaleEndDate *time.Time `json:"sale_end_date"`
	Image       string     `json:"image"`
	Stock       int        `json:"stock" binding:"gte=0"`
	CategoryID  uint       `json:"category_id"`
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.FailBadRequest(c, err)
			return
		}
		if input.SalePrice != nil && *input.SalePrice < 0 {
			utils.Fail(c, utils.NewValidationError("sale_price must not be negative"))
			return
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			SalePrice:   input.SalePrice,
			SaleEndDate: input.SaleEndDate,
			Image:       input.Image,
			Stock:       input.Stock,
			CategoryID:  input.CategoryID,
		}
		if err := db.Create(&product).Error; err != nil {
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusCreated, product)
	}
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			utils.Fail(c, utils.NewNotFoundError("product"))
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.FailBadRequest(c, err)
			return
		}

		product.Name = input.Name
		product.Description = input.Description
		product.Price = input.Price
		product.SalePrice = input.SalePrice
		product.SaleEndDate = input.SaleEndDate
		product.Image = input.Image
		product.Stock = input.Stock
		product.CategoryID = input.CategoryID

		if err := db.Save(&product).Error; err != nil {
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusOK, product)
	}
}

// DELETE /admin/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Product{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			utils.Fail(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			utils.Fail(c, utils.NewNotFoundError("product"))
			return
		}
		utils.OKMessage(c, http.StatusOK, "Product deleted")
	}
}

// GET /user/products and /admin/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Category").Order("created_at DESC")
		if categoryID := c.Query("category_id"); categoryID != "" {
			query = query.Where("category_id = ?", categoryID)
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusOK, products)
	}
}

// GET /user/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			utils.Fail(c, utils.NewValidationError("invalid product id"))
			return
		}

		var product models.Product
		if err := db.Preload("Category").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.Fail(c, utils.NewNotFoundError("product"))
				return
			}
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusOK, product)
	}
}
