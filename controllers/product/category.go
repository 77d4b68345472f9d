package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storelane/storefront-api/models"
	"github.com/storelane/storefront-api/utils"
)

type CategoryInput struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

// POST /admin/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.FailBadRequest(c, err)
			return
		}

		category := models.Category{Name: input.Name, Image: input.Image}
		if err := db.Create(&category).Error; err != nil {
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusCreated, category)
	}
}

// PUT /admin/categories/:id
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			utils.Fail(c, utils.NewNotFoundError("category"))
			return
		}

		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.FailBadRequest(c, err)
			return
		}

		category.Name = input.Name
		category.Image = input.Image
		if err := db.Save(&category).Error; err != nil {
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusOK, category)
	}
}

// DELETE /admin/categories/:id
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Category{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			utils.Fail(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			utils.Fail(c, utils.NewNotFoundError("category"))
			return
		}
		utils.OKMessage(c, http.StatusOK, "Category deleted")
	}
}

// GET /user/categories and /admin/categories
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Preload("Products").Find(&categories).Error; err != nil {
			utils.Fail(c, err)
			return
		}
		utils.OK(c, http.StatusOK, categories)
	}
}
