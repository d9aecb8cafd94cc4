package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"cafeorder-backend/models"
	"cafeorder-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

type CreateCategoryInput struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sortOrder"`
}

type UpdateCategoryInput struct {
	Name      *string `json:"name"`
	SortOrder *int    `json:"sortOrder"`
	IsActive  *bool   `json:"isActive"`
}

type ReorderEntry struct {
	ID        uuid.UUID `json:"id" binding:"required"`
	SortOrder int       `json:"order"`
}

type ReorderInput struct {
	Items []ReorderEntry `json:"items" binding:"required,min=1"`
}

// CreateCategory creates a new menu category for the cafe
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category := models.MenuCategory{
		CafeID:    cafeUUID,
		Name:      input.Name,
		SortOrder: input.SortOrder,
		IsActive:  true,
	}

	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, category)
}

// GetCategories retrieves all categories for the cafe, soft-deleted ones
// included, in admin display order.
func (cc *CategoryController) GetCategories(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	var categories []models.MenuCategory
	if err := cc.DB.Where("cafe_id = ?", cafeUUID).
		Order("sort_order asc, created_at asc").
		Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	utils.RespondWithData(c, http.StatusOK, categories)
}

// UpdateCategory updates an existing category
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}
	categoryUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var category models.MenuCategory
	if err := cc.DB.Where("cafe_id = ? AND id = ?", cafeUUID, categoryUUID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update category")
		return
	}

	utils.RespondWithData(c, http.StatusOK, category)
}

// DeleteCategory soft-deletes a category so it disappears from the
// storefront while historical data keeps referencing it.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}
	categoryUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := cc.DB.Model(&models.MenuCategory{}).
		Where("cafe_id = ? AND id = ?", cafeUUID, categoryUUID).
		Update("is_active", false)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, nil, "Category deleted successfully")
}

// ReorderCategories applies a batch of sort-order updates atomically.
// One unknown id rejects the whole batch; no partial reordering survives.
func (cc *CategoryController) ReorderCategories(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	var input ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := cc.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, entry := range input.Items {
		result := tx.Model(&models.MenuCategory{}).
			Where("cafe_id = ? AND id = ?", cafeUUID, entry.ID).
			Update("sort_order", entry.SortOrder)
		if result.Error != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reorder categories")
			return
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusNotFound, fmt.Sprintf("Category not found: %s", entry.ID))
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reorder categories")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, nil, "Categories reordered successfully")
}
