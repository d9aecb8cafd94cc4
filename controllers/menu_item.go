package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"cafeorder-backend/models"
	"cafeorder-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type MenuItemController struct {
	DB *gorm.DB
}

func NewMenuItemController(db *gorm.DB) *MenuItemController {
	return &MenuItemController{DB: db}
}

type CreateMenuItemInput struct {
	CategoryID  uuid.UUID `json:"categoryId" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Price       float64   `json:"price" binding:"min=0"`
	ImageURL    string    `json:"imageUrl"`
	IsVeg       bool      `json:"isVeg"`
	SortOrder   int       `json:"sortOrder"`
}

type UpdateMenuItemInput struct {
	CategoryID  *uuid.UUID `json:"categoryId"`
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price"`
	ImageURL    *string    `json:"imageUrl"`
	IsAvailable *bool      `json:"isAvailable"`
	IsVeg       *bool      `json:"isVeg"`
	SortOrder   *int       `json:"sortOrder"`
}

type ReorderItemsInput struct {
	CategoryID uuid.UUID      `json:"categoryId" binding:"required"`
	Items      []ReorderEntry `json:"items" binding:"required,min=1"`
}

// categoryOwnedByCafe rejects cross-tenant category references at write time.
func (mc *MenuItemController) categoryOwnedByCafe(db *gorm.DB, cafeID, categoryID uuid.UUID) (bool, error) {
	var category models.MenuCategory
	err := db.Where("cafe_id = ? AND id = ?", cafeID, categoryID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateMenuItem creates a new menu item for the cafe
func (mc *MenuItemController) CreateMenuItem(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	var input CreateMenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	owned, err := mc.categoryOwnedByCafe(mc.DB, cafeUUID, input.CategoryID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if !owned {
		utils.RespondWithError(c, http.StatusBadRequest, "Category not found")
		return
	}

	item := models.MenuItem{
		CafeID:      cafeUUID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		IsAvailable: true,
		IsVeg:       input.IsVeg,
		SortOrder:   input.SortOrder,
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create menu item")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, item)
}

// GetMenuItems retrieves all menu items for the cafe, optionally filtered by
// category.
func (mc *MenuItemController) GetMenuItems(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	query := mc.DB.Where("cafe_id = ?", cafeUUID)
	if categoryID := c.Query("categoryId"); categoryID != "" {
		catUUID, err := uuid.Parse(categoryID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid categoryId format")
			return
		}
		query = query.Where("category_id = ?", catUUID)
	}

	var items []models.MenuItem
	if err := query.Order("sort_order asc, created_at asc").Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve menu items")
		return
	}

	utils.RespondWithData(c, http.StatusOK, items)
}

// UpdateMenuItem updates an existing menu item
func (mc *MenuItemController) UpdateMenuItem(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}
	itemUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateMenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var item models.MenuItem
	if err := mc.DB.Where("cafe_id = ? AND id = ?", cafeUUID, itemUUID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Menu item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.CategoryID != nil {
		owned, err := mc.categoryOwnedByCafe(mc.DB, cafeUUID, *input.CategoryID)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if !owned {
			utils.RespondWithError(c, http.StatusBadRequest, "Category not found")
			return
		}
		item.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Price must not be negative")
			return
		}
		item.Price = *input.Price
	}
	if input.ImageURL != nil {
		item.ImageURL = *input.ImageURL
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}
	if input.IsVeg != nil {
		item.IsVeg = *input.IsVeg
	}
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update menu item")
		return
	}

	utils.RespondWithData(c, http.StatusOK, item)
}

// DeleteMenuItem deletes a menu item
func (mc *MenuItemController) DeleteMenuItem(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}
	itemUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := mc.DB.Where("cafe_id = ? AND id = ?", cafeUUID, itemUUID).
		Delete(&models.MenuItem{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete menu item")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Menu item not found")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, nil, "Menu item deleted successfully")
}

// ReorderMenuItems applies a batch of sort-order updates within one category
// atomically. Any id not owned by the cafe rejects the whole batch.
func (mc *MenuItemController) ReorderMenuItems(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	var input ReorderItemsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := mc.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, entry := range input.Items {
		result := tx.Model(&models.MenuItem{}).
			Where("cafe_id = ? AND category_id = ? AND id = ?", cafeUUID, input.CategoryID, entry.ID).
			Update("sort_order", entry.SortOrder)
		if result.Error != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reorder menu items")
			return
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusNotFound, fmt.Sprintf("Menu item not found: %s", entry.ID))
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reorder menu items")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, nil, "Menu items reordered successfully")
}

// ImportMenuItems bulk-creates menu items from an uploaded Excel sheet.
// Expected columns: category name, item name, price, description, veg (yes/no).
// The header row is skipped; all valid rows are inserted in one transaction.
func (mc *MenuItemController) ImportMenuItems(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Excel file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	xl, err := excelize.OpenReader(file)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to parse Excel file")
		return
	}
	defer xl.Close()

	rows, err := xl.GetRows(xl.GetSheetName(0))
	if err != nil || len(rows) < 2 {
		utils.RespondWithError(c, http.StatusBadRequest, "Excel must have at least one row of data")
		return
	}

	// Resolve category names to this cafe's categories.
	var categories []models.MenuCategory
	if err := mc.DB.Where("cafe_id = ?", cafeUUID).Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	categoryByName := make(map[string]uuid.UUID, len(categories))
	for _, category := range categories {
		categoryByName[strings.ToLower(category.Name)] = category.ID
	}

	var items []models.MenuItem
	var skipped []string
	for rowIndex, row := range rows[1:] {
		rowNumber := rowIndex + 2
		if len(row) < 3 {
			skipped = append(skipped, fmt.Sprintf("row %d: incomplete", rowNumber))
			continue
		}

		categoryID, found := categoryByName[strings.ToLower(strings.TrimSpace(row[0]))]
		if !found {
			skipped = append(skipped, fmt.Sprintf("row %d: unknown category %q", rowNumber, row[0]))
			continue
		}

		name := strings.TrimSpace(row[1])
		if name == "" {
			skipped = append(skipped, fmt.Sprintf("row %d: missing item name", rowNumber))
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil || price < 0 {
			skipped = append(skipped, fmt.Sprintf("row %d: invalid price %q", rowNumber, row[2]))
			continue
		}

		item := models.MenuItem{
			CafeID:      cafeUUID,
			CategoryID:  categoryID,
			Name:        name,
			Price:       price,
			IsAvailable: true,
		}
		if len(row) > 3 {
			item.Description = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			veg := strings.ToLower(strings.TrimSpace(row[4]))
			item.IsVeg = veg == "yes" || veg == "true" || veg == "1"
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "No valid rows found in Excel file")
		return
	}

	tx := mc.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to import menu items")
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to import menu items")
		return
	}

	utils.RespondWithMessage(c, http.StatusCreated, gin.H{
		"imported": len(items),
		"skipped":  skipped,
	}, fmt.Sprintf("Imported %d menu items", len(items)))
}
