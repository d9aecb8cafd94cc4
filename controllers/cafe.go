package controllers

import (
	"errors"
	"net/http"
	"strings"

	"cafeorder-backend/models"
	"cafeorder-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CafeController serves the customer-facing storefront endpoints. They are
// unauthenticated and resolve the tenant from the slug in the URL.
type CafeController struct {
	DB *gorm.DB
}

func NewCafeController(db *gorm.DB) *CafeController {
	return &CafeController{DB: db}
}

// findCafeBySlug resolves the tenant or answers 404.
func findCafeBySlug(c *gin.Context, db *gorm.DB) (*models.Cafe, bool) {
	slug := strings.ToLower(c.Param("slug"))

	var cafe models.Cafe
	if err := db.Where("slug = ?", slug).First(&cafe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Cafe not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &cafe, true
}

// settingsForCafe loads the cafe's settings; a missing row means
// all-disabled defaults.
func settingsForCafe(db *gorm.DB, cafeID uuid.UUID) (*models.Settings, error) {
	var settings models.Settings
	if err := db.Where("cafe_id = ?", cafeID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Settings{CafeID: cafeID}, nil
		}
		return nil, err
	}
	return &settings, nil
}

// GetCafe returns the public cafe profile together with its settings.
func (cc *CafeController) GetCafe(c *gin.Context) {
	cafe, ok := findCafeBySlug(c, cc.DB)
	if !ok {
		return
	}

	settings, err := settingsForCafe(cc.DB, cafe.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"cafe":     cafe,
		"settings": settings,
	})
}

// GetMenu returns active categories with their available items, optionally
// filtered by search text, category and veg-only.
func (cc *CafeController) GetMenu(c *gin.Context) {
	cafe, ok := findCafeBySlug(c, cc.DB)
	if !ok {
		return
	}

	var categories []models.MenuCategory
	if err := cc.DB.Where("cafe_id = ? AND is_active = ?", cafe.ID, true).
		Order("sort_order asc, created_at asc").
		Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve menu")
		return
	}

	var categoryFilter *uuid.UUID
	if categoryID := c.Query("categoryId"); categoryID != "" {
		catUUID, err := uuid.Parse(categoryID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid categoryId format")
			return
		}
		categoryFilter = &catUUID
	}

	// Items whose category was soft-deleted stay hidden even while they are
	// still marked available.
	categoryIDs := make([]uuid.UUID, 0, len(categories))
	for _, category := range categories {
		categoryIDs = append(categoryIDs, category.ID)
	}

	var items []models.MenuItem
	if len(categoryIDs) > 0 {
		query := cc.DB.Where("cafe_id = ? AND is_available = ? AND category_id IN ?", cafe.ID, true, categoryIDs)
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			query = query.Where("name ILIKE ?", "%"+search+"%")
		}
		if categoryFilter != nil {
			query = query.Where("category_id = ?", *categoryFilter)
		}
		if c.Query("isVeg") == "true" {
			query = query.Where("is_veg = ?", true)
		}

		if err := query.Order("sort_order asc, created_at asc").Find(&items).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve menu")
			return
		}
	}

	// Group items under their (active) categories for the storefront.
	itemsByCategory := make(map[uuid.UUID][]models.MenuItem)
	for _, item := range items {
		itemsByCategory[item.CategoryID] = append(itemsByCategory[item.CategoryID], item)
	}
	for i := range categories {
		categories[i].Items = itemsByCategory[categories[i].ID]
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"categories": categories,
		"items":      items,
	})
}
