package controllers

import (
	"net/http"

	"cafeorder-backend/models"
	"cafeorder-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

type UpdateSettingsInput struct {
	DeliveryEnabled *bool    `json:"deliveryEnabled"`
	DeliveryCharge  *float64 `json:"deliveryCharge" binding:"omitempty,min=0"`
	MinOrderValue   *float64 `json:"minOrderValue" binding:"omitempty,min=0"`

	TaxEnabled *bool    `json:"taxEnabled"`
	TaxRate    *float64 `json:"taxRate" binding:"omitempty,min=0,max=100"`

	OnlinePaymentEnabled *bool   `json:"onlinePaymentEnabled"`
	UPIID                *string `json:"upiId"`
	QRCodeURL            *string `json:"qrCodeUrl"`
}

type UpdateCafeProfileInput struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	LogoURL     *string      `json:"logoUrl"`
	CoverURL    *string      `json:"coverUrl"`
	Address     *string      `json:"address"`
	Phone       *string      `json:"phone"`
	Hours       models.JSONB `json:"businessHours"`
	ThemeColors models.JSONB `json:"themeColors"`
}

// GetSettings returns the cafe's ordering settings, creating the default
// all-disabled row on first access.
func (sc *SettingsController) GetSettings(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	var settings models.Settings
	if err := sc.DB.Where("cafe_id = ?", cafeUUID).
		FirstOrCreate(&settings, models.Settings{CafeID: cafeUUID}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}

	utils.RespondWithData(c, http.StatusOK, settings)
}

// UpdateSettings updates the cafe's ordering settings
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var settings models.Settings
	if err := sc.DB.Where("cafe_id = ?", cafeUUID).
		FirstOrCreate(&settings, models.Settings{CafeID: cafeUUID}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}

	if input.DeliveryEnabled != nil {
		settings.DeliveryEnabled = *input.DeliveryEnabled
	}
	if input.DeliveryCharge != nil {
		settings.DeliveryCharge = *input.DeliveryCharge
	}
	if input.MinOrderValue != nil {
		settings.MinOrderValue = *input.MinOrderValue
	}
	if input.TaxEnabled != nil {
		settings.TaxEnabled = *input.TaxEnabled
	}
	if input.TaxRate != nil {
		settings.TaxRate = *input.TaxRate
	}
	if input.OnlinePaymentEnabled != nil {
		settings.OnlinePaymentEnabled = *input.OnlinePaymentEnabled
	}
	if input.UPIID != nil {
		settings.UPIID = *input.UPIID
	}
	if input.QRCodeURL != nil {
		settings.QRCodeURL = *input.QRCodeURL
	}

	if err := sc.DB.Save(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	utils.RespondWithData(c, http.StatusOK, settings)
}

// UpdateCafeProfile updates branding, contact details and business hours.
func (sc *SettingsController) UpdateCafeProfile(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	var input UpdateCafeProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var cafe models.Cafe
	if err := sc.DB.First(&cafe, "id = ?", cafeUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Cafe not found")
		return
	}

	if input.Name != nil {
		cafe.Name = *input.Name
	}
	if input.Description != nil {
		cafe.Description = *input.Description
	}
	if input.LogoURL != nil {
		cafe.LogoURL = *input.LogoURL
	}
	if input.CoverURL != nil {
		cafe.CoverURL = *input.CoverURL
	}
	if input.Address != nil {
		cafe.Address = *input.Address
	}
	if input.Phone != nil {
		cafe.Phone = *input.Phone
	}
	if input.Hours != nil {
		cafe.BusinessHours = input.Hours
	}
	if input.ThemeColors != nil {
		cafe.ThemeColors = input.ThemeColors
	}

	if err := sc.DB.Save(&cafe).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update cafe profile")
		return
	}

	utils.RespondWithData(c, http.StatusOK, cafe)
}
