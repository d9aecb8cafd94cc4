package controllers

import (
	"errors"
	"net/http"
	"time"

	"cafeorder-backend/models"
	"cafeorder-backend/services"
	"cafeorder-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CouponController struct {
	DB      *gorm.DB
	Coupons *services.CouponService
}

func NewCouponController(db *gorm.DB, coupons *services.CouponService) *CouponController {
	return &CouponController{DB: db, Coupons: coupons}
}

type CreateCouponInput struct {
	Code          string     `json:"code" binding:"required"`
	Description   string     `json:"description"`
	DiscountType  string     `json:"discountType" binding:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue float64    `json:"discountValue" binding:"min=0"`
	MinOrderValue float64    `json:"minOrderValue" binding:"min=0"`
	MaxDiscount   *float64   `json:"maxDiscount"`
	UsageLimit    *int       `json:"usageLimit"`
	ValidFrom     *time.Time `json:"validFrom"`
	ValidUntil    *time.Time `json:"validUntil"`
}

type UpdateCouponInput struct {
	Description   *string    `json:"description"`
	DiscountValue *float64   `json:"discountValue"`
	MinOrderValue *float64   `json:"minOrderValue"`
	MaxDiscount   *float64   `json:"maxDiscount"`
	UsageLimit    *int       `json:"usageLimit"`
	ValidFrom     *time.Time `json:"validFrom"`
	ValidUntil    *time.Time `json:"validUntil"`
	IsActive      *bool      `json:"isActive"`
}

type ValidateCouponInput struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"min=0"`
}

// ValidateCoupon is the public storefront endpoint. Business-rule
// invalidity still answers 200; non-200 is reserved for malformed requests
// and unknown cafes.
func (cpc *CouponController) ValidateCoupon(c *gin.Context) {
	cafe, ok := findCafeBySlug(c, cpc.DB)
	if !ok {
		return
	}

	var input ValidateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := cpc.Coupons.Validate(cafe.ID, input.Code, input.Subtotal)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	utils.RespondWithData(c, http.StatusOK, result)
}

// CreateCoupon creates a new coupon for the cafe
func (cpc *CouponController) CreateCoupon(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	var input CreateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	code := services.NormalizeCouponCode(input.Code)
	if code == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Coupon code is required")
		return
	}
	if input.DiscountType == models.DiscountTypePercentage && input.DiscountValue > 100 {
		utils.RespondWithError(c, http.StatusBadRequest, "Percentage discount cannot exceed 100")
		return
	}

	var existing models.Coupon
	if err := cpc.DB.Where("cafe_id = ? AND code = ?", cafeUUID, code).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Coupon code "+code+" already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	validFrom := time.Now()
	if input.ValidFrom != nil {
		validFrom = *input.ValidFrom
	}

	coupon := models.Coupon{
		CafeID:        cafeUUID,
		Code:          code,
		Description:   input.Description,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		MinOrderValue: input.MinOrderValue,
		MaxDiscount:   input.MaxDiscount,
		UsageLimit:    input.UsageLimit,
		ValidFrom:     validFrom,
		ValidUntil:    input.ValidUntil,
		IsActive:      true,
	}

	if err := cpc.DB.Create(&coupon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create coupon")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, coupon)
}

// GetCoupons retrieves all coupons for the cafe
func (cpc *CouponController) GetCoupons(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	var coupons []models.Coupon
	if err := cpc.DB.Where("cafe_id = ?", cafeUUID).
		Order("created_at desc").
		Find(&coupons).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve coupons")
		return
	}

	utils.RespondWithData(c, http.StatusOK, coupons)
}

// UpdateCoupon updates an existing coupon. The code itself is immutable;
// orders reference coupons by code.
func (cpc *CouponController) UpdateCoupon(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}
	couponUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var coupon models.Coupon
	if err := cpc.DB.Where("cafe_id = ? AND id = ?", cafeUUID, couponUUID).
		First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Coupon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Description != nil {
		coupon.Description = *input.Description
	}
	if input.DiscountValue != nil {
		if *input.DiscountValue < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Discount value must not be negative")
			return
		}
		coupon.DiscountValue = *input.DiscountValue
	}
	if input.MinOrderValue != nil {
		coupon.MinOrderValue = *input.MinOrderValue
	}
	if input.MaxDiscount != nil {
		coupon.MaxDiscount = input.MaxDiscount
	}
	if input.UsageLimit != nil {
		coupon.UsageLimit = input.UsageLimit
	}
	if input.ValidFrom != nil {
		coupon.ValidFrom = *input.ValidFrom
	}
	if input.ValidUntil != nil {
		coupon.ValidUntil = input.ValidUntil
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}

	if err := cpc.DB.Save(&coupon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update coupon")
		return
	}

	utils.RespondWithData(c, http.StatusOK, coupon)
}

// DeleteCoupon deletes a coupon
func (cpc *CouponController) DeleteCoupon(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}
	couponUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := cpc.DB.Where("cafe_id = ? AND id = ?", cafeUUID, couponUUID).
		Delete(&models.Coupon{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete coupon")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Coupon not found")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, nil, "Coupon deleted successfully")
}
