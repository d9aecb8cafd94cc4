package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DiscountTypePercentage = "PERCENTAGE"
	DiscountTypeFixed      = "FIXED"
)

type Coupon struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CafeID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_cafe_code,priority:1;not null" json:"cafeId"`

	Code        string `gorm:"uniqueIndex:idx_cafe_code,priority:2;not null" json:"code"`
	Description string `json:"description"`

	DiscountType  string   `gorm:"type:varchar(20);not null" json:"discountType"` // PERCENTAGE or FIXED
	DiscountValue float64  `gorm:"type:decimal(10,2);not null" json:"discountValue"`
	MinOrderValue float64  `gorm:"type:decimal(10,2);default:0.0" json:"minOrderValue"`
	MaxDiscount   *float64 `gorm:"type:decimal(10,2)" json:"maxDiscount"`

	UsageLimit *int `json:"usageLimit"`
	UsedCount  int  `gorm:"default:0" json:"usedCount"`

	ValidFrom  time.Time  `gorm:"not null" json:"validFrom"`
	ValidUntil *time.Time `json:"validUntil"`
	IsActive   bool       `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (cp *Coupon) BeforeCreate(tx *gorm.DB) (err error) {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	return
}

// PublicCoupon is what coupon validation returns to the storefront.
// Usage bookkeeping stays internal.
type PublicCoupon struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Description   string    `json:"description"`
	DiscountType  string    `json:"discountType"`
	DiscountValue float64   `json:"discountValue"`
	MinOrderValue float64   `json:"minOrderValue"`
	MaxDiscount   *float64  `json:"maxDiscount"`
}

func (cp *Coupon) Public() PublicCoupon {
	return PublicCoupon{
		ID:            cp.ID,
		Code:          cp.Code,
		Description:   cp.Description,
		DiscountType:  cp.DiscountType,
		DiscountValue: cp.DiscountValue,
		MinOrderValue: cp.MinOrderValue,
		MaxDiscount:   cp.MaxDiscount,
	}
}
