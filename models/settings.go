package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settings holds per-cafe ordering configuration. At most one row per cafe;
// a missing row means everything is disabled.
type Settings struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CafeID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"cafeId"`

	DeliveryEnabled bool    `gorm:"default:false" json:"deliveryEnabled"`
	DeliveryCharge  float64 `gorm:"type:decimal(10,2);default:0.0" json:"deliveryCharge"`
	MinOrderValue   float64 `gorm:"type:decimal(10,2);default:0.0" json:"minOrderValue"`

	TaxEnabled bool    `gorm:"default:false" json:"taxEnabled"`
	TaxRate    float64 `gorm:"type:decimal(5,2);default:0.0" json:"taxRate"`

	OnlinePaymentEnabled bool   `gorm:"default:false" json:"onlinePaymentEnabled"`
	UPIID                string `json:"upiId"`
	QRCodeURL            string `json:"qrCodeUrl"`

	gorm.Model `json:"-"`
}

func (s *Settings) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
