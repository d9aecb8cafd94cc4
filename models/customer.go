package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a lightweight identity record for repeat-customer attribution.
// Customers are not authenticated.
type Customer struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CafeID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_cafe_phone,priority:1;not null" json:"cafeId"`

	Name  string `gorm:"not null" json:"name"`
	Phone string `gorm:"not null;uniqueIndex:idx_cafe_phone,priority:2" json:"phone"`
	Email string `json:"email"`

	TotalOrders int        `gorm:"default:0" json:"totalOrders"`
	TotalSpent  float64    `gorm:"type:decimal(10,2);default:0.0" json:"totalSpent"`
	LastOrderAt *time.Time `json:"lastOrderAt"`

	Orders []Order `gorm:"foreignKey:CustomerID" json:"-"`

	gorm.Model `json:"-"`
}

func (cu *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if cu.ID == uuid.Nil {
		cu.ID = uuid.New()
	}
	return
}
