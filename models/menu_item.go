package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CafeID     uuid.UUID `gorm:"type:uuid;index;not null" json:"cafeId"`
	CategoryID uuid.UUID `gorm:"type:uuid;index;not null" json:"categoryId"`

	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string  `json:"imageUrl"`

	IsAvailable bool `gorm:"default:true" json:"isAvailable"`
	IsVeg       bool `gorm:"default:false" json:"isVeg"`
	SortOrder   int  `gorm:"default:0" json:"sortOrder"`

	gorm.Model `json:"-"`
}

func (mi *MenuItem) BeforeCreate(tx *gorm.DB) (err error) {
	if mi.ID == uuid.Nil {
		mi.ID = uuid.New()
	}
	return
}
