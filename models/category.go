package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuCategory struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CafeID uuid.UUID `gorm:"type:uuid;index;not null" json:"cafeId"`

	Name      string `gorm:"not null" json:"name"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`

	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`

	gorm.Model `json:"-"`
}

func (mc *MenuCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if mc.ID == uuid.Nil {
		mc.ID = uuid.New()
	}
	return
}
