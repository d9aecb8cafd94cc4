package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Cafe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logoUrl"`
	CoverURL    string    `json:"coverUrl"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`

	BusinessHours JSONB `gorm:"type:jsonb;default:'{}'" json:"businessHours"`
	ThemeColors   JSONB `gorm:"type:jsonb;default:'{}'" json:"themeColors"`

	Admins     []Admin        `gorm:"foreignKey:CafeID" json:"-"`
	Categories []MenuCategory `gorm:"foreignKey:CafeID" json:"-"`
	MenuItems  []MenuItem     `gorm:"foreignKey:CafeID" json:"-"`
	Coupons    []Coupon       `gorm:"foreignKey:CafeID" json:"-"`
	Orders     []Order        `gorm:"foreignKey:CafeID" json:"-"`
	Customers  []Customer     `gorm:"foreignKey:CafeID" json:"-"`

	gorm.Model `json:"-"`
}

func (cafe *Cafe) BeforeCreate(tx *gorm.DB) (err error) {
	if cafe.ID == uuid.Nil {
		cafe.ID = uuid.New()
	}
	return
}

// DefaultBusinessHours returns the hours a new cafe starts with.
func DefaultBusinessHours() JSONB {
	hours := JSONB{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		hours[day] = map[string]interface{}{"open": "09:00", "close": "22:00", "closed": false}
	}
	return hours
}

// Custom JSONB type for business hours and theme colors
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
