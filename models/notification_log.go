package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationLog records every outbound customer notification attempt so
// failed sends can be audited. Sends are best-effort and never block orders.
type NotificationLog struct {
	ID      uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CafeID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"cafeId"`
	OrderID *uuid.UUID `gorm:"type:uuid;index" json:"orderId"`

	Channel      string    `gorm:"type:varchar(20);not null" json:"channel"` // sms or whatsapp
	Recipient    string    `gorm:"not null" json:"recipient"`
	Message      string    `json:"message"`
	Status       string    `gorm:"type:varchar(20);not null" json:"status"` // sent or failed
	ErrorMessage string    `json:"errorMessage"`
	SentAt       time.Time `json:"sentAt"`

	gorm.Model `json:"-"`
}

func (nl *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if nl.ID == uuid.Nil {
		nl.ID = uuid.New()
	}
	return
}
