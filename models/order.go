package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"

	OrderTypeDineIn   = "DINE_IN"
	OrderTypeDelivery = "DELIVERY"
	OrderTypeTakeaway = "TAKEAWAY"

	PaymentMethodCash   = "CASH"
	PaymentMethodOnline = "ONLINE"

	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
)

type Order struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CafeID uuid.UUID `gorm:"type:uuid;index;not null" json:"cafeId"`

	OrderNumber string `gorm:"uniqueIndex;not null" json:"orderNumber"`

	CustomerID    *uuid.UUID `gorm:"type:uuid;index" json:"customerId"`
	CustomerName  string     `gorm:"not null" json:"customerName"`
	CustomerPhone string     `gorm:"not null" json:"customerPhone"`

	OrderType       string   `gorm:"type:varchar(20);not null" json:"orderType"` // DINE_IN, DELIVERY, TAKEAWAY
	TableNumber     string   `json:"tableNumber"`
	DeliveryAddress string   `json:"deliveryAddress"`
	DeliveryLat     *float64 `json:"deliveryLat"`
	DeliveryLng     *float64 `json:"deliveryLng"`

	Status string `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`

	PaymentMethod      string `gorm:"type:varchar(20);not null" json:"paymentMethod"` // CASH or ONLINE
	PaymentStatus      string `gorm:"type:varchar(20);not null;default:'PENDING'" json:"paymentStatus"`
	PaymentReferenceID string `json:"paymentReferenceId"`

	Subtotal       float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax            float64 `gorm:"type:decimal(10,2);default:0.0" json:"tax"`
	DeliveryCharge float64 `gorm:"type:decimal(10,2);default:0.0" json:"deliveryCharge"`
	Discount       float64 `gorm:"type:decimal(10,2);default:0.0" json:"discount"`
	CouponCode     string  `json:"couponCode"`
	Total          float64 `gorm:"type:decimal(10,2);not null" json:"total"`

	Notes string `json:"notes"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	gorm.Model `json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// OrderItem snapshots the menu item's name and price at order time.
// Later menu edits must not change historical orders.
type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`
	MenuItemID uuid.UUID `gorm:"type:uuid;index;not null" json:"menuItemId"`

	Name           string  `gorm:"not null" json:"name"`
	Price          float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity       int     `gorm:"default:1" json:"quantity"`
	Customizations string  `json:"customizations"`
	Subtotal       float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return
}
