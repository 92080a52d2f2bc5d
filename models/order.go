package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents all possible states of a delivery order
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "PLACED"
	StatusAccepted       OrderStatus = "ACCEPTED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// Payment status values shared by orders, reservations and transactions
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// PaymentMethodCOD marks cash-on-delivery orders, which are considered paid
// at creation time.
const PaymentMethodCOD = "COD"

type Order struct {
	OrderID               string               `json:"order_id" gorm:"primaryKey"`
	UserID                string               `json:"user_id" gorm:"index;not null"`
	Customer              *User                `json:"customer,omitempty" gorm:"foreignKey:UserID;references:UserID"`
	RestaurantID          string               `json:"restaurant_id" gorm:"index;not null"`
	Restaurant            *Restaurant          `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID;references:RestaurantID"`
	Items                 []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID;references:OrderID"`
	TotalAmount           float64              `json:"total_amount"`
	DeliveryAddress       string               `json:"delivery_address" gorm:"not null"`
	DeliveryPhone         string               `json:"delivery_phone"`
	Notes                 string               `json:"notes"`
	PaymentMethod         string               `json:"payment_method"`
	PaymentStatus         string               `json:"payment_status" gorm:"not null;default:'pending'"`
	StripeSessionID       string               `json:"stripe_session_id"`
	Status                OrderStatus          `json:"status" gorm:"not null;default:'PLACED'"`
	EstimatedDeliveryTime *time.Time           `json:"estimated_delivery_time"`
	StatusHistory         []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID;references:OrderID"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderID == "" {
		o.OrderID = uuid.NewString()
	}
	return nil
}

// OrderItem is a snapshot of a menu item at order time; later menu edits do
// not affect existing orders.
type OrderItem struct {
	ID           uint    `json:"-" gorm:"primaryKey"`
	OrderID      string  `json:"-" gorm:"index;not null"`
	ItemID       string  `json:"item_id" gorm:"not null"`
	Name         string  `json:"name"`
	Price        float64 `json:"price" gorm:"not null"`
	Quantity     int     `json:"quantity" gorm:"not null"`
	Instructions string  `json:"instructions"`
}

// OrderStatusHistory records every status transition with its timestamp
type OrderStatusHistory struct {
	ID         uint        `json:"-" gorm:"primaryKey"`
	OrderID    string      `json:"order_id" gorm:"index;not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  string      `json:"changed_by"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ValidOrderStatus reports whether s is a known order status value.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusPlaced, StatusAccepted, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
