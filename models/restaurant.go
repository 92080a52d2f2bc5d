package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Restaurant status values set by admins. Suspended restaurants are hidden
// from public listings.
const (
	RestaurantApproved  = "approved"
	RestaurantSuspended = "suspended"
)

// Service types offered by a restaurant
const (
	ServiceDelivery     = "delivery"
	ServiceReservations = "reservations"
	ServiceBoth         = "both"
)

type Restaurant struct {
	RestaurantID      string     `json:"restaurant_id" gorm:"primaryKey"`
	OwnerID           string     `json:"owner_id" gorm:"index;not null"`
	Owner             *User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:UserID"`
	Name              string     `json:"name" gorm:"not null"`
	Description       string     `json:"description"`
	Cuisine           string     `json:"cuisine"`
	Address           string     `json:"address"`
	Phone             string     `json:"phone"`
	Hours             string     `json:"hours"`
	ServiceType       string     `json:"service_type"`
	IsVeg             bool       `json:"is_veg"`
	IsNonVeg          bool       `json:"is_non_veg"`
	SeatCapacity      int        `json:"seat_capacity" gorm:"default:20"`
	SlotLengthMinutes int        `json:"slot_length_minutes" gorm:"default:60"`
	ImageURL          string     `json:"image_url"`
	LogoURL           string     `json:"logo_url"`
	Status            string     `json:"status" gorm:"not null;default:'approved'"`
	MenuItems         []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID;references:RestaurantID"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.RestaurantID == "" {
		r.RestaurantID = uuid.NewString()
	}
	return nil
}

type MenuCategory struct {
	CategoryID   string `json:"category_id" gorm:"primaryKey"`
	RestaurantID string `json:"restaurant_id" gorm:"index;not null"`
	Name         string `json:"name" gorm:"not null"`
	DisplayOrder int    `json:"display_order"`
}

func (m *MenuCategory) BeforeCreate(tx *gorm.DB) error {
	if m.CategoryID == "" {
		m.CategoryID = uuid.NewString()
	}
	return nil
}

// MenuItem references its category by id only; deleting a category does not
// cascade to items.
type MenuItem struct {
	ItemID       string    `json:"item_id" gorm:"primaryKey"`
	RestaurantID string    `json:"restaurant_id" gorm:"index;not null"`
	CategoryID   string    `json:"category_id" gorm:"index"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	ImageURL     string    `json:"image_url"`
	IsVeg        bool      `json:"is_veg"`
	IsAvailable  bool      `json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ItemID == "" {
		m.ItemID = uuid.NewString()
	}
	return nil
}
