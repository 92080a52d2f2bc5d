package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ReviewID     string    `json:"review_id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"index;not null"`
	Reviewer     *User     `json:"reviewer,omitempty" gorm:"foreignKey:UserID;references:UserID"`
	RestaurantID string    `json:"restaurant_id" gorm:"index;not null"`
	OrderID      string    `json:"order_id"`
	Rating       int       `json:"rating" gorm:"not null"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ReviewID == "" {
		r.ReviewID = uuid.NewString()
	}
	return nil
}

// Favorite marks a user↔restaurant membership
type Favorite struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"uniqueIndex:idx_fav_user_restaurant;not null"`
	RestaurantID string    `json:"restaurant_id" gorm:"uniqueIndex:idx_fav_user_restaurant;not null"`
	CreatedAt    time.Time `json:"created_at"`
}
