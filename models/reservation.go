package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationStatus represents all possible states of a table reservation
type ReservationStatus string

const (
	ReservationPendingPayment ReservationStatus = "PENDING_PAYMENT"
	ReservationConfirmed      ReservationStatus = "CONFIRMED"
	ReservationSeated         ReservationStatus = "SEATED"
	ReservationCompleted      ReservationStatus = "COMPLETED"
	ReservationCancelled      ReservationStatus = "CANCELLED"
	ReservationNoShow         ReservationStatus = "NO_SHOW"
)

type Reservation struct {
	ReservationID   string            `json:"reservation_id" gorm:"primaryKey"`
	UserID          string            `json:"user_id" gorm:"index;not null"`
	Customer        *User             `json:"customer,omitempty" gorm:"foreignKey:UserID;references:UserID"`
	RestaurantID    string            `json:"restaurant_id" gorm:"index;not null"`
	Restaurant      *Restaurant       `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID;references:RestaurantID"`
	Date            string            `json:"date" gorm:"not null"`
	Time            string            `json:"time" gorm:"not null"`
	PartySize       int               `json:"party_size" gorm:"not null"`
	Amount          float64           `json:"amount"`
	PaymentStatus   string            `json:"payment_status" gorm:"not null;default:'pending'"`
	StripeSessionID string            `json:"stripe_session_id"`
	Status          ReservationStatus `json:"status" gorm:"not null;default:'PENDING_PAYMENT'"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ReservationID == "" {
		r.ReservationID = uuid.NewString()
	}
	return nil
}

// ValidReservationStatus reports whether s is a known reservation status value.
func ValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case ReservationPendingPayment, ReservationConfirmed, ReservationSeated,
		ReservationCompleted, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}

// SeatHolding reports whether a reservation in this status holds seats
// against the restaurant's capacity for its slot.
func SeatHolding(s ReservationStatus) bool {
	switch s {
	case ReservationPendingPayment, ReservationConfirmed, ReservationSeated:
		return true
	}
	return false
}
