package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment types a checkout session can be opened for
const (
	PaymentTypeOrder       = "order"
	PaymentTypeReservation = "reservation"
)

// PaymentTransaction is the single source of truth for whether money has been
// confirmed received. Its payment_status flips pending→paid at most once,
// driven only by the status-poll and webhook reconciliation paths.
type PaymentTransaction struct {
	TransactionID string    `json:"transaction_id" gorm:"primaryKey"`
	SessionID     string    `json:"session_id" gorm:"uniqueIndex;not null"`
	UserID        string    `json:"user_id" gorm:"index"`
	RestaurantID  string    `json:"restaurant_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentType   string    `json:"payment_type" gorm:"not null"`
	ReferenceID   string    `json:"reference_id" gorm:"index;not null"`
	PaymentStatus string    `json:"payment_status" gorm:"not null;default:'pending'"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *PaymentTransaction) BeforeCreate(tx *gorm.DB) error {
	if p.TransactionID == "" {
		p.TransactionID = uuid.NewString()
	}
	return nil
}
