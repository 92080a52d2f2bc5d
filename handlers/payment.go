package handlers

import (
	"errors"
	"net/http"
	"strings"

	"dinedash-api/middleware"
	"dinedash-api/models"
	"dinedash-api/payments"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CheckoutRequest struct {
	PaymentType string `json:"payment_type"`
	ReferenceID string `json:"reference_id"`
	OriginURL   string `json:"origin_url"`
}

// CreateCheckout opens a hosted checkout session for an order or reservation
// owned by the caller, records a pending PaymentTransaction keyed by the
// session id, and writes the session id back onto the referenced entity.
func (h *Handler) CreateCheckout(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaymentType == "" || req.ReferenceID == "" || req.OriginURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	var amount float64
	var restaurantID string

	switch req.PaymentType {
	case models.PaymentTypeOrder:
		var order models.Order
		err := h.DB.Where("order_id = ?", req.ReferenceID).First(&order).Error
		if err != nil || order.UserID != userID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		amount = order.TotalAmount
		restaurantID = order.RestaurantID
	case models.PaymentTypeReservation:
		var reservation models.Reservation
		err := h.DB.Where("reservation_id = ?", req.ReferenceID).First(&reservation).Error
		if err != nil || reservation.UserID != userID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		amount = reservation.Amount
		restaurantID = reservation.RestaurantID
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment type"})
		return
	}

	host := strings.TrimRight(req.OriginURL, "/")
	session, err := h.Payments.CreateSession(c.Request.Context(), payments.CreateSessionParams{
		Amount:      amount,
		Currency:    "inr",
		Description: "DineDash " + req.PaymentType + " payment",
		SuccessURL:  host + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   host + "/payment-cancel",
		Metadata: map[string]string{
			"payment_type": req.PaymentType,
			"reference_id": req.ReferenceID,
			"user_id":      userID,
		},
	})
	if err != nil {
		h.Log.Error("failed to create checkout session", zap.Error(err))
		internalError(c, "Failed to create checkout session")
		return
	}

	transaction := models.PaymentTransaction{
		SessionID:     session.ID,
		UserID:        userID,
		RestaurantID:  restaurantID,
		Amount:        amount,
		Currency:      "inr",
		PaymentType:   req.PaymentType,
		ReferenceID:   req.ReferenceID,
		PaymentStatus: models.PaymentPending,
	}
	if err := h.DB.Create(&transaction).Error; err != nil {
		internalError(c, "Failed to record transaction")
		return
	}

	switch req.PaymentType {
	case models.PaymentTypeOrder:
		h.DB.Model(&models.Order{}).Where("order_id = ?", req.ReferenceID).
			Update("stripe_session_id", session.ID)
	case models.PaymentTypeReservation:
		h.DB.Model(&models.Reservation{}).Where("reservation_id = ?", req.ReferenceID).
			Update("stripe_session_id", session.ID)
	}

	c.JSON(http.StatusOK, gin.H{"url": session.URL, "session_id": session.ID})
}

// GetPaymentStatus is the pull half of payment reconciliation. A transaction
// already marked paid is returned without calling the processor; otherwise
// the processor is polled and a newly paid session triggers the one-time
// confirmation flip.
func (h *Handler) GetPaymentStatus(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var transaction models.PaymentTransaction
	if err := h.DB.Where("session_id = ?", sessionID).First(&transaction).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	if transaction.PaymentStatus == models.PaymentPaid {
		c.JSON(http.StatusOK, transaction)
		return
	}

	status, err := h.Payments.SessionStatus(c.Request.Context(), sessionID)
	if err != nil {
		// Post-hoc status lookups are non-critical: log and return what we have.
		h.Log.Error("error checking payment status", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusOK, transaction)
		return
	}

	if status.PaymentStatus == payments.PaymentStatusPaid {
		if err := h.confirmPayment(sessionID); err != nil {
			h.Log.Error("failed to confirm payment", zap.String("session_id", sessionID), zap.Error(err))
		}
		h.DB.Where("session_id = ?", sessionID).First(&transaction)
	}

	c.JSON(http.StatusOK, transaction)
}

// StripeWebhook is the push half of payment reconciliation. The signature is
// verified against the raw body before any parsing; processing errors return
// 400 so the processor retries delivery.
func (h *Handler) StripeWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	event, err := h.Payments.ParseWebhook(body, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.Log.Error("webhook verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if event.SessionID != "" && event.PaymentStatus == payments.PaymentStatusPaid {
		err := h.confirmPayment(event.SessionID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// No local transaction for this session. Acknowledge so the
			// processor stops redelivering.
			h.Log.Warn("webhook for unknown session", zap.String("session_id", event.SessionID))
		case err != nil:
			h.Log.Error("webhook processing failed", zap.String("session_id", event.SessionID), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to process event"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// confirmPayment flips a transaction pending→paid and propagates the flip to
// the referenced order or reservation, all in one transaction. The current
// status is re-checked inside the transaction so concurrent polls and
// replayed webhooks are no-ops, and notifications fire only on the actual
// flip.
func (h *Handler) confirmPayment(sessionID string) error {
	var flipped bool
	var transaction models.PaymentTransaction

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).First(&transaction).Error; err != nil {
			return err
		}
		if transaction.PaymentStatus == models.PaymentPaid {
			return nil
		}

		if err := tx.Model(&transaction).Update("payment_status", models.PaymentPaid).Error; err != nil {
			return err
		}

		switch transaction.PaymentType {
		case models.PaymentTypeOrder:
			if err := tx.Model(&models.Order{}).
				Where("order_id = ?", transaction.ReferenceID).
				Update("payment_status", models.PaymentPaid).Error; err != nil {
				return err
			}
		case models.PaymentTypeReservation:
			if err := tx.Model(&models.Reservation{}).
				Where("reservation_id = ?", transaction.ReferenceID).
				Updates(map[string]interface{}{
					"payment_status": models.PaymentPaid,
					"status":         models.ReservationConfirmed,
				}).Error; err != nil {
				return err
			}
		}
		flipped = true
		return nil
	})
	if err != nil || !flipped {
		return err
	}

	middleware.RecordPaymentProcessed(transaction.PaymentType)

	var user models.User
	if err := h.DB.Where("user_id = ?", transaction.UserID).First(&user).Error; err == nil && user.Email != "" {
		if transaction.PaymentType == models.PaymentTypeReservation {
			h.Notifier.SendEmail(
				user.Email,
				"Reservation Confirmed - DineDash Reserve",
				"<h2>Reservation Confirmed!</h2><p>Your reservation payment has been received.</p>",
			)
		} else {
			h.Notifier.SendEmail(
				user.Email,
				"Payment Confirmed - DineDash Reserve",
				"<h2>Payment Received!</h2><p>Your payment for order has been confirmed.</p>",
			)
		}
	}
	return nil
}
