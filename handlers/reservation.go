package handlers

import (
	"errors"
	"net/http"

	"dinedash-api/middleware"
	"dinedash-api/models"
	"dinedash-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// minReservationAmount is the booking fee floor; otherwise 100 per head.
const (
	minReservationAmount = 300.0
	perHeadAmount        = 100.0
)

var errNotEnoughSeats = errors.New("not enough seats available")

// CheckAvailability reports remaining seats for a restaurant/date/time slot
// (public). Seats are held by reservations in PENDING_PAYMENT, CONFIRMED or
// SEATED.
func (h *Handler) CheckAvailability(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.DB.Where("restaurant_id = ?", c.Param("id")).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	available, err := availableSeats(h.DB, &restaurant, c.Query("date"), c.Query("time"))
	if err != nil {
		internalError(c, "Failed to check availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"available":       available > 0,
		"available_seats": available,
	})
}

type CreateReservationRequest struct {
	RestaurantID string `json:"restaurant_id" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	PartySize    int    `json:"party_size" binding:"required,min=1"`
}

// CreateReservation books a table slot (customer only). The capacity check
// and the insert run in one transaction so two concurrent bookings for the
// last seats cannot both commit.
func (h *Handler) CreateReservation(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := h.DB.Where("restaurant_id = ?", req.RestaurantID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	amount := float64(req.PartySize) * perHeadAmount
	if amount < minReservationAmount {
		amount = minReservationAmount
	}

	reservation := models.Reservation{
		UserID:        userID,
		RestaurantID:  req.RestaurantID,
		Date:          req.Date,
		Time:          req.Time,
		PartySize:     req.PartySize,
		Amount:        amount,
		PaymentStatus: models.PaymentPending,
		Status:        models.ReservationPendingPayment,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		available, err := availableSeats(tx, &restaurant, req.Date, req.Time)
		if err != nil {
			return err
		}
		if available <= 0 || available < req.PartySize {
			return errNotEnoughSeats
		}
		return tx.Create(&reservation).Error
	})
	if errors.Is(err, errNotEnoughSeats) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough seats available"})
		return
	}
	if err != nil {
		internalError(c, "Failed to create reservation")
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// GetMyReservations returns the caller's reservations, newest first
func (h *Handler) GetMyReservations(c *gin.Context) {
	userID := middleware.GetUserID(c)
	reservations := []models.Reservation{}
	if err := h.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&reservations).Error; err != nil {
		internalError(c, "Failed to load reservations")
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GetReservation returns a single reservation owned by the caller
func (h *Handler) GetReservation(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var reservation models.Reservation
	if err := h.DB.Where("reservation_id = ?", c.Param("id")).First(&reservation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}
	if reservation.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.JSON(http.StatusOK, reservation)
}

type UpdateReservationStatusRequest struct {
	Status models.ReservationStatus `json:"status" binding:"required"`
}

// UpdateReservationStatus moves a reservation along its lifecycle (restaurant
// owner only). CONFIRMED is reachable only through the payment path.
func (h *Handler) UpdateReservationStatus(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var reservation models.Reservation
	if err := h.DB.Where("reservation_id = ?", c.Param("id")).First(&reservation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}

	if _, err := h.ownedRestaurant(reservation.RestaurantID, ownerID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidReservationStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	if err := statemachine.CanTransitionReservation(reservation.Status, req.Status, "restaurant"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             err.Error(),
			"current_status":    reservation.Status,
			"valid_next_states": statemachine.ValidReservationTransitionsFrom(reservation.Status),
		})
		return
	}

	if err := h.DB.Model(&reservation).Update("status", req.Status).Error; err != nil {
		internalError(c, "Failed to update reservation status")
		return
	}

	var user models.User
	if err := h.DB.Where("user_id = ?", reservation.UserID).First(&user).Error; err == nil {
		if user.Email != "" {
			h.Notifier.SendEmail(
				user.Email,
				"Reservation Update - DineDash Reserve",
				"<h2>Reservation #"+shortID(reservation.ReservationID)+"</h2><p>Status: "+string(req.Status)+"</p>",
			)
		}
		if user.Phone != "" {
			h.Notifier.SendSMS(user.Phone, "Reservation status updated: "+string(req.Status))
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation status updated"})
}

// CancelReservation lets the customer cancel their own reservation. A
// cancelled reservation stops holding seats for its slot.
func (h *Handler) CancelReservation(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var reservation models.Reservation
	if err := h.DB.Where("reservation_id = ?", c.Param("id")).First(&reservation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}
	if reservation.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := statemachine.CanTransitionReservation(reservation.Status, models.ReservationCancelled, "customer"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          err.Error(),
			"current_status": reservation.Status,
		})
		return
	}

	if err := h.DB.Model(&reservation).Update("status", models.ReservationCancelled).Error; err != nil {
		internalError(c, "Failed to cancel reservation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled", "reservation": reservation})
}

// GetRestaurantReservations returns reservations across the caller's
// restaurants, most recent date first
func (h *Handler) GetRestaurantReservations(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	ids, err := h.ownedRestaurantIDs(ownerID)
	if err != nil {
		internalError(c, "Failed to load restaurants")
		return
	}

	reservations := []models.Reservation{}
	if err := h.DB.Where("restaurant_id IN (?)", ids).
		Order("date desc").
		Find(&reservations).Error; err != nil {
		internalError(c, "Failed to load reservations")
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// availableSeats computes seat_capacity minus the party sizes of every
// seat-holding reservation in the slot.
func availableSeats(db *gorm.DB, restaurant *models.Restaurant, date, timeSlot string) (int, error) {
	var booked int64
	err := db.Model(&models.Reservation{}).
		Where("restaurant_id = ? AND date = ? AND time = ? AND status IN (?)",
			restaurant.RestaurantID, date, timeSlot,
			[]models.ReservationStatus{
				models.ReservationPendingPayment,
				models.ReservationConfirmed,
				models.ReservationSeated,
			}).
		Select("COALESCE(SUM(party_size), 0)").
		Scan(&booked).Error
	if err != nil {
		return 0, err
	}
	return restaurant.SeatCapacity - int(booked), nil
}
