package handlers

import (
	"net/http"
	"time"

	"dinedash-api/middleware"
	"dinedash-api/models"
	"dinedash-api/statemachine"

	"github.com/gin-gonic/gin"
)

type OrderItemRequest struct {
	ItemID       string  `json:"item_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Quantity     int     `json:"quantity" binding:"required,min=1"`
	Instructions string  `json:"instructions"`
}

type CreateOrderRequest struct {
	RestaurantID    string             `json:"restaurant_id" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress string             `json:"delivery_address" binding:"required"`
	DeliveryPhone   string             `json:"delivery_phone" binding:"required"`
	Notes           string             `json:"notes"`
	PaymentMethod   string             `json:"payment_method" binding:"required"`
}

// CreateOrder places a new order (customer only). Line items carry the price
// agreed at order time; the total is computed from the snapshot, never from
// the live menu.
func (h *Handler) CreateOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := h.DB.Where("restaurant_id = ?", req.RestaurantID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var items []models.OrderItem
	var total float64
	for _, it := range req.Items {
		total += it.Price * float64(it.Quantity)
		items = append(items, models.OrderItem{
			ItemID:       it.ItemID,
			Name:         it.Name,
			Price:        it.Price,
			Quantity:     it.Quantity,
			Instructions: it.Instructions,
		})
	}

	paymentStatus := models.PaymentPending
	if req.PaymentMethod == models.PaymentMethodCOD {
		paymentStatus = models.PaymentPaid
	}

	eta := time.Now().Add(45 * time.Minute)
	order := models.Order{
		UserID:                userID,
		RestaurantID:          req.RestaurantID,
		Items:                 items,
		TotalAmount:           total,
		DeliveryAddress:       req.DeliveryAddress,
		DeliveryPhone:         req.DeliveryPhone,
		Notes:                 req.Notes,
		PaymentMethod:         req.PaymentMethod,
		PaymentStatus:         paymentStatus,
		Status:                models.StatusPlaced,
		EstimatedDeliveryTime: &eta,
	}
	if err := h.DB.Create(&order).Error; err != nil {
		internalError(c, "Failed to place order")
		return
	}

	history := models.OrderStatusHistory{
		OrderID:   order.OrderID,
		ToStatus:  models.StatusPlaced,
		ChangedBy: userID,
		Note:      "Order placed by customer",
	}
	h.DB.Create(&history)

	var user models.User
	if err := h.DB.Where("user_id = ?", userID).First(&user).Error; err == nil && user.Email != "" {
		h.Notifier.SendEmail(
			user.Email,
			"Order Placed - DineDash Reserve",
			"<h2>Order Confirmed!</h2><p>Your order #"+shortID(order.OrderID)+" has been placed.</p>",
		)
	}
	if req.DeliveryPhone != "" {
		h.Notifier.SendSMS(req.DeliveryPhone, "Your order has been placed! Order ID: "+shortID(order.OrderID))
	}

	c.JSON(http.StatusOK, order)
}

// GetMyOrders returns the caller's orders, newest first
func (h *Handler) GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orders := []models.Order{}
	if err := h.DB.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		internalError(c, "Failed to load orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns a single order with its transition history
func (h *Handler) GetOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var order models.Order
	if err := h.DB.Preload("Items").Preload("StatusHistory").
		Where("order_id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":             order,
		"status_timestamps": statusTimestamps(order.StatusHistory),
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order along the lifecycle (restaurant owner
// only). Transitions are validated by the state machine, and the ETA is
// recomputed for the new status.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var order models.Order
	if err := h.DB.Where("order_id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if _, err := h.ownedRestaurant(order.RestaurantID, ownerID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, "restaurant"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             err.Error(),
			"current_status":    order.Status,
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	prevStatus := order.Status
	updates := map[string]interface{}{"status": req.Status}
	if minutes, ok := statemachine.ETAMinutes(req.Status); ok {
		eta := time.Now().Add(time.Duration(minutes) * time.Minute)
		updates["estimated_delivery_time"] = &eta
	}
	if err := h.DB.Model(&order).Updates(updates).Error; err != nil {
		internalError(c, "Failed to update order status")
		return
	}

	history := models.OrderStatusHistory{
		OrderID:    order.OrderID,
		FromStatus: prevStatus,
		ToStatus:   req.Status,
		ChangedBy:  ownerID,
	}
	h.DB.Create(&history)

	var user models.User
	if err := h.DB.Where("user_id = ?", order.UserID).First(&user).Error; err == nil && user.Email != "" {
		h.Notifier.SendEmail(
			user.Email,
			"Order Update - DineDash Reserve",
			"<h2>Order #"+shortID(order.OrderID)+"</h2><p>Status: "+string(req.Status)+"</p>",
		)
	}
	if order.DeliveryPhone != "" {
		h.Notifier.SendSMS(order.DeliveryPhone, "Order status updated: "+string(req.Status))
	}

	h.DB.Preload("StatusHistory").Where("order_id = ?", order.OrderID).First(&order)
	c.JSON(http.StatusOK, gin.H{
		"message":           "Order status updated",
		"order":             order,
		"status_timestamps": statusTimestamps(order.StatusHistory),
	})
}

// CancelOrder lets the customer cancel their own order while the machine
// still allows it (PLACED or ACCEPTED)
func (h *Handler) CancelOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var order models.Order
	if err := h.DB.Where("order_id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "customer"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          err.Error(),
			"current_status": order.Status,
		})
		return
	}

	prevStatus := order.Status
	if err := h.DB.Model(&order).Update("status", models.StatusCancelled).Error; err != nil {
		internalError(c, "Failed to cancel order")
		return
	}

	history := models.OrderStatusHistory{
		OrderID:    order.OrderID,
		FromStatus: prevStatus,
		ToStatus:   models.StatusCancelled,
		ChangedBy:  userID,
		Note:       "Cancelled by customer",
	}
	h.DB.Create(&history)

	if order.DeliveryPhone != "" {
		h.Notifier.SendSMS(order.DeliveryPhone, "Your order has been cancelled. Order ID: "+shortID(order.OrderID))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order": order})
}

// GetRestaurantOrders returns all orders across the caller's restaurants
func (h *Handler) GetRestaurantOrders(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	ids, err := h.ownedRestaurantIDs(ownerID)
	if err != nil {
		internalError(c, "Failed to load restaurants")
		return
	}

	orders := []models.Order{}
	if err := h.DB.Preload("Items").
		Where("restaurant_id IN (?)", ids).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		internalError(c, "Failed to load orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func statusTimestamps(history []models.OrderStatusHistory) map[string]time.Time {
	ts := make(map[string]time.Time, len(history))
	for _, entry := range history {
		ts[string(entry.ToStatus)] = entry.CreatedAt
	}
	return ts
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
