package handlers

import (
	"net/http"

	"dinedash-api/models"

	"github.com/gin-gonic/gin"
)

// DashboardStats aggregates platform-wide counts and revenue for the admin
// dashboard. Full-collection scans; acceptable at this scale.
func (h *Handler) DashboardStats(c *gin.Context) {
	var totalUsers, totalRestaurants, totalOrders, totalReservations int64
	h.DB.Model(&models.User{}).Count(&totalUsers)
	h.DB.Model(&models.Restaurant{}).Count(&totalRestaurants)
	h.DB.Model(&models.Order{}).Count(&totalOrders)
	h.DB.Model(&models.Reservation{}).Count(&totalReservations)

	var pendingOrders, pendingReservations int64
	h.DB.Model(&models.Order{}).Where("status = ?", models.StatusPlaced).Count(&pendingOrders)
	h.DB.Model(&models.Reservation{}).Where("status = ?", models.ReservationPendingPayment).Count(&pendingReservations)

	var orderRevenue, reservationRevenue float64
	h.DB.Model(&models.Order{}).Where("payment_status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&orderRevenue)
	h.DB.Model(&models.Reservation{}).Where("payment_status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&reservationRevenue)

	recentOrders := []models.Order{}
	h.DB.Order("created_at desc").Limit(5).Find(&recentOrders)
	recentReservations := []models.Reservation{}
	h.DB.Order("created_at desc").Limit(5).Find(&recentReservations)

	c.JSON(http.StatusOK, gin.H{
		"total_users":          totalUsers,
		"total_restaurants":    totalRestaurants,
		"total_orders":         totalOrders,
		"total_reservations":   totalReservations,
		"pending_orders":       pendingOrders,
		"pending_reservations": pendingReservations,
		"order_revenue":        orderRevenue,
		"reservation_revenue":  reservationRevenue,
		"total_revenue":        orderRevenue + reservationRevenue,
		"recent_orders":        recentOrders,
		"recent_reservations":  recentReservations,
	})
}

// AdminListRestaurants returns every restaurant with owner info and
// per-restaurant activity aggregates
func (h *Handler) AdminListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := h.DB.Preload("Owner").Find(&restaurants).Error; err != nil {
		internalError(c, "Failed to load restaurants")
		return
	}

	result := make([]gin.H, 0, len(restaurants))
	for _, restaurant := range restaurants {
		var orderCount, reservationCount int64
		h.DB.Model(&models.Order{}).Where("restaurant_id = ?", restaurant.RestaurantID).Count(&orderCount)
		h.DB.Model(&models.Reservation{}).Where("restaurant_id = ?", restaurant.RestaurantID).Count(&reservationCount)

		var orderRevenue, reservationRevenue float64
		h.DB.Model(&models.Order{}).
			Where("restaurant_id = ? AND payment_status = ?", restaurant.RestaurantID, models.PaymentPaid).
			Select("COALESCE(SUM(total_amount), 0)").Scan(&orderRevenue)
		h.DB.Model(&models.Reservation{}).
			Where("restaurant_id = ? AND payment_status = ?", restaurant.RestaurantID, models.PaymentPaid).
			Select("COALESCE(SUM(amount), 0)").Scan(&reservationRevenue)

		result = append(result, gin.H{
			"restaurant_id":     restaurant.RestaurantID,
			"name":              restaurant.Name,
			"cuisine":           restaurant.Cuisine,
			"address":           restaurant.Address,
			"service_type":      restaurant.ServiceType,
			"status":            restaurant.Status,
			"owner":             restaurant.Owner,
			"order_count":       orderCount,
			"reservation_count": reservationCount,
			"revenue":           orderRevenue + reservationRevenue,
			"created_at":        restaurant.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, result)
}

type AdminStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminUpdateRestaurantStatus approves or suspends a restaurant
func (h *Handler) AdminUpdateRestaurantStatus(c *gin.Context) {
	var req AdminStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != models.RestaurantApproved && req.Status != models.RestaurantSuspended {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var restaurant models.Restaurant
	if err := h.DB.Where("restaurant_id = ?", c.Param("id")).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	if err := h.DB.Model(&restaurant).Update("status", req.Status).Error; err != nil {
		internalError(c, "Failed to update restaurant status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant status updated"})
}

// AdminDeleteRestaurant removes a restaurant and its menu
func (h *Handler) AdminDeleteRestaurant(c *gin.Context) {
	restaurantID := c.Param("id")

	var restaurant models.Restaurant
	if err := h.DB.Where("restaurant_id = ?", restaurantID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	h.DB.Where("restaurant_id = ?", restaurantID).Delete(&models.MenuItem{})
	h.DB.Where("restaurant_id = ?", restaurantID).Delete(&models.MenuCategory{})
	if err := h.DB.Delete(&restaurant).Error; err != nil {
		internalError(c, "Failed to delete restaurant")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted"})
}

// AdminListOrders returns every order with customer and restaurant info
func (h *Handler) AdminListOrders(c *gin.Context) {
	orders := []models.Order{}
	query := h.DB.Preload("Items").Preload("Customer").Preload("Restaurant")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		internalError(c, "Failed to load orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// AdminUpdateOrderStatus force-sets an order status, bypassing the state
// machine. The override is recorded in the status history.
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	var order models.Order
	if err := h.DB.Where("order_id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	prevStatus := order.Status
	if err := h.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		internalError(c, "Failed to update order status")
		return
	}

	history := models.OrderStatusHistory{
		OrderID:    order.OrderID,
		FromStatus: prevStatus,
		ToStatus:   req.Status,
		Note:       "[ADMIN OVERRIDE]",
	}
	h.DB.Create(&history)

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}

// AdminListReservations returns every reservation with customer and
// restaurant info
func (h *Handler) AdminListReservations(c *gin.Context) {
	reservations := []models.Reservation{}
	query := h.DB.Preload("Customer").Preload("Restaurant")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&reservations).Error; err != nil {
		internalError(c, "Failed to load reservations")
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// AdminUpdateReservationStatus force-sets a reservation status
func (h *Handler) AdminUpdateReservationStatus(c *gin.Context) {
	var req UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidReservationStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	var reservation models.Reservation
	if err := h.DB.Where("reservation_id = ?", c.Param("id")).First(&reservation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}

	if err := h.DB.Model(&reservation).Update("status", req.Status).Error; err != nil {
		internalError(c, "Failed to update reservation status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation status updated"})
}

// AdminListUsers returns every user with activity counts
func (h *Handler) AdminListUsers(c *gin.Context) {
	var users []models.User
	query := h.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&users).Error; err != nil {
		internalError(c, "Failed to load users")
		return
	}

	result := make([]gin.H, 0, len(users))
	for _, user := range users {
		var orderCount, reservationCount int64
		h.DB.Model(&models.Order{}).Where("user_id = ?", user.UserID).Count(&orderCount)
		h.DB.Model(&models.Reservation{}).Where("user_id = ?", user.UserID).Count(&reservationCount)
		result = append(result, gin.H{
			"user_id":           user.UserID,
			"name":              user.Name,
			"email":             user.Email,
			"phone":             user.Phone,
			"role":              user.Role,
			"status":            user.Status,
			"order_count":       orderCount,
			"reservation_count": reservationCount,
			"created_at":        user.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, result)
}

// AdminUpdateUserStatus activates or suspends a user account
func (h *Handler) AdminUpdateUserStatus(c *gin.Context) {
	var req AdminStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != models.UserActive && req.Status != models.UserSuspended {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var user models.User
	if err := h.DB.Where("user_id = ?", c.Param("id")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.DB.Model(&user).Update("status", req.Status).Error; err != nil {
		internalError(c, "Failed to update user status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User status updated"})
}

// AdminDeleteUser removes a user. Restaurant-role users take their
// restaurants and menus with them.
func (h *Handler) AdminDeleteUser(c *gin.Context) {
	var user models.User
	if err := h.DB.Where("user_id = ?", c.Param("id")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.Role == models.RoleRestaurant {
		ids, err := h.ownedRestaurantIDs(user.UserID)
		if err == nil && len(ids) > 0 {
			h.DB.Where("restaurant_id IN (?)", ids).Delete(&models.MenuItem{})
			h.DB.Where("restaurant_id IN (?)", ids).Delete(&models.MenuCategory{})
			h.DB.Where("restaurant_id IN (?)", ids).Delete(&models.Restaurant{})
		}
	}

	if err := h.DB.Delete(&user).Error; err != nil {
		internalError(c, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
