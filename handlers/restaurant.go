package handlers

import (
	"net/http"

	"dinedash-api/middleware"
	"dinedash-api/models"

	"github.com/gin-gonic/gin"
)

type RestaurantRequest struct {
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	Cuisine           string `json:"cuisine"`
	Address           string `json:"address" binding:"required"`
	Phone             string `json:"phone"`
	Hours             string `json:"hours"`
	ServiceType       string `json:"service_type" binding:"required,oneof=delivery reservations both"`
	IsVeg             bool   `json:"is_veg"`
	IsNonVeg          bool   `json:"is_non_veg"`
	SeatCapacity      int    `json:"seat_capacity"`
	SlotLengthMinutes int    `json:"slot_length_minutes"`
	ImageURL          string `json:"image_url"`
	LogoURL           string `json:"logo_url"`
}

// CreateRestaurant lets a restaurant-role user create a restaurant
func (h *Handler) CreateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seatCapacity := req.SeatCapacity
	if seatCapacity <= 0 {
		seatCapacity = 20
	}
	slotLength := req.SlotLengthMinutes
	if slotLength <= 0 {
		slotLength = 60
	}

	restaurant := models.Restaurant{
		OwnerID:           ownerID,
		Name:              req.Name,
		Description:       req.Description,
		Cuisine:           req.Cuisine,
		Address:           req.Address,
		Phone:             req.Phone,
		Hours:             req.Hours,
		ServiceType:       req.ServiceType,
		IsVeg:             req.IsVeg,
		IsNonVeg:          req.IsNonVeg,
		SeatCapacity:      seatCapacity,
		SlotLengthMinutes: slotLength,
		ImageURL:          req.ImageURL,
		LogoURL:           req.LogoURL,
		Status:            models.RestaurantApproved,
	}
	if err := h.DB.Create(&restaurant).Error; err != nil {
		internalError(c, "Failed to create restaurant")
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// UpdateRestaurant updates restaurant details. Wrong owner reads as 404 so
// restaurant existence is not leaked.
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	restaurant, err := h.ownedRestaurant(c.Param("id"), ownerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Omitted capacity fields fall back to the defaults, same as create;
	// an update must never zero out seating.
	seatCapacity := req.SeatCapacity
	if seatCapacity <= 0 {
		seatCapacity = 20
	}
	slotLength := req.SlotLengthMinutes
	if slotLength <= 0 {
		slotLength = 60
	}

	updates := map[string]interface{}{
		"name":                req.Name,
		"description":         req.Description,
		"cuisine":             req.Cuisine,
		"address":             req.Address,
		"phone":               req.Phone,
		"hours":               req.Hours,
		"service_type":        req.ServiceType,
		"is_veg":              req.IsVeg,
		"is_non_veg":          req.IsNonVeg,
		"seat_capacity":       seatCapacity,
		"slot_length_minutes": slotLength,
		"image_url":           req.ImageURL,
		"logo_url":            req.LogoURL,
	}
	if err := h.DB.Model(restaurant).Updates(updates).Error; err != nil {
		internalError(c, "Failed to update restaurant")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated successfully"})
}

type MenuCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder int    `json:"display_order"`
}

// CreateMenuCategory adds a category to an owned restaurant
func (h *Handler) CreateMenuCategory(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	restaurantID := c.Param("id")

	if _, err := h.ownedRestaurant(restaurantID, ownerID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req MenuCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.MenuCategory{
		RestaurantID: restaurantID,
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		internalError(c, "Failed to create category")
		return
	}
	c.JSON(http.StatusOK, category)
}

type MenuItemRequest struct {
	CategoryID  string  `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	IsVeg       *bool   `json:"is_veg"`
	IsAvailable *bool   `json:"is_available"`
}

// CreateMenuItem adds an item to an owned restaurant's menu
func (h *Handler) CreateMenuItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	restaurantID := c.Param("id")

	if _, err := h.ownedRestaurant(restaurantID, ownerID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurantID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		IsVeg:        req.IsVeg == nil || *req.IsVeg,
		IsAvailable:  req.IsAvailable == nil || *req.IsAvailable,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		internalError(c, "Failed to create menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateMenuItem updates an owned menu item
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	restaurantID := c.Param("id")

	if _, err := h.ownedRestaurant(restaurantID, ownerID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var item models.MenuItem
	if err := h.DB.Where("item_id = ? AND restaurant_id = ?", c.Param("itemId"), restaurantID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"category_id": req.CategoryID,
		"name":        req.Name,
		"description": req.Description,
		"price":       req.Price,
		"image_url":   req.ImageURL,
	}
	if req.IsVeg != nil {
		updates["is_veg"] = *req.IsVeg
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if err := h.DB.Model(&item).Updates(updates).Error; err != nil {
		internalError(c, "Failed to update menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem removes an owned menu item
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	restaurantID := c.Param("id")

	if _, err := h.ownedRestaurant(restaurantID, ownerID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var item models.MenuItem
	if err := h.DB.Where("item_id = ? AND restaurant_id = ?", c.Param("itemId"), restaurantID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	if err := h.DB.Delete(&item).Error; err != nil {
		internalError(c, "Failed to delete menu item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
