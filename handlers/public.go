package handlers

import (
	"net/http"

	"dinedash-api/models"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns all visible restaurants with optional filters
// (public). Suspended restaurants are hidden.
func (h *Handler) ListRestaurants(c *gin.Context) {
	query := h.DB.Where("status <> ?", models.RestaurantSuspended)

	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisine = ?", cuisine)
	}
	switch c.Query("diet") {
	case "veg":
		query = query.Where("is_veg = ?", true)
	case "non_veg":
		query = query.Where("is_non_veg = ?", true)
	}
	if serviceType := c.Query("service_type"); serviceType != "" {
		query = query.Where("service_type IN (?)", []string{serviceType, models.ServiceBoth})
	}

	restaurants := []models.Restaurant{}
	if err := query.Find(&restaurants).Error; err != nil {
		internalError(c, "Failed to list restaurants")
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

// GetRestaurant returns a single restaurant (public)
func (h *Handler) GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.DB.Where("restaurant_id = ?", c.Param("id")).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

type menuCategoryResponse struct {
	models.MenuCategory
	Items []models.MenuItem `json:"items"`
}

// GetMenu returns the menu grouped by category, ordered by display_order,
// with an optional diet filter (public).
func (h *Handler) GetMenu(c *gin.Context) {
	restaurantID := c.Param("id")

	var categories []models.MenuCategory
	if err := h.DB.Where("restaurant_id = ?", restaurantID).
		Order("display_order asc").Find(&categories).Error; err != nil {
		internalError(c, "Failed to load menu")
		return
	}

	diet := c.Query("diet")
	menu := make([]menuCategoryResponse, 0, len(categories))
	for _, category := range categories {
		itemQuery := h.DB.Where("restaurant_id = ? AND category_id = ?", restaurantID, category.CategoryID)
		switch diet {
		case "veg":
			itemQuery = itemQuery.Where("is_veg = ?", true)
		case "non_veg":
			itemQuery = itemQuery.Where("is_veg = ?", false)
		}

		items := []models.MenuItem{}
		if err := itemQuery.Find(&items).Error; err != nil {
			internalError(c, "Failed to load menu")
			return
		}
		menu = append(menu, menuCategoryResponse{MenuCategory: category, Items: items})
	}

	c.JSON(http.StatusOK, menu)
}

// GetMenuCategories returns a restaurant's menu categories (public)
func (h *Handler) GetMenuCategories(c *gin.Context) {
	categories := []models.MenuCategory{}
	if err := h.DB.Where("restaurant_id = ?", c.Param("id")).
		Order("display_order asc").Find(&categories).Error; err != nil {
		internalError(c, "Failed to load categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}
