package handlers

import (
	"math"
	"net/http"

	"dinedash-api/cache"
	"dinedash-api/middleware"
	"dinedash-api/models"

	"github.com/gin-gonic/gin"
)

type CreateReviewRequest struct {
	RestaurantID string `json:"restaurant_id" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment"`
	OrderID      string `json:"order_id"`
}

// CreateReview posts a rating for a restaurant (customer only)
func (h *Handler) CreateReview(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := h.DB.Where("restaurant_id = ?", req.RestaurantID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	review := models.Review{
		UserID:       userID,
		RestaurantID: req.RestaurantID,
		OrderID:      req.OrderID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}
	if err := h.DB.Create(&review).Error; err != nil {
		internalError(c, "Failed to create review")
		return
	}

	h.Ratings.Invalidate(c.Request.Context(), req.RestaurantID)
	c.JSON(http.StatusOK, review)
}

// GetRestaurantReviews returns a restaurant's reviews with reviewer names
// (public)
func (h *Handler) GetRestaurantReviews(c *gin.Context) {
	reviews := []models.Review{}
	if err := h.DB.Preload("Reviewer").
		Where("restaurant_id = ?", c.Param("id")).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		internalError(c, "Failed to load reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// GetRestaurantRating returns the review aggregate for a restaurant (public),
// served from Redis when fresh.
func (h *Handler) GetRestaurantRating(c *gin.Context) {
	restaurantID := c.Param("id")

	if rating, ok := h.Ratings.Get(c.Request.Context(), restaurantID); ok {
		c.JSON(http.StatusOK, gin.H{
			"average_rating": rating.AverageRating,
			"total_reviews":  rating.TotalReviews,
		})
		return
	}

	rating, err := h.restaurantRating(restaurantID)
	if err != nil {
		internalError(c, "Failed to load rating")
		return
	}

	h.Ratings.Set(c.Request.Context(), restaurantID, rating)
	c.JSON(http.StatusOK, gin.H{
		"average_rating": rating.AverageRating,
		"total_reviews":  rating.TotalReviews,
	})
}

// AddFavorite marks a restaurant as a favorite of the caller (customer only)
func (h *Handler) AddFavorite(c *gin.Context) {
	userID := middleware.GetUserID(c)
	restaurantID := c.Param("restaurantId")

	var restaurant models.Restaurant
	if err := h.DB.Where("restaurant_id = ?", restaurantID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	favorite := models.Favorite{UserID: userID, RestaurantID: restaurantID}
	if err := h.DB.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		FirstOrCreate(&favorite).Error; err != nil {
		internalError(c, "Failed to add favorite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to favorites"})
}

// RemoveFavorite unmarks a favorite restaurant (customer only)
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.DB.Where("user_id = ? AND restaurant_id = ?", userID, c.Param("restaurantId")).
		Delete(&models.Favorite{}).Error; err != nil {
		internalError(c, "Failed to remove favorite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
}

// ListFavorites returns the caller's favorite restaurants with their rating
// aggregates (customer only)
func (h *Handler) ListFavorites(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var favorites []models.Favorite
	if err := h.DB.Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		internalError(c, "Failed to load favorites")
		return
	}

	result := make([]gin.H, 0, len(favorites))
	for _, favorite := range favorites {
		var restaurant models.Restaurant
		if err := h.DB.Where("restaurant_id = ?", favorite.RestaurantID).First(&restaurant).Error; err != nil {
			continue
		}
		rating, err := h.restaurantRating(restaurant.RestaurantID)
		if err != nil {
			internalError(c, "Failed to load favorites")
			return
		}
		result = append(result, gin.H{
			"restaurant_id":  restaurant.RestaurantID,
			"name":           restaurant.Name,
			"description":    restaurant.Description,
			"cuisine":        restaurant.Cuisine,
			"address":        restaurant.Address,
			"image_url":      restaurant.ImageURL,
			"service_type":   restaurant.ServiceType,
			"average_rating": rating.AverageRating,
			"total_reviews":  rating.TotalReviews,
		})
	}
	c.JSON(http.StatusOK, result)
}

// restaurantRating aggregates reviews; the average is rounded to one decimal.
func (h *Handler) restaurantRating(restaurantID string) (cache.Rating, error) {
	var rating cache.Rating
	err := h.DB.Model(&models.Review{}).
		Where("restaurant_id = ?", restaurantID).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS total_reviews").
		Scan(&rating).Error
	if err != nil {
		return cache.Rating{}, err
	}
	rating.AverageRating = math.Round(rating.AverageRating*10) / 10
	return rating, nil
}
