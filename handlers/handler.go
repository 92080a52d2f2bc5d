package handlers

import (
	"net/http"

	"dinedash-api/cache"
	"dinedash-api/models"
	"dinedash-api/notify"
	"dinedash-api/payments"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler carries the dependencies shared by all request handlers. The
// persistence handle is constructed once and passed down; there are no
// package-level connections.
type Handler struct {
	DB        *gorm.DB
	Log       *zap.Logger
	Payments  payments.Provider
	Notifier  notify.Notifier
	Ratings   *cache.RatingCache
	JWTSecret []byte
}

func New(db *gorm.DB, log *zap.Logger, provider payments.Provider, notifier notify.Notifier, ratings *cache.RatingCache, jwtSecret []byte) *Handler {
	return &Handler{
		DB:        db,
		Log:       log,
		Payments:  provider,
		Notifier:  notifier,
		Ratings:   ratings,
		JWTSecret: jwtSecret,
	}
}

// ownedRestaurant loads a restaurant only if it belongs to ownerID.
func (h *Handler) ownedRestaurant(restaurantID, ownerID string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := h.DB.Where("restaurant_id = ? AND owner_id = ?", restaurantID, ownerID).First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// ownedRestaurantIDs lists ids of every restaurant owned by ownerID.
func (h *Handler) ownedRestaurantIDs(ownerID string) ([]string, error) {
	var ids []string
	err := h.DB.Model(&models.Restaurant{}).Where("owner_id = ?", ownerID).Pluck("restaurant_id", &ids).Error
	return ids, err
}

func internalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
