package routes

import (
	"dinedash-api/handlers"
	"dinedash-api/middleware"
	"dinedash-api/models"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the full /api surface. Role checks are applied
// uniformly through the auth middleware pair rather than inline per handler.
func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	auth := middleware.AuthRequired(h.JWTSecret)
	customer := middleware.RoleRequired(models.RoleCustomer)
	restaurant := middleware.RoleRequired(models.RoleRestaurant)
	admin := middleware.RoleRequired(models.RoleAdmin)

	api := r.Group("/api")

	// ── Auth ───────────────────────────────────────────────────────
	api.POST("/auth/customer/signup", h.CustomerSignup)
	api.POST("/auth/customer/login", h.CustomerLogin)
	api.POST("/auth/restaurant/signup", h.RestaurantSignup)
	api.POST("/auth/restaurant/login", h.RestaurantLogin)
	api.POST("/auth/admin/login", h.AdminLogin)

	// ── Public browsing ────────────────────────────────────────────
	api.GET("/restaurants", h.ListRestaurants)
	api.GET("/restaurants/:id", h.GetRestaurant)
	api.GET("/restaurants/:id/menu", h.GetMenu)
	api.GET("/restaurants/:id/categories", h.GetMenuCategories)
	api.GET("/restaurants/:id/availability", h.CheckAvailability)
	api.GET("/restaurants/:id/reviews", h.GetRestaurantReviews)
	api.GET("/restaurants/:id/rating", h.GetRestaurantRating)

	// ── Restaurant management (owner) ──────────────────────────────
	api.POST("/restaurants", auth, restaurant, h.CreateRestaurant)
	api.PUT("/restaurants/:id", auth, restaurant, h.UpdateRestaurant)
	api.POST("/restaurants/:id/categories", auth, restaurant, h.CreateMenuCategory)
	api.POST("/restaurants/:id/items", auth, restaurant, h.CreateMenuItem)
	api.PUT("/restaurants/:id/items/:itemId", auth, restaurant, h.UpdateMenuItem)
	api.DELETE("/restaurants/:id/items/:itemId", auth, restaurant, h.DeleteMenuItem)

	// ── Orders ─────────────────────────────────────────────────────
	api.POST("/orders", auth, customer, h.CreateOrder)
	api.GET("/orders", auth, customer, h.GetMyOrders)
	api.GET("/orders/:id", auth, customer, h.GetOrder)
	api.PUT("/orders/:id/cancel", auth, customer, h.CancelOrder)
	api.PUT("/orders/:id/status", auth, restaurant, h.UpdateOrderStatus)
	api.GET("/restaurant/orders", auth, restaurant, h.GetRestaurantOrders)

	// ── Reservations ───────────────────────────────────────────────
	api.POST("/reservations", auth, customer, h.CreateReservation)
	api.GET("/reservations", auth, customer, h.GetMyReservations)
	api.GET("/reservations/:id", auth, customer, h.GetReservation)
	api.PUT("/reservations/:id/cancel", auth, customer, h.CancelReservation)
	api.PUT("/reservations/:id/status", auth, restaurant, h.UpdateReservationStatus)
	api.GET("/restaurant/reservations", auth, restaurant, h.GetRestaurantReservations)

	// ── Reviews & favorites ────────────────────────────────────────
	api.POST("/reviews", auth, customer, h.CreateReview)
	api.POST("/favorites/:restaurantId", auth, customer, h.AddFavorite)
	api.DELETE("/favorites/:restaurantId", auth, customer, h.RemoveFavorite)
	api.GET("/favorites", auth, customer, h.ListFavorites)

	// ── Payments ───────────────────────────────────────────────────
	api.POST("/payments/checkout", auth, h.CreateCheckout)
	api.GET("/payments/status/:sessionId", auth, h.GetPaymentStatus)
	// Webhook is unauthenticated; it carries its own signature.
	api.POST("/webhook/stripe", h.StripeWebhook)

	// ── Admin ──────────────────────────────────────────────────────
	adminGroup := api.Group("/admin", auth, admin)
	{
		adminGroup.GET("/dashboard/stats", h.DashboardStats)
		adminGroup.GET("/restaurants", h.AdminListRestaurants)
		adminGroup.PUT("/restaurants/:id/status", h.AdminUpdateRestaurantStatus)
		adminGroup.DELETE("/restaurants/:id", h.AdminDeleteRestaurant)
		adminGroup.GET("/orders", h.AdminListOrders)
		adminGroup.PUT("/orders/:id/status", h.AdminUpdateOrderStatus)
		adminGroup.GET("/reservations", h.AdminListReservations)
		adminGroup.PUT("/reservations/:id/status", h.AdminUpdateReservationStatus)
		adminGroup.GET("/users", h.AdminListUsers)
		adminGroup.PUT("/users/:id/status", h.AdminUpdateUserStatus)
		adminGroup.DELETE("/users/:id", h.AdminDeleteUser)
	}
}
