package handlers

import (
	"net/http"

	"dinedash-api/middleware"
	"dinedash-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CustomerSignup creates a customer account
func (h *Handler) CustomerSignup(c *gin.Context) {
	h.signup(c, models.RoleCustomer)
}

// RestaurantSignup creates a restaurant-owner account
func (h *Handler) RestaurantSignup(c *gin.Context) {
	h.signup(c, models.RoleRestaurant)
}

func (h *Handler) CustomerLogin(c *gin.Context) {
	h.login(c, models.RoleCustomer)
}

func (h *Handler) RestaurantLogin(c *gin.Context) {
	h.login(c, models.RoleRestaurant)
}

// AdminLogin authenticates the admin account. Admins have no signup route.
func (h *Handler) AdminLogin(c *gin.Context) {
	h.login(c, models.RoleAdmin)
}

func (h *Handler) signup(c *gin.Context, role models.UserRole) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Email uniqueness is global, not per-role: a customer and a restaurant
	// account cannot share an email.
	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		internalError(c, "Failed to hash password")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		Phone:        req.Phone,
		Status:       models.UserActive,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		internalError(c, "Failed to create user")
		return
	}

	token, err := middleware.GenerateToken(&user, h.JWTSecret)
	if err != nil {
		internalError(c, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"user_id": user.UserID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
	})
}

func (h *Handler) login(c *gin.Context, role models.UserRole) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ? AND role = ?", req.Email, role).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if user.Status == models.UserSuspended {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account suspended"})
		return
	}

	token, err := middleware.GenerateToken(&user, h.JWTSecret)
	if err != nil {
		internalError(c, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"user_id": user.UserID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
	})
}
