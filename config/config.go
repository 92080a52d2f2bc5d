package config

import (
	"os"
	"strings"

	"dinedash-api/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config carries all environment-provided settings.
type Config struct {
	Port                string
	DBPath              string
	JWTSecret           string
	StripeAPIKey        string
	StripeWebhookSecret string
	ResendAPIKey        string
	SenderEmail         string
	RedisAddr           string
	CORSOrigins         []string
	AdminEmail          string
	AdminPassword       string
}

func Load() *Config {
	return &Config{
		Port:                getEnv("PORT", "8080"),
		DBPath:              getEnv("DB_PATH", "dinedash.db"),
		JWTSecret:           getEnv("JWT_SECRET", "dinedash_super_secret_2024"),
		StripeAPIKey:        os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		ResendAPIKey:        os.Getenv("RESEND_API_KEY"),
		SenderEmail:         getEnv("SENDER_EMAIL", "no-reply@dinedash.local"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		CORSOrigins:         strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		AdminEmail:          os.Getenv("ADMIN_EMAIL"),
		AdminPassword:       os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the database and migrates all models. The returned handle is
// passed down explicitly; there is no package-level connection.
func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs auto-migration for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.Reservation{},
		&models.PaymentTransaction{},
		&models.Review{},
		&models.Favorite{},
	)
}

// EnsureAdmin creates the admin account if it does not exist yet. Admins have
// no signup route; they are provisioned from the environment.
func EnsureAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Status:       models.UserActive,
	}
	return db.Create(&admin).Error
}
