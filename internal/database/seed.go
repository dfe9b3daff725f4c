package database

import (
	"log"

	"github.com/foodoo/foodoo/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedDevData populates the database with development test data.
// Idempotent: skips if data already exists.
func SeedDevData(db *gorm.DB) error {
	// Check if seed data already exists
	var existingUser models.User
	result := db.Where("email = ?", "dev@foodoo.local").First(&existingUser)
	if result.Error == nil {
		log.Println("Seed data already exists, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("devpassword"), 10)
	if err != nil {
		return err
	}

	// Create test user
	email := "dev@foodoo.local"
	user := models.User{
		Email:        &email,
		PasswordHash: string(hash),
		Name:         "Dev User",
		FirstName:    "Dev",
		LastName:     "User",
		Address:      "12 Test Lane, Devtown",
		Phone:        "9999999999",
		DOB:          datatypes.JSON([]byte(`{"day":"1","month":"1","year":"1990"}`)),
	}

	if err := db.Create(&user).Error; err != nil {
		return err
	}

	// Create sample AuthIdentity for the test user
	identity := models.AuthIdentity{
		UserID:         user.ID,
		Provider:       "google",
		ProviderUserID: "dev-google-id-12345",
		AccessToken:    "dev-access-token-placeholder",
		RefreshToken:   "dev-refresh-token-placeholder",
	}

	if err := db.Create(&identity).Error; err != nil {
		return err
	}

	// Create sample delivered order
	deliveredOrder := models.Order{
		UserID: user.ID,
		Items: []models.OrderItem{
			{RestaurantID: "spice-garden", RestaurantName: "Spice Garden", ItemName: "Paneer Tikka", Quantity: 2, Price: 220},
			{RestaurantID: "spice-garden", RestaurantName: "Spice Garden", ItemName: "Garlic Naan", Quantity: 4, Price: 45},
		},
		Total:         620,
		Address:       "12 Test Lane, Devtown",
		Phone:         "9999999999",
		PaymentMethod: models.PaymentMethodUPI,
		Status:        models.OrderStatusDelivered,
	}

	if err := db.Create(&deliveredOrder).Error; err != nil {
		return err
	}

	// Create sample pending order
	pendingOrder := models.Order{
		UserID: user.ID,
		Items: []models.OrderItem{
			{RestaurantID: "wok-this-way", RestaurantName: "Wok This Way", ItemName: "Veg Hakka Noodles", Quantity: 1, Price: 180},
		},
		Total:         180,
		Address:       "12 Test Lane, Devtown",
		Phone:         "9999999999",
		PaymentMethod: models.PaymentMethodCOD,
		Status:        models.OrderStatusPending,
	}

	if err := db.Create(&pendingOrder).Error; err != nil {
		return err
	}

	log.Printf("Seed data created: user %d with %d orders", user.ID, 2)
	return nil
}
