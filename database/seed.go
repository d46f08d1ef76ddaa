package database

import (
	"os"

	"gorm.io/gorm"

	"smartmenu/models"
	"smartmenu/utils"
)

// SeedAdmin creates the bootstrap admin account on first run so a
// fresh deployment can be administered. No-op when any admin exists
// or when ADMIN_PASSWORD is unset.
func SeedAdmin(db *gorm.DB) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Username: getEnv("ADMIN_USERNAME", "admin"),
		Email:    getEnv("ADMIN_EMAIL", "admin@smartmenu.local"),
		Password: hashed,
		Role:     models.RoleAdmin,
		Active:   true,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded admin account %s", admin.Username)
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
