package initialize

import (
	"equiptrack/config"
	"equiptrack/internal/auth"
	"equiptrack/internal/logger"
	. "equiptrack/internal/models"

	"gorm.io/gorm"
)

// InitializeTables seeds the data every deployment needs regardless of
// environment: a bootstrap admin account when no user exists yet.
func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	var userCount int64
	if err := db.Model(&User{}).Count(&userCount).Error; err != nil {
		return log.Err("failed to count users", err)
	}

	if userCount == 0 {
		password, err := auth.HashPassword("changeme")
		if err != nil {
			return log.Err("failed to hash bootstrap password", err)
		}

		admin := User{
			Login:     "admin",
			Password:  password,
			FirstName: "Admin",
			Role:      RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return log.Err("failed to create bootstrap admin", err)
		}
		log.Info("Created bootstrap admin", "login", admin.Login)
	}

	log.Info("Table initialization complete")
	return nil
}
