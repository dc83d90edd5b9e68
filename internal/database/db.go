package database

import (
	"fmt"

	"loop-backend/internal/config"
	"loop-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect - Bağlantı havuzunu kurar ve döner. Global değişken yok;
// havuz çağrı tarafında handler'lara enjekte edilir.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}
	return db, nil
}

// Migrate - Tüm modelleri migrate eder.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Listing{},
		&models.ListingTrade{},
		&models.Notification{},
		&models.CreditMovement{},
	)
}
