package model

import "gorm.io/gorm"

// AutoMigrate migrates all entities of the haul booking core.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&ServiceProvider{},
		&ServiceCategory{},
		&PricingItem{},
		&ServiceRequest{},
		&Order{},
		&Event{},
	)
}
