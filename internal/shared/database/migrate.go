package database

import (
	"fmt"

	"eventplanner/internal/bookings"
	"eventplanner/internal/catalog"
	"eventplanner/internal/users"

	"gorm.io/gorm"
)

// Migrate creates the schema and the booking constraints on top of it
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&users.User{},
		&catalog.Event{},
		&catalog.Vendor{},
		&catalog.Service{},
		&bookings.Booking{},
	)
	if err != nil {
		return err
	}

	if err := MigrateConstraints(db); err != nil {
		return fmt.Errorf("failed to apply booking constraints: %w", err)
	}
	return nil
}
