package database

import (
	"gorm.io/gorm"
)

// bookingConstraints back the engine's slot conflict check. The partial
// unique index rejects an identical active window even if two writers slip
// past the application check.
var bookingConstraints = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_bookings_active_slot
		ON bookings (vendor_id, service_id, booking_date, start_time, end_time)
		WHERE status IN ('pending', 'confirmed', 'in_progress')
		AND start_time IS NOT NULL AND end_time IS NOT NULL`,

	`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS chk_bookings_time_range`,
	`ALTER TABLE bookings ADD CONSTRAINT chk_bookings_time_range
		CHECK (start_time IS NULL OR end_time IS NULL OR start_time < end_time)`,

	// Slot lookup used by the conflict check
	`CREATE INDEX IF NOT EXISTS idx_bookings_slot_lookup
		ON bookings (vendor_id, service_id, booking_date, status)`,

	// Listing order
	`CREATE INDEX IF NOT EXISTS idx_bookings_listing
		ON bookings (booking_date DESC, created_at DESC)`,
}

// MigrateConstraints adds the indexes and checks AutoMigrate cannot express
func MigrateConstraints(db *gorm.DB) error {
	for _, stmt := range bookingConstraints {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
