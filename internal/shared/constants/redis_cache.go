package constants

import (
	"time"
)

// Redis keys follow eventplanner:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // booking details
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // booking stats
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "eventplanner"
)

// ================== BOOKINGS MODULE ==================

// Booking Cache Keys
const (
	CACHE_KEY_BOOKING_DETAIL = CACHE_PREFIX + ":bookings:detail:uuid:" // + booking-id
	CACHE_KEY_BOOKING_STATS  = CACHE_PREFIX + ":bookings:stats:"       // + scope
	LOCK_KEY_BOOKING_SLOT    = CACHE_PREFIX + ":bookings:slot_lock:"   // + vendor:service:date
)

// Booking Cache TTLs
const (
	TTL_BOOKING_DETAIL = TTL_DYNAMIC_MEDIUM
	TTL_BOOKING_STATS  = TTL_DYNAMIC_SHORT
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_BOOKING_STATS = CACHE_KEY_BOOKING_STATS + "*"
)

// ================== HELPER FUNCTIONS ==================

func BuildBookingDetailKey(bookingID string) string {
	return CACHE_KEY_BOOKING_DETAIL + bookingID
}

// BuildBookingStatsKey keys stats by the caller's visibility scope,
// e.g. "all", "customer:<uuid>" or "vendor:<uuid>"
func BuildBookingStatsKey(scope string) string {
	return CACHE_KEY_BOOKING_STATS + scope
}

func BuildBookingSlotLockKey(vendorID, serviceID, date string) string {
	return LOCK_KEY_BOOKING_SLOT + vendorID + ":" + serviceID + ":" + date
}
