package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 100, cfg.Booking.MaxPageSize)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Contains(t, cfg.Database.DSN, "dbname=eventplanner_db")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_VERSION", "v2")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("JWT_EXPIRES_IN", "60")
	t.Setenv("BOOKING_SLOT_LOCK_WAIT", "500ms")
	t.Setenv("BOOKING_MAX_PAGE_SIZE", "not-a-number")
	t.Setenv("GIN_MODE", "release")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.GetServerAddress())
	assert.Equal(t, "/api/v2", cfg.GetAPIBasePath())
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, time.Minute, cfg.JWT.JWTExpiresIn)
	assert.Equal(t, 500*time.Millisecond, cfg.Booking.SlotLockWait)
	assert.Equal(t, 100, cfg.Booking.MaxPageSize)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid in debug mode", func(t *testing.T) {
		assert.NoError(t, Load().Validate())
	})

	t.Run("release mode requires a real secret", func(t *testing.T) {
		t.Setenv("GIN_MODE", "release")
		assert.ErrorContains(t, Load().Validate(), "JWT_SECRET")

		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		assert.NoError(t, Load().Validate())
	})

	t.Run("reports every problem", func(t *testing.T) {
		cfg := Load()
		cfg.Booking.MaxPageSize = 0
		cfg.Kafka.Enabled = true
		cfg.Kafka.Brokers = nil

		err := cfg.Validate()
		assert.ErrorContains(t, err, "BOOKING_MAX_PAGE_SIZE")
		assert.ErrorContains(t, err, "KAFKA_BROKERS")
	})
}
