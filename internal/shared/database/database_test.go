package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthStates(t *testing.T) {
	tests := []struct {
		name     string
		health   Health
		healthy  bool
		degraded bool
	}{
		{"all up", Health{PostgreSQL: StatusUp, Redis: StatusUp}, true, false},
		{"redis disabled", Health{PostgreSQL: StatusUp, Redis: StatusDisabled}, true, false},
		{"redis down", Health{PostgreSQL: StatusUp, Redis: StatusDown}, true, true},
		{"postgres down", Health{PostgreSQL: StatusDown, Redis: StatusUp}, false, false},
		{"both down", Health{PostgreSQL: StatusDown, Redis: StatusDown}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.healthy, tt.health.Healthy())
			assert.Equal(t, tt.degraded, tt.health.Degraded())
		})
	}
}

func TestHealthCheck_NoStores(t *testing.T) {
	health := (&DB{}).HealthCheck(t.Context())

	assert.Equal(t, StatusDown, health.PostgreSQL)
	assert.Equal(t, StatusDisabled, health.Redis)
	assert.False(t, health.Healthy())
}
