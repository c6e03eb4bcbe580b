package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 90, cfg.Lease.RenewalHorizonDays)
	assert.InDelta(t, 3.0, cfg.Lease.RentIncreaseWarnPercent, 0.0001)
	assert.Equal(t, "0 7 * * *", cfg.Jobs.RenewalDigestSchedule)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 30*time.Second, cfg.Documents.Timeout)
	assert.Empty(t, cfg.Documents.BaseURL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "rentals")
	t.Setenv("LEASE_RENEWAL_HORIZON_DAYS", "60")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DOCUMENTS_BASE_URL", "https://docs.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Lease.RenewalHorizonDays)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "https://docs.example", cfg.Documents.BaseURL)
	assert.Equal(t, "postgres://postgres:@db.internal:5432/rentals?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_NegativeHorizon(t *testing.T) {
	t.Setenv("LEASE_RENEWAL_HORIZON_DAYS", "-1")

	_, err := config.Load()
	assert.Error(t, err)
}
