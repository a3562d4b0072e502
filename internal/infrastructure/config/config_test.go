package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "eventnexus-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "eventnexus", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)

	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())

	assert.Equal(t, "eventnexus", cfg.Auth.Issuer)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.HTTP.IdleTimeout)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	assert.Contains(t, cfg.HTTP.CORSAllowMethods, "OPTIONS")

	assert.Equal(t, "https://api.razorpay.com/v1", cfg.Razorpay.BaseURL)
	assert.Equal(t, 30*time.Minute, cfg.Reservation.TTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NEXUS_APP_PORT", "9090")
	t.Setenv("NEXUS_DATABASE_PASSWORD", "s3cret")
	t.Setenv("NEXUS_RESERVATION_TTL", "45m")
	t.Setenv("NEXUS_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 45*time.Minute, cfg.Reservation.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsShortReservationTTL(t *testing.T) {
	t.Setenv("NEXUS_RESERVATION_TTL", "10s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reservation.ttl")
}

func TestLoadProductionValidation(t *testing.T) {
	setProduction := func(t *testing.T) {
		t.Setenv("NEXUS_APP_ENV", "production")
		t.Setenv("NEXUS_AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("NEXUS_DATABASE_PASSWORD", "s3cret")
		t.Setenv("NEXUS_DATABASE_SSLMODE", "require")
		t.Setenv("NEXUS_RAZORPAY_KEY_ID", "rzp_live_key")
		t.Setenv("NEXUS_RAZORPAY_KEY_SECRET", "rzp_live_secret")
		t.Setenv("NEXUS_RAZORPAY_WEBHOOK_SECRET", "whsec_live")
	}

	t.Run("complete production config loads", func(t *testing.T) {
		setProduction(t)
		_, err := Load()
		require.NoError(t, err)
	})

	t.Run("short jwt secret rejected", func(t *testing.T) {
		setProduction(t)
		t.Setenv("NEXUS_AUTH_JWT_SECRET", "short")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt_secret")
	})

	t.Run("plaintext database connections rejected", func(t *testing.T) {
		setProduction(t)
		t.Setenv("NEXUS_DATABASE_SSLMODE", "disable")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("missing gateway credentials rejected", func(t *testing.T) {
		setProduction(t)
		t.Setenv("NEXUS_RAZORPAY_KEY_SECRET", "")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "razorpay")
	})
}

func TestDatabaseDSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "nexus",
		Password: "p@ss/word",
		DBName:   "eventnexus",
		SSLMode:  "require",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword")
	assert.Contains(t, dsn, "sslmode=require")
}
