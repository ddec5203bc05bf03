package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "0123456789abcdef",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "taskboard_session", cfg.Session.CookieName)
	assert.Equal(t, int64(5<<20), cfg.Web.UploadMaxBytes)
	assert.Equal(t, "taskboard", cfg.Mongo.Database)
	assert.Equal(t, "none", cfg.Telemetry.Exporter)
	assert.False(t, cfg.IsProduction())
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":  "0123456789abcdef",
		"ENV":         "production",
		"SESSION_TTL": "2h",
		"REDIS_DB":    "3",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadWith_SecretRequired(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.Error(t, err)

	_, err = LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{"JWT_SECRET": "short"}))
	assert.Error(t, err)
}
