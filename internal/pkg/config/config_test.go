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
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "5002", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 720*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "referral_system", cfg.Mongo.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, 4, cfg.Activity.Workers)
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":       "s3cret",
		"PORT":             "8080",
		"ENV":              "production",
		"TOKEN_TTL":        "1h",
		"REDIS_DB":         "2",
		"ACTIVITY_WORKERS": "16",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 16, cfg.Activity.Workers)
}

func TestLoadWith_RequiresSecret(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.Error(t, err)
}

func TestLoadSeed(t *testing.T) {
	cfg, err := LoadSeed(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err, "seed runs without JWT_SECRET")
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "referral_system", cfg.Mongo.Database)

	cfg, err = LoadSeed(context.Background(), envconfig.MapLookuper(map[string]string{
		"MONGO_URI": "mongodb://mongo:27017",
		"MONGO_DB":  "demo",
		"LOG_LEVEL": "debug",
	}))
	require.NoError(t, err)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.URI)
	assert.Equal(t, "demo", cfg.Mongo.Database)
	assert.Equal(t, "debug", cfg.LogLevel)
}
