package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/focus/internal/config"
)

func TestPoolConfig_FromParts(t *testing.T) {
	cfg, err := poolConfig(config.DatabaseConfig{
		Host:            "db.internal",
		Port:            "5433",
		Name:            "focus",
		User:            "focus",
		Password:        "secret",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    20,
		MaxConnLifetime: time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.ConnConfig.Host)
	assert.Equal(t, uint16(5433), cfg.ConnConfig.Port)
	assert.Equal(t, int32(10), cfg.MaxConns)
	assert.Equal(t, int32(10), cfg.MinConns, "idle connections are capped by the pool size")
	assert.Equal(t, time.Minute, cfg.MaxConnLifetime)
	assert.Equal(t, applicationName, cfg.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_URLKeepsApplicationName(t *testing.T) {
	cfg, err := poolConfig(config.DatabaseConfig{
		URL: "postgres://u:p@localhost:5432/focus?sslmode=disable&application_name=worker",
	})
	require.NoError(t, err)
	assert.Equal(t, "worker", cfg.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_Invalid(t *testing.T) {
	_, err := poolConfig(config.DatabaseConfig{URL: "postgres://%zz"})
	assert.Error(t, err)
}
