package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_MAX_CONNS", "")

	cfg := ConfigFromEnv()
	assert.Contains(t, cfg.DSN, "postgres://")
	assert.Equal(t, 5, cfg.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:app@db:5432/authgate?sslmode=disable")
	t.Setenv("DATABASE_MAX_CONNS", "12")

	cfg := ConfigFromEnv()
	assert.Equal(t, "postgres://app:app@db:5432/authgate?sslmode=disable", cfg.DSN)
	assert.Equal(t, 12, cfg.MaxConns)
}
