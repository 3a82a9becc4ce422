package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("CURRENCY", "")
	t.Setenv("PUSH_TTL", "")

	s := Load()

	assert.Equal(t, ":8080", s.HTTPAddr)
	assert.Equal(t, "eur", s.Currency)
	assert.Equal(t, 60, s.PushTTL)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "orders")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("PUSH_TTL", "not-a-number")

	s := Load()

	assert.Equal(t, "host=db port=6543 user=app password=secret dbname=orders sslmode=disable", s.PostgresDSN())
	assert.Equal(t, "cache:6380", s.RedisAddr())
	assert.Equal(t, 60, s.PushTTL)
}

func TestSettings_Location(t *testing.T) {
	assert.Equal(t, time.Local, Settings{Timezone: "Local"}.Location())
	assert.Equal(t, time.Local, Settings{Timezone: "Not/AZone"}.Location())
	assert.Equal(t, "UTC", Settings{Timezone: "UTC"}.Location().String())
}
