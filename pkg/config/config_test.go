package config_test

import (
	"testing"
	"time"

	"github.com/jhoicas/menu-admin-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "james.pe", cfg.Tenant.BaseDomain)
	assert.Equal(t, "America/Lima", cfg.Orders.Timezone)
	assert.Equal(t, 5, cfg.Orders.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.DB.QueryTimeout)
	assert.Equal(t, 60*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 256, cfg.Audit.QueueSize)
	assert.Equal(t, 3*time.Second, cfg.Audit.WriteTimeout)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("ORDERS_NUMBER_MAX_RETRIES", "3")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Orders.MaxRetries)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_ProductionRequiereSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestOrdersConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, config.OrdersConfig{Timezone: "No/Existe"}.Location())
	assert.Equal(t, "America/Lima", config.OrdersConfig{Timezone: "America/Lima"}.Location().String())
}

func TestDSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "menu", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/menu?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
