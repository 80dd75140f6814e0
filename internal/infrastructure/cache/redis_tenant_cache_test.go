package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisTenantCache) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewRedisTenantCache(rdb, 30*time.Second)
}

func TestRedisTenantCache_SetGet(t *testing.T) {
	mr, c := setupTestRedis(t)
	ctx := context.Background()

	got, err := c.Get(ctx, "cevicheria.james.pe")
	require.NoError(t, err)
	assert.Nil(t, got, "miss")

	tc := &entity.TenantContext{
		ID: "t1", Name: "La Cevichería", Domain: "cevicheria.james.pe",
		Settings: json.RawMessage(`{"theme":"dark"}`), Plan: entity.PlanBasic, Status: entity.TenantStatusActive,
	}
	require.NoError(t, c.Set(ctx, "Cevicheria.James.pe", tc))

	got, err = c.Get(ctx, "cevicheria.james.pe")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "t1", got.ID)
	assert.JSONEq(t, `{"theme":"dark"}`, string(got.Settings))

	mr.FastForward(31 * time.Second)
	got, err = c.Get(ctx, "cevicheria.james.pe")
	require.NoError(t, err)
	assert.Nil(t, got, "expirado por TTL")
}

func TestRedisTenantCache_Invalidate(t *testing.T) {
	mr, c := setupTestRedis(t)
	ctx := context.Background()
	tc := &entity.TenantContext{ID: "t1", Name: "A", Domain: "a.james.pe", Status: entity.TenantStatusActive}
	other := &entity.TenantContext{ID: "t2", Name: "B", Domain: "b.james.pe", Status: entity.TenantStatusActive}

	require.NoError(t, c.Set(ctx, "a.james.pe", tc))
	require.NoError(t, c.Set(ctx, "www.a.pe", tc))
	require.NoError(t, c.Set(ctx, "b.james.pe", other))

	require.NoError(t, c.Invalidate(ctx, "t1"))
	assert.False(t, mr.Exists("tenant:domain:a.james.pe"))
	assert.False(t, mr.Exists("tenant:domain:www.a.pe"))
	assert.False(t, mr.Exists("tenant:keys:t1"))
	assert.True(t, mr.Exists("tenant:domain:b.james.pe"))

	// Invalidar un tenant sin entradas no falla.
	require.NoError(t, c.Invalidate(ctx, "t9"))
}

func TestRedisTenantCache_CorruptEntryIsMiss(t *testing.T) {
	mr, c := setupTestRedis(t)
	require.NoError(t, mr.Set("tenant:domain:x.pe", "{no-json"))
	got, err := c.Get(context.Background(), "x.pe")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("tenant:domain:x.pe"))
}

func TestRedisTenantCache_Unavailable(t *testing.T) {
	mr, c := setupTestRedis(t)
	mr.SetError("LOADING")
	_, err := c.Get(context.Background(), "a.james.pe")
	assert.Error(t, err)
}
