package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/menu-admin-api/internal/application/tenancy"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/redis/go-redis/v9"
)

var _ tenancy.Cache = (*RedisTenantCache)(nil)

const (
	domainKeyPrefix = "tenant:domain:"
	tenantKeysSet   = "tenant:keys:" // SET con las claves de dominio cacheadas de un tenant
)

// RedisTenantCache caché de lectura de la proyección TenantContext por dominio.
type RedisTenantCache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// NewRedisTenantCache construye la caché. ttl <= 0 usa 60s.
func NewRedisTenantCache(rdb redis.UniversalClient, ttl time.Duration) *RedisTenantCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisTenantCache{rdb: rdb, ttl: ttl}
}

// Get devuelve (nil, nil) en un miss.
func (c *RedisTenantCache) Get(ctx context.Context, domain string) (*entity.TenantContext, error) {
	raw, err := c.rdb.Get(ctx, domainKey(domain)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get tenant: %w", err)
	}
	var tc entity.TenantContext
	if err := json.Unmarshal(raw, &tc); err != nil {
		// Entrada corrupta: se trata como miss y se descarta.
		_ = c.rdb.Del(ctx, domainKey(domain)).Err()
		return nil, nil
	}
	return &tc, nil
}

// Set guarda la proyección y registra la clave en el índice del tenant.
func (c *RedisTenantCache) Set(ctx context.Context, domain string, tc *entity.TenantContext) error {
	if tc == nil {
		return nil
	}
	data, err := json.Marshal(tc)
	if err != nil {
		return fmt.Errorf("marshal tenant context: %w", err)
	}
	key := domainKey(domain)
	idx := tenantKeysSet + tc.ID
	_, err = c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, key, data, c.ttl)
		p.SAdd(ctx, idx, key)
		p.Expire(ctx, idx, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set tenant: %w", err)
	}
	return nil
}

// Invalidate elimina todas las entradas de dominio del tenant.
func (c *RedisTenantCache) Invalidate(ctx context.Context, tenantID string) error {
	idx := tenantKeysSet + tenantID
	keys, err := c.rdb.SMembers(ctx, idx).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis tenant keys: %w", err)
	}
	keys = append(keys, idx)
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis invalidate tenant: %w", err)
	}
	return nil
}

func domainKey(domain string) string {
	return domainKeyPrefix + strings.ToLower(strings.TrimSpace(domain))
}
