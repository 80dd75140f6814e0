package superadmin

import (
	"context"

	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
)

// TenantTxRunner ejecuta fn en una transacción con repos de tenants y usuarios atados a ella.
type TenantTxRunner interface {
	RunTenant(ctx context.Context, fn func(tenants repository.TenantRepository, users repository.UserRepository) error) error
}

// CacheInvalidator descarta la resolución cacheada de un tenant.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, tenantID string)
}
