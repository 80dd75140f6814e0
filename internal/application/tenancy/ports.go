package tenancy

import (
	"context"

	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
)

// Cache caché de lectura de la resolución de tenants por dominio.
// Un miss devuelve (nil, nil). Los errores nunca bloquean la resolución.
type Cache interface {
	Get(ctx context.Context, domain string) (*entity.TenantContext, error)
	Set(ctx context.Context, domain string, tenant *entity.TenantContext) error
	// Invalidate elimina todas las entradas asociadas al tenant.
	Invalidate(ctx context.Context, tenantID string) error
}
