package usecase

import (
	"context"

	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn dentro de una transacción con repositorios del catálogo atados a ella.
// Reordenamientos y borrado de subtags son todo o nada.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		categories repository.CategoryRepository,
		dishes repository.DishRepository,
		subtags repository.SubtagRepository,
	) error) error
}

// CacheInvalidator descarta la resolución cacheada de un tenant.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, tenantID string)
}
