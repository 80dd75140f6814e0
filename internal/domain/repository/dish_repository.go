package repository

import (
	"context"

	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
)

// DishFilter filtros del listado de platos.
type DishFilter struct {
	TenantID     string
	CategoryID   string
	ActiveOnly   bool
	FeaturedOnly bool
}

// DishRepository define el puerto de persistencia para Dish (DIP).
type DishRepository interface {
	Create(ctx context.Context, dish *entity.Dish) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Dish, error)
	GetBySlug(ctx context.Context, tenantID, slug string) (*entity.Dish, error)
	List(ctx context.Context, f DishFilter) ([]*entity.Dish, error)
	Update(ctx context.Context, dish *entity.Dish) error
	Delete(ctx context.Context, tenantID, id string) error
	UpdateOrder(ctx context.Context, tenantID, id string, order int) error
	// RemoveSubtag quita subtagID de subtag_ids en todos los platos del tenant.
	RemoveSubtag(ctx context.Context, tenantID, subtagID string) (int64, error)
}
