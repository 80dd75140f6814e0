package repository

import (
	"context"

	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, tenantID, slug string) (*entity.Category, error)
	List(ctx context.Context, tenantID string, activeOnly bool) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, tenantID, id string) error
	CountDishes(ctx context.Context, tenantID, id string) (int, error)
	UpdateOrder(ctx context.Context, tenantID, id string, order int) error
}
