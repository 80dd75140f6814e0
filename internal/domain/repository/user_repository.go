package repository

import (
	"context"

	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// ListByTenant usuarios del tenant, más recientes primero.
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.User, error)
	// Delete borra el usuario solo si pertenece al tenant.
	Delete(ctx context.Context, tenantID, id string) error
	CountByTenant(ctx context.Context, tenantID string) (int, error)
}
