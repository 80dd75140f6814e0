package repository

import (
	"context"

	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
)

// SubtagRepository define el puerto de persistencia para Subtag (DIP).
type SubtagRepository interface {
	// Create devuelve domain.ErrDuplicate si el nombre ya existe (sin distinguir mayúsculas).
	Create(ctx context.Context, subtag *entity.Subtag) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Subtag, error)
	GetByName(ctx context.Context, tenantID, name string) (*entity.Subtag, error)
	List(ctx context.Context, tenantID string) ([]*entity.Subtag, error)
	Update(ctx context.Context, subtag *entity.Subtag) error
	Delete(ctx context.Context, tenantID, id string) error
	// CountByIDs cuántos de ids existen para el tenant.
	CountByIDs(ctx context.Context, tenantID string, ids []string) (int, error)
}
