package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
)

// TenantFilter filtros del listado de tenants (panel superadmin).
type TenantFilter struct {
	Status string
	Plan   string
	Search string // nombre, slug o dominio (contiene, sin distinguir mayúsculas)
	Limit  int
	Offset int
}

// TenantRepository define el puerto de persistencia para Tenant (DIP).
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	// FindByDomain busca por domain = domain OR custom_domain = domain OR slug = slug,
	// restringido a los estados indicados.
	FindByDomain(ctx context.Context, domain, slug string, statuses []string) (*entity.Tenant, error)
	ExistsSlugOrDomain(ctx context.Context, slug, domain string) (bool, error)
	List(ctx context.Context, f TenantFilter) ([]*entity.Tenant, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateSettings(ctx context.Context, id string, settings json.RawMessage) error
	// Update persiste nombre, email, plan, dominio y dominio propio. Dominios repetidos: domain.ErrDuplicate.
	Update(ctx context.Context, tenant *entity.Tenant) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	// Stats agrega pedidos, ingresos y conteos del tenant; monthStart delimita "este mes".
	Stats(ctx context.Context, id string, monthStart time.Time) (*entity.TenantStats, error)
}
