package repository

import (
	"context"
	"time"

	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
)

// OrderFilter filtros del listado de pedidos. TenantID vacío solo para SUPERADMIN.
type OrderFilter struct {
	TenantID      string
	Status        entity.OrderStatus
	DateFrom      *time.Time
	DateTo        *time.Time
	CustomerPhone string
	Search        string // número de pedido o nombre del cliente
	Page          int
	Limit         int
}

// Offset desplazamiento para la página actual.
func (f OrderFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	// Create devuelve domain.ErrDuplicate si (order_number, tenant_id) ya existe.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, int, error)
	// LastOrderNumber devuelve el mayor order_number del tenant con ese prefijo creado en [dayStart, dayEnd).
	// Cadena vacía si no hay pedidos.
	LastOrderNumber(ctx context.Context, tenantID, prefix string, dayStart, dayEnd time.Time) (string, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, tenantID string, dayStart, dayEnd time.Time) (*entity.OrderStats, error)
}
