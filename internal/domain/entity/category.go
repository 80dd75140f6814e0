package entity

import "time"

// Category representa una categoría del menú de un tenant.
// (slug, tenant_id) es único; Order define la secuencia de despliegue.
type Category struct {
	ID          string
	TenantID    string
	Name        string
	Slug        string
	Description string
	Image       string
	Order       int
	IsActive    bool
	DishCount   int // solo lectura, calculado en consultas de listado
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
