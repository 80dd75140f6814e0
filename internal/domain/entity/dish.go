package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dish representa un plato del menú. (slug, tenant_id) es único.
// SubtagIDs son referencias débiles: no hay FK en el esquema, se resuelven por lookup
// y se limpian desde la aplicación al eliminar un subtag.
type Dish struct {
	ID              string
	TenantID        string
	CategoryID      string
	Name            string
	Slug            string
	Description     string
	Price           decimal.Decimal
	Image           string
	IsActive        bool
	IsFeatured      bool
	Allergens       []string
	Tags            []string
	SubtagIDs       []string
	PreparationTime *int // minutos
	Servings        *int
	Order           int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// WithoutSubtag devuelve los SubtagIDs sin subtagID (y si hubo cambios).
func (d *Dish) WithoutSubtag(subtagID string) ([]string, bool) {
	out := make([]string, 0, len(d.SubtagIDs))
	for _, id := range d.SubtagIDs {
		if id != subtagID {
			out = append(out, id)
		}
	}
	return out, len(out) != len(d.SubtagIDs)
}
