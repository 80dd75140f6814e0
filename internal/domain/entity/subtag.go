package entity

import "time"

// Subtag etiqueta libre definida por el tenant. El nombre es único por tenant sin distinguir mayúsculas.
type Subtag struct {
	ID        string
	TenantID  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
