package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin    = "SUPERADMIN"
	RoleAdmin         = "ADMIN"
	RoleOrdersManager = "ORDERS_MANAGER"
)

// User representa un usuario del sistema.
// Todo usuario que no sea SUPERADMIN pertenece exactamente a un Tenant.
type User struct {
	ID           string
	TenantID     *string // nil solo para SUPERADMIN
	Email        string  // único global
	PasswordHash string  // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // SUPERADMIN, ADMIN, ORDERS_MANAGER
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole informa si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleOrdersManager:
		return true
	}
	return false
}

// Principal es el usuario autenticado tal como llega del colaborador de autenticación (JWT).
type Principal struct {
	ID       string
	Email    string
	Role     string
	TenantID string // vacío para SUPERADMIN
}

// IsSuperAdmin informa si el principal puede operar sobre cualquier tenant.
func (p *Principal) IsSuperAdmin() bool {
	return p != nil && p.Role == RoleSuperAdmin
}
