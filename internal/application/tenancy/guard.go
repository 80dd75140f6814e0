package tenancy

import (
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
)

// Authorize decide si principal puede operar sobre tenant.
// SUPERADMIN accede a cualquier tenant. Sin usuario o sin tenant: ErrUnauthorized.
// Tenant distinto al del usuario: ErrForbidden.
func Authorize(principal *entity.Principal, tenant *entity.TenantContext) error {
	if principal.IsSuperAdmin() {
		return nil
	}
	if principal == nil || tenant == nil {
		return domain.ErrUnauthorized
	}
	if principal.TenantID != tenant.ID {
		return domain.ErrForbidden
	}
	return nil
}
