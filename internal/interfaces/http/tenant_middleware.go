package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/menu-admin-api/internal/application/tenancy"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/pkg/logger"
)

// HeaderTenantDomain header con el dominio del tenant que gobierna el request.
const HeaderTenantDomain = "X-Tenant-Domain"

// TenantMiddleware resuelve y protege el tenant del request.
type TenantMiddleware struct {
	resolver *tenancy.Resolver
	log      *logger.Logger
}

// NewTenantMiddleware construye los middlewares de tenant.
func NewTenantMiddleware(resolver *tenancy.Resolver, log *logger.Logger) *TenantMiddleware {
	return &TenantMiddleware{resolver: resolver, log: log}
}

// RequireHeaderTenant exige X-Tenant-Domain (rutas públicas) y adjunta el tenant resuelto.
func (m *TenantMiddleware) RequireHeaderTenant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tc, err := m.resolver.Resolve(c.UserContext(), c.Get(HeaderTenantDomain))
		if err != nil {
			return writeError(c, m.log, err)
		}
		c.Locals(LocalTenant, tc)
		return c.Next()
	}
}

// ResolveTenant adjunta el tenant según prioridad: header, tenant ya adjunto, tenant del usuario.
// Con allowWithoutTenant un SUPERADMIN sin header sigue sin tenant (vista global).
func (m *TenantMiddleware) ResolveTenant(allowWithoutTenant bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		header := c.Get(HeaderTenantDomain)
		if allowWithoutTenant && p.IsSuperAdmin() && header == "" && GetTenant(c) == nil {
			return c.Next()
		}
		tc, err := m.resolver.ForRequest(c.UserContext(), header, GetTenant(c), p)
		if err != nil {
			return writeError(c, m.log, err)
		}
		c.Locals(LocalTenant, tc)
		return c.Next()
	}
}

// IsolationGuard impide operar sobre un tenant ajeno. Va después de AuthMiddleware y ResolveTenant.
func (m *TenantMiddleware) IsolationGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		tc := GetTenant(c)
		if tc == nil && p.IsSuperAdmin() {
			return c.Next()
		}
		if err := tenancy.Authorize(p, tc); err != nil {
			return writeError(c, m.log, err)
		}
		return c.Next()
	}
}

// GetTenant devuelve el tenant adjunto al request (nil si no hay).
func GetTenant(c *fiber.Ctx) *entity.TenantContext {
	tc, _ := c.Locals(LocalTenant).(*entity.TenantContext)
	return tc
}

// tenantID id del tenant adjunto o vacío.
func tenantID(c *fiber.Ctx) string {
	if tc := GetTenant(c); tc != nil {
		return tc.ID
	}
	return ""
}
