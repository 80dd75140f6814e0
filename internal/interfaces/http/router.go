package http

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth         *AuthHandler
	Tenants      *TenantHandler
	Orders       *OrderHandler
	Catalog      *CatalogHandler
	SuperAdmin   *SuperAdminHandler
	Users        *UserHandler
	Tenancy      *TenantMiddleware
	JWTSecret    string
	QueryTimeout time.Duration
	Health       map[string]HealthCheck
	Metrics      http.Handler // nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.Health))
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api", Timeout(deps.QueryTimeout))
	authn := AuthMiddleware(deps.JWTSecret)
	optional := OptionalAuth(deps.JWTSecret)
	tm := deps.Tenancy

	admins := RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin)
	staffRoles := RequireRole(entity.RoleAdmin, entity.RoleOrdersManager, entity.RoleSuperAdmin)
	superOnly := RequireRole(entity.RoleSuperAdmin)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/login", deps.Auth.Login)
	authGroup.Get("/me", authn, deps.Auth.Me)

	// Tenants
	tenants := api.Group("/tenants")
	tenants.Get("/domain/:domain", deps.Tenants.ByDomain)
	tenants.Get("/current", optional, tm.ResolveTenant(false), deps.Tenants.Current)
	tenants.Patch("/current", authn, admins, tm.ResolveTenant(false), tm.IsolationGuard(), deps.Tenants.Update)
	tenants.Put("/current/settings", authn, admins, tm.ResolveTenant(false), tm.IsolationGuard(), deps.Tenants.UpdateSettings)

	// Pedidos: la ruta pública exige el header; el resto requiere personal del tenant.
	orders := api.Group("/orders")
	orders.Post("/public", tm.RequireHeaderTenant(), deps.Orders.Create)
	orders.Post("/", optional, tm.ResolveTenant(false), deps.Orders.Create)

	staff := []fiber.Handler{authn, staffRoles}
	orders.Get("/", with(staff, tm.ResolveTenant(true), tm.IsolationGuard(), deps.Orders.List)...)
	orders.Get("/stats", with(staff, tm.ResolveTenant(false), tm.IsolationGuard(), deps.Orders.Stats)...)
	orders.Get("/customer/:phone", with(staff, tm.ResolveTenant(false), tm.IsolationGuard(), deps.Orders.ByCustomer)...)
	orders.Get("/:id", with(staff, tm.ResolveTenant(true), tm.IsolationGuard(), deps.Orders.Get)...)
	orders.Get("/:id/ticket", with(staff, tm.ResolveTenant(true), tm.IsolationGuard(), deps.Orders.Ticket)...)
	orders.Patch("/:id/status", with(staff, tm.ResolveTenant(true), tm.IsolationGuard(), deps.Orders.UpdateStatus)...)
	orders.Delete("/:id", with(staff, tm.ResolveTenant(true), tm.IsolationGuard(), deps.Orders.Delete)...)

	// Catálogo: lectura pública con header; escritura para ADMIN del tenant.
	read := []fiber.Handler{optional, tm.ResolveTenant(false)}
	write := []fiber.Handler{authn, admins, tm.ResolveTenant(false), tm.IsolationGuard()}

	categories := api.Group("/categories")
	categories.Get("/", with(read, deps.Catalog.ListCategories)...)
	categories.Post("/", with(write, deps.Catalog.CreateCategory)...)
	categories.Put("/reorder", with(write, deps.Catalog.ReorderCategories)...)
	categories.Post("/reorder", with(write, deps.Catalog.ReorderCategories)...)
	categories.Get("/slug/:slug", with(read, deps.Catalog.GetCategoryBySlug)...)
	categories.Get("/:id", with(read, deps.Catalog.GetCategory)...)
	categories.Put("/:id", with(write, deps.Catalog.UpdateCategory)...)
	categories.Delete("/:id", with(write, deps.Catalog.DeleteCategory)...)

	dishes := api.Group("/dishes")
	dishes.Get("/", with(read, deps.Catalog.ListDishes)...)
	dishes.Post("/", with(write, deps.Catalog.CreateDish)...)
	dishes.Put("/reorder", with(write, deps.Catalog.ReorderDishes)...)
	dishes.Post("/reorder", with(write, deps.Catalog.ReorderDishes)...)
	dishes.Get("/slug/:slug", with(read, deps.Catalog.GetDishBySlug)...)
	dishes.Get("/:id", with(read, deps.Catalog.GetDish)...)
	dishes.Put("/:id", with(write, deps.Catalog.UpdateDish)...)
	dishes.Delete("/:id", with(write, deps.Catalog.DeleteDish)...)

	subtags := api.Group("/subtags")
	subtags.Get("/", with(read, deps.Catalog.ListSubtags)...)
	subtags.Post("/", with(write, deps.Catalog.CreateSubtag)...)
	subtags.Get("/:id", with(read, deps.Catalog.GetSubtag)...)
	subtags.Put("/:id", with(write, deps.Catalog.UpdateSubtag)...)
	subtags.Patch("/:id", with(write, deps.Catalog.UpdateSubtag)...)
	subtags.Delete("/:id", with(write, deps.Catalog.DeleteSubtag)...)

	// Administración del tenant
	admin := api.Group("/admin")
	admin.Get("/users", with(write, deps.Users.List)...)
	admin.Post("/users", with(write, deps.Users.Create)...)
	admin.Put("/users/:id", with(write, deps.Users.Update)...)
	admin.Delete("/users/:id", with(write, deps.Users.Delete)...)
	admin.Get("/stats", with(write, deps.Users.Stats)...)

	// Superadmin
	sa := api.Group("/superadmin", authn, superOnly)
	sa.Get("/tenants", deps.SuperAdmin.ListTenants)
	sa.Post("/tenants", deps.SuperAdmin.CreateTenant)
	sa.Get("/tenants/:id", deps.SuperAdmin.GetTenant)
	sa.Patch("/tenants/:id", deps.Tenants.UpdateByID)
	sa.Delete("/tenants/:id", deps.SuperAdmin.DeleteTenant)
	sa.Patch("/tenants/:id/status", deps.SuperAdmin.UpdateTenantStatus)
	sa.Get("/tenants/:id/stats", deps.SuperAdmin.TenantStats)

	logs := api.Group("/logs", authn, superOnly)
	logs.Get("/", deps.SuperAdmin.ListLogs)
	logs.Get("/stats", deps.SuperAdmin.LogStats)
	logs.Get("/recent", deps.SuperAdmin.RecentLogs)
	logs.Get("/action/:action", deps.SuperAdmin.LogsByAction)
}

// with concatena una cadena de middlewares con los handlers finales en un slice nuevo.
func with(chain []fiber.Handler, handlers ...fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(chain)+len(handlers))
	out = append(out, chain...)
	return append(out, handlers...)
}
