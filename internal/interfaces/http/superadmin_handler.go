package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/menu-admin-api/internal/application/audit"
	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/application/superadmin"
	"github.com/jhoicas/menu-admin-api/pkg/logger"
)

// SuperAdminHandler gestión de tenants y consulta de logs (solo SUPERADMIN).
type SuperAdminHandler struct {
	tenants *superadmin.TenantAdminUseCase
	logs    *audit.Service
	log     *logger.Logger
}

// NewSuperAdminHandler construye el handler de superadmin.
func NewSuperAdminHandler(tenants *superadmin.TenantAdminUseCase, logs *audit.Service, log *logger.Logger) *SuperAdminHandler {
	return &SuperAdminHandler{tenants: tenants, logs: logs, log: log}
}

// ListTenants godoc
// @Summary      Listar tenants
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "página"
// @Param        limit   query  int     false  "tamaño"
// @Param        status  query  string  false  "active, suspended, inactive"
// @Param        plan    query  string  false  "plan"
// @Param        search  query  string  false  "nombre, slug o dominio"
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.TenantResponse}
// @Router       /api/superadmin/tenants [get]
func (h *SuperAdminHandler) ListTenants(c *fiber.Ctx) error {
	var in dto.TenantListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	items, page, err := h.tenants.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Data: items, Pagination: page})
}

// GetTenant godoc
// @Summary      Obtener tenant
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id"
// @Success      200  {object}  dto.SuccessResponse{data=dto.TenantResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/superadmin/tenants/{id} [get]
func (h *SuperAdminHandler) GetTenant(c *fiber.Ctx) error {
	out, err := h.tenants.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// CreateTenant godoc
// @Summary      Crear tenant con su usuario ADMIN
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateTenantRequest  true  "tenant y admin"
// @Success      201  {object}  dto.SuccessResponse{data=dto.CreateTenantResponse}
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/superadmin/tenants [post]
func (h *SuperAdminHandler) CreateTenant(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.tenants.Create(c.UserContext(), actorOf(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// UpdateTenantStatus godoc
// @Summary      Cambiar estado del tenant
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "id"
// @Param        body  body  dto.UpdateTenantStatusRequest  true  "estado"
// @Success      200  {object}  dto.SuccessResponse{data=dto.TenantResponse}
// @Router       /api/superadmin/tenants/{id}/status [patch]
func (h *SuperAdminHandler) UpdateTenantStatus(c *fiber.Ctx) error {
	var in dto.UpdateTenantStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.tenants.UpdateStatus(c.UserContext(), actorOf(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// DeleteTenant godoc
// @Summary      Eliminar tenant
// @Tags         superadmin
// @Security     BearerAuth
// @Param        id  path  string  true  "id"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      409  {object}  dto.ErrorResponse  "último tenant"
// @Router       /api/superadmin/tenants/{id} [delete]
func (h *SuperAdminHandler) DeleteTenant(c *fiber.Ctx) error {
	if err := h.tenants.Delete(c.UserContext(), actorOf(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return okMessage(c, "Tenant eliminado")
}

// TenantStats godoc
// @Summary      Estadísticas del tenant
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id"
// @Success      200  {object}  dto.SuccessResponse{data=dto.TenantStatsResponse}
// @Router       /api/superadmin/tenants/{id}/stats [get]
func (h *SuperAdminHandler) TenantStats(c *fiber.Ctx) error {
	out, err := h.tenants.Stats(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// ── Logs ────────────────────────────────────────────────────────────────────

// ListLogs godoc
// @Summary      Listar logs de auditoría
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        level      query  string  false  "info, warning, error, critical"
// @Param        action     query  string  false  "acción"
// @Param        userId     query  string  false  "usuario"
// @Param        tenantId   query  string  false  "tenant"
// @Param        startDate  query  string  false  "desde"
// @Param        endDate    query  string  false  "hasta"
// @Param        limit      query  int     false  "50 por defecto"
// @Param        offset     query  int     false  "desplazamiento"
// @Success      200  {object}  dto.SuccessResponse{data=dto.LogListResponse}
// @Router       /api/logs [get]
func (h *SuperAdminHandler) ListLogs(c *fiber.Ctx) error {
	var in dto.LogListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.logs.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// LogStats godoc
// @Summary      Resumen de logs
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SuccessResponse{data=dto.LogStatsResponse}
// @Router       /api/logs/stats [get]
func (h *SuperAdminHandler) LogStats(c *fiber.Ctx) error {
	out, err := h.logs.Stats(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// RecentLogs godoc
// @Summary      Logs de las últimas 24 horas
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "máximo de entradas"
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.LogResponse}
// @Router       /api/logs/recent [get]
func (h *SuperAdminHandler) RecentLogs(c *fiber.Ctx) error {
	out, err := h.logs.Recent(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// LogsByAction godoc
// @Summary      Logs de una acción
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        action  path   string  true   "acción (tenant_created, user_login, ...)"
// @Param        limit   query  int     false  "10 por defecto"
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.LogResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/logs/action/{action} [get]
func (h *SuperAdminHandler) LogsByAction(c *fiber.Ctx) error {
	out, err := h.logs.ByAction(c.UserContext(), c.Params("action"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}
