package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/application/tenancy"
	"github.com/jhoicas/menu-admin-api/internal/application/usecase"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/pkg/logger"
)

// TenantHandler consultas del tenant y actualización de settings.
type TenantHandler struct {
	resolver *tenancy.Resolver
	uc       *usecase.TenantUseCase
	log      *logger.Logger
}

// NewTenantHandler construye el handler de tenants.
func NewTenantHandler(resolver *tenancy.Resolver, uc *usecase.TenantUseCase, log *logger.Logger) *TenantHandler {
	return &TenantHandler{resolver: resolver, uc: uc, log: log}
}

// ByDomain godoc
// @Summary      Tenant público por dominio
// @Tags         tenants
// @Produce      json
// @Param        domain  path  string  true  "dominio, dominio propio o slug"
// @Success      200  {object}  dto.SuccessResponse{data=dto.PublicTenantResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tenants/domain/{domain} [get]
func (h *TenantHandler) ByDomain(c *fiber.Ctx) error {
	t, err := h.resolver.ResolvePublic(c.UserContext(), c.Params("domain"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, toPublicTenant(t))
}

// Current godoc
// @Summary      Tenant del request
// @Description  Usuarios del tenant (o SUPERADMIN) reciben el registro completo; el resto, la proyección pública.
// @Tags         tenants
// @Produce      json
// @Param        X-Tenant-Domain  header  string  false  "dominio del tenant"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tenants/current [get]
func (h *TenantHandler) Current(c *fiber.Ctx) error {
	tc := GetTenant(c)
	p := GetPrincipal(c)
	if p == nil || tenancy.Authorize(p, tc) != nil {
		return ok(c, fiber.StatusOK, tc)
	}
	out, err := h.uc.Current(c.UserContext(), tc.ID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// UpdateSettings godoc
// @Summary      Actualizar settings del tenant (merge)
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  object  true  "claves a reemplazar"
// @Success      200  {object}  dto.SuccessResponse{data=dto.TenantResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/tenants/current/settings [put]
func (h *TenantHandler) UpdateSettings(c *fiber.Ctx) error {
	body := c.Body()
	if !json.Valid(body) {
		return badBody(c)
	}
	out, err := h.uc.UpdateSettings(c.UserContext(), GetPrincipal(c), tenantID(c), json.RawMessage(body))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar datos del tenant
// @Description  Nombre, email, dominio y dominio propio. El plan solo lo cambia el SUPERADMIN.
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateTenantRequest  true  "cambios"
// @Success      200  {object}  dto.SuccessResponse{data=dto.TenantResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tenants/current [patch]
func (h *TenantHandler) Update(c *fiber.Ctx) error {
	return h.update(c, tenantID(c))
}

// UpdateByID godoc
// @Summary      Actualizar tenant (superadmin)
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "id"
// @Param        body  body  dto.UpdateTenantRequest  true  "cambios"
// @Success      200  {object}  dto.SuccessResponse{data=dto.TenantResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/superadmin/tenants/{id} [patch]
func (h *TenantHandler) UpdateByID(c *fiber.Ctx) error {
	return h.update(c, c.Params("id"))
}

func (h *TenantHandler) update(c *fiber.Ctx, id string) error {
	var in dto.UpdateTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

func toPublicTenant(t *entity.Tenant) dto.PublicTenantResponse {
	return dto.PublicTenantResponse{
		ID:       t.ID,
		Name:     t.Name,
		Slug:     t.Slug,
		Domain:   t.Domain,
		Plan:     t.Plan,
		Settings: t.Settings,
	}
}
