package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/application/tenancy"
	"github.com/jhoicas/menu-admin-api/internal/application/usecase"
	"github.com/jhoicas/menu-admin-api/pkg/logger"
)

// CatalogHandler categorías, platos y subtags del tenant.
type CatalogHandler struct {
	categories *usecase.CategoryUseCase
	dishes     *usecase.DishUseCase
	subtags    *usecase.SubtagUseCase
	log        *logger.Logger
}

// NewCatalogHandler construye el handler del catálogo.
func NewCatalogHandler(categories *usecase.CategoryUseCase, dishes *usecase.DishUseCase, subtags *usecase.SubtagUseCase, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{categories: categories, dishes: dishes, subtags: subtags, log: log}
}

// publicView true si el request no viene de un usuario del tenant: solo se muestran activos.
func publicView(c *fiber.Ctx) bool {
	p := GetPrincipal(c)
	return p == nil || tenancy.Authorize(p, GetTenant(c)) != nil
}

// ── Categorías ──────────────────────────────────────────────────────────────

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Param        X-Tenant-Domain  header  string  false  "dominio del tenant"
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.CategoryResponse}
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.categories.List(c.UserContext(), tenantID(c), publicView(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetCategory godoc
// @Summary      Obtener categoría
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "id"
// @Success      200  {object}  dto.SuccessResponse{data=dto.CategoryResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	out, err := h.categories.Get(c.UserContext(), tenantID(c), c.Params("id"), publicView(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetCategoryBySlug godoc
// @Summary      Obtener categoría por slug
// @Tags         categories
// @Produce      json
// @Param        X-Tenant-Domain  header  string  false  "dominio del tenant"
// @Param        slug  path  string  true  "slug"
// @Success      200  {object}  dto.SuccessResponse{data=dto.CategoryResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/slug/{slug} [get]
func (h *CatalogHandler) GetCategoryBySlug(c *fiber.Ctx) error {
	out, err := h.categories.GetBySlug(c.UserContext(), tenantID(c), c.Params("slug"), publicView(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCategoryRequest  true  "categoría"
// @Success      201  {object}  dto.SuccessResponse{data=dto.CategoryResponse}
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.categories.Create(c.UserContext(), tenantID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// UpdateCategory godoc
// @Summary      Actualizar categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "id"
// @Param        body  body  dto.UpdateCategoryRequest  true  "campos"
// @Success      200  {object}  dto.SuccessResponse{data=dto.CategoryResponse}
// @Router       /api/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.categories.Update(c.UserContext(), tenantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría
// @Tags         categories
// @Security     BearerAuth
// @Param        id  path  string  true  "id"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      409  {object}  dto.ErrorResponse  "tiene platos asociados"
// @Router       /api/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.UserContext(), tenantID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return okMessage(c, "Categoría eliminada")
}

// ReorderCategories godoc
// @Summary      Reordenar categorías
// @Tags         categories
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  dto.ReorderRequest  true  "ids y orden"
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/categories/reorder [put]
func (h *CatalogHandler) ReorderCategories(c *fiber.Ctx) error {
	var in dto.ReorderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.categories.Reorder(c.UserContext(), tenantID(c), in); err != nil {
		return writeError(c, h.log, err)
	}
	return okMessage(c, "Categorías reordenadas")
}

// ── Platos ──────────────────────────────────────────────────────────────────

// ListDishes godoc
// @Summary      Listar platos
// @Tags         dishes
// @Produce      json
// @Param        X-Tenant-Domain  header  string  false  "dominio del tenant"
// @Param        categoryId  query  string  false  "categoría"
// @Param        active      query  bool    false  "solo activos"
// @Param        featured    query  bool    false  "solo destacados"
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.DishResponse}
// @Router       /api/dishes [get]
func (h *CatalogHandler) ListDishes(c *fiber.Ctx) error {
	var in dto.DishListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	if publicView(c) {
		in.Active = true
	}
	out, err := h.dishes.List(c.UserContext(), tenantID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetDish godoc
// @Summary      Obtener plato
// @Tags         dishes
// @Produce      json
// @Param        id  path  string  true  "id"
// @Success      200  {object}  dto.SuccessResponse{data=dto.DishResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dishes/{id} [get]
func (h *CatalogHandler) GetDish(c *fiber.Ctx) error {
	out, err := h.dishes.Get(c.UserContext(), tenantID(c), c.Params("id"), publicView(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetDishBySlug godoc
// @Summary      Obtener plato por slug
// @Tags         dishes
// @Produce      json
// @Param        X-Tenant-Domain  header  string  false  "dominio del tenant"
// @Param        slug  path  string  true  "slug"
// @Success      200  {object}  dto.SuccessResponse{data=dto.DishResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dishes/slug/{slug} [get]
func (h *CatalogHandler) GetDishBySlug(c *fiber.Ctx) error {
	out, err := h.dishes.GetBySlug(c.UserContext(), tenantID(c), c.Params("slug"), publicView(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// CreateDish godoc
// @Summary      Crear plato
// @Tags         dishes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateDishRequest  true  "plato"
// @Success      201  {object}  dto.SuccessResponse{data=dto.DishResponse}
// @Router       /api/dishes [post]
func (h *CatalogHandler) CreateDish(c *fiber.Ctx) error {
	var in dto.CreateDishRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.dishes.Create(c.UserContext(), tenantID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// UpdateDish godoc
// @Summary      Actualizar plato
// @Tags         dishes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "id"
// @Param        body  body  dto.UpdateDishRequest  true  "campos"
// @Success      200  {object}  dto.SuccessResponse{data=dto.DishResponse}
// @Router       /api/dishes/{id} [put]
func (h *CatalogHandler) UpdateDish(c *fiber.Ctx) error {
	var in dto.UpdateDishRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.dishes.Update(c.UserContext(), tenantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// DeleteDish godoc
// @Summary      Eliminar plato
// @Tags         dishes
// @Security     BearerAuth
// @Param        id  path  string  true  "id"
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/dishes/{id} [delete]
func (h *CatalogHandler) DeleteDish(c *fiber.Ctx) error {
	if err := h.dishes.Delete(c.UserContext(), tenantID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return okMessage(c, "Plato eliminado")
}

// ReorderDishes godoc
// @Summary      Reordenar platos
// @Tags         dishes
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  dto.ReorderRequest  true  "ids y orden"
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/dishes/reorder [put]
func (h *CatalogHandler) ReorderDishes(c *fiber.Ctx) error {
	var in dto.ReorderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.dishes.Reorder(c.UserContext(), tenantID(c), in); err != nil {
		return writeError(c, h.log, err)
	}
	return okMessage(c, "Platos reordenados")
}

// ── Subtags ─────────────────────────────────────────────────────────────────

// ListSubtags godoc
// @Summary      Listar subtags
// @Tags         subtags
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.SubtagResponse}
// @Router       /api/subtags [get]
func (h *CatalogHandler) ListSubtags(c *fiber.Ctx) error {
	out, err := h.subtags.List(c.UserContext(), tenantID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetSubtag godoc
// @Summary      Obtener subtag
// @Tags         subtags
// @Produce      json
// @Param        id  path  string  true  "id"
// @Success      200  {object}  dto.SuccessResponse{data=dto.SubtagResponse}
// @Router       /api/subtags/{id} [get]
func (h *CatalogHandler) GetSubtag(c *fiber.Ctx) error {
	out, err := h.subtags.Get(c.UserContext(), tenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// CreateSubtag godoc
// @Summary      Crear subtag
// @Tags         subtags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SubtagRequest  true  "nombre"
// @Success      201  {object}  dto.SuccessResponse{data=dto.SubtagResponse}
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/subtags [post]
func (h *CatalogHandler) CreateSubtag(c *fiber.Ctx) error {
	var in dto.SubtagRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.subtags.Create(c.UserContext(), tenantID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// UpdateSubtag godoc
// @Summary      Renombrar subtag
// @Tags         subtags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "id"
// @Param        body  body  dto.SubtagRequest  true  "nombre"
// @Success      200  {object}  dto.SuccessResponse{data=dto.SubtagResponse}
// @Router       /api/subtags/{id} [put]
func (h *CatalogHandler) UpdateSubtag(c *fiber.Ctx) error {
	var in dto.SubtagRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.subtags.Update(c.UserContext(), tenantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// DeleteSubtag godoc
// @Summary      Eliminar subtag
// @Description  También lo quita de los platos que lo referencian.
// @Tags         subtags
// @Security     BearerAuth
// @Param        id  path  string  true  "id"
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/subtags/{id} [delete]
func (h *CatalogHandler) DeleteSubtag(c *fiber.Ctx) error {
	if err := h.subtags.Delete(c.UserContext(), tenantID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return okMessage(c, "Subtag eliminado")
}
