package http

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/application/orders"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/pkg/logger"
)

// OrderHandler endpoints de pedidos.
type OrderHandler struct {
	uc  *orders.OrderUseCase
	log *logger.Logger
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(uc *orders.OrderUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Numeración diaria por tenant (YYMMDD0001). El pedido nace en PREPARING.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Domain  header  string  true  "dominio del tenant"
// @Param        body  body  dto.CreateOrderRequest  true  "pedido"
// @Success      201  {object}  dto.SuccessResponse{data=dto.OrderResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/public [post]
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetTenant(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        page           query  int     false  "página (1)"
// @Param        limit          query  int     false  "tamaño (50, máx 100)"
// @Param        status         query  string  false  "estado"
// @Param        dateFrom       query  string  false  "YYYY-MM-DD"
// @Param        dateTo         query  string  false  "YYYY-MM-DD"
// @Param        customerPhone  query  string  false  "teléfono exacto"
// @Param        search         query  string  false  "número o nombre de cliente"
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.OrderResponse}
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var in dto.OrderListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c), GetTenant(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Data: out.Items, Pagination: &out.Pagination})
}

// ByCustomer godoc
// @Summary      Pedidos de un cliente
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        phone  path  string  true  "+51XXXXXXXXX"
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.OrderResponse}
// @Router       /api/orders/customer/{phone} [get]
func (h *OrderHandler) ByCustomer(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	// Fiber no decodifica los parámetros de ruta: "+" suele llegar como %2B.
	phone, err := url.PathUnescape(c.Params("phone"))
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("%w: teléfono mal codificado", domain.ErrInvalidInput))
	}
	out, err := h.uc.ListByPhone(c.UserContext(), GetTenant(c), phone, page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Data: out.Items, Pagination: &out.Pagination})
}

// Stats godoc
// @Summary      Estadísticas de pedidos
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SuccessResponse{data=dto.OrderStatsResponse}
// @Router       /api/orders/stats [get]
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetTenant(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Get godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id del pedido"
// @Success      200  {object}  dto.SuccessResponse{data=dto.OrderResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), tenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Ticket godoc
// @Summary      Ticket PDF del pedido
// @Tags         orders
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "id del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/ticket [get]
func (h *OrderHandler) Ticket(c *fiber.Ctx) error {
	pdf, number, err := h.uc.Ticket(c.UserContext(), GetTenant(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="pedido-%s.pdf"`, number))
	return c.Send(pdf)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  Solo PREPARING o DELIVERED. Un pedido entregado o cancelado no cambia.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "id del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "estado"
// @Success      200  {object}  dto.SuccessResponse{data=dto.OrderResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetPrincipal(c), GetTenant(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar pedido
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id del pedido"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetPrincipal(c), GetTenant(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return okMessage(c, "Pedido eliminado")
}
