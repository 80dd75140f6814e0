package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/pkg/logger"
)

// httpError traducción de un error de dominio a respuesta HTTP.
type httpError struct {
	status  int
	label   string
	message string // vacío: se usa err.Error()
}

// Orden relevante: los sentinels específicos antes que los genéricos.
var errorTable = []struct {
	err error
	out httpError
}{
	{domain.ErrTenantDomainRequired, httpError{fiber.StatusBadRequest, "Tenant domain not provided", "El header x-tenant-domain es requerido"}},
	{domain.ErrTenantNotFound, httpError{fiber.StatusNotFound, "Tenant not found", "No se encontró un tenant para este dominio"}},
	{domain.ErrTenantSuspended, httpError{fiber.StatusForbidden, "Tenant suspended", "Este tenant ha sido suspendido temporalmente"}},
	{domain.ErrOrderStatusNotAllowed, httpError{fiber.StatusBadRequest, "Invalid status", ""}},
	{domain.ErrInvalidInput, httpError{fiber.StatusBadRequest, "Validation error", ""}},
	{domain.ErrInvalidCredentials, httpError{fiber.StatusUnauthorized, "Invalid credentials", ""}},
	{domain.ErrUnauthorized, httpError{fiber.StatusUnauthorized, "Unauthorized", ""}},
	{domain.ErrForbidden, httpError{fiber.StatusForbidden, "Forbidden", ""}},
	{domain.ErrOrderNotFound, httpError{fiber.StatusNotFound, "Not found", ""}},
	{domain.ErrUserNotFound, httpError{fiber.StatusNotFound, "Not found", ""}},
	{domain.ErrNotFound, httpError{fiber.StatusNotFound, "Not found", ""}},
	{domain.ErrOrderAlreadyDelivered, httpError{fiber.StatusConflict, "Conflict", ""}},
	{domain.ErrOrderCancelled, httpError{fiber.StatusConflict, "Conflict", ""}},
	{domain.ErrOrderDeliveredNotDeletable, httpError{fiber.StatusConflict, "Conflict", ""}},
	{domain.ErrOrderNumberExhausted, httpError{fiber.StatusConflict, "Conflict", ""}},
	{domain.ErrCategoryHasDishes, httpError{fiber.StatusConflict, "Conflict", "No se puede eliminar una categoría con platos asociados"}},
	{domain.ErrSubtagNameTaken, httpError{fiber.StatusConflict, "Conflict", ""}},
	{domain.ErrLastTenant, httpError{fiber.StatusConflict, "Conflict", ""}},
	{domain.ErrEmailAlreadyExists, httpError{fiber.StatusConflict, "Conflict", ""}},
	{domain.ErrDuplicate, httpError{fiber.StatusConflict, "Duplicate", "Ya existe un recurso con esos datos"}},
	{domain.ErrConflict, httpError{fiber.StatusConflict, "Conflict", ""}},
}

// writeError responde {success:false, error, message}. Los errores no mapeados son 500 y se registran.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			msg := e.out.message
			if msg == "" {
				msg = err.Error()
			}
			return fail(c, e.out.status, e.out.label, msg)
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fail(c, fe.Code, utils.StatusMessage(fe.Code), fe.Message)
	}
	if log != nil {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", requestID(c)).
			Msg("error interno")
	}
	return fail(c, fiber.StatusInternalServerError, "Internal server error", "Error interno del servidor")
}

// fail escribe un ErrorResponse con el status dado.
func fail(c *fiber.Ctx, status int, label, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Error: label, Message: message})
}

// ok envuelve data en SuccessResponse.
func ok(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(dto.SuccessResponse{Success: true, Data: data})
}

// okMessage SuccessResponse sin data (borrados).
func okMessage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(dto.SuccessResponse{Success: true, Message: message})
}

// badBody cuerpo JSON ilegible.
func badBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "Validation error", "cuerpo inválido")
}

// ErrorHandler manejador global de Fiber (rutas inexistentes, panics recuperados, etc.).
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return writeError(c, log, err)
	}
}
