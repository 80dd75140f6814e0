package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores de resolución de tenant.
var (
	ErrTenantDomainRequired = errors.New("tenant domain not provided")
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrTenantSuspended      = errors.New("tenant suspended")
	ErrLastTenant           = errors.New("no puedes eliminar el último tenant")
)

// Errores de pedidos.
var (
	ErrOrderNotFound              = errors.New("pedido no encontrado")
	ErrOrderAlreadyDelivered      = errors.New("este pedido ya fue entregado y no se puede modificar su estado")
	ErrOrderCancelled             = errors.New("este pedido está cancelado y no se puede modificar su estado")
	ErrOrderDeliveredNotDeletable = errors.New("no se puede eliminar un pedido entregado")
	ErrOrderNumberExhausted       = errors.New("se alcanzó el máximo de pedidos del día")
	ErrOrderStatusNotAllowed      = errors.New("estado de pedido no permitido")
)

// Errores del catálogo.
var (
	ErrCategoryHasDishes = errors.New("cannot delete category with associated dishes")
	ErrSubtagNameTaken   = errors.New("ya existe un subtag con ese nombre")
)
