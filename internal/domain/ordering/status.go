package ordering

import (
	"fmt"

	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
)

// ParseTarget normaliza el estado solicitado desde la API pública.
// Solo se aceptan PREPARING y DELIVERED.
func ParseTarget(requested string) (entity.OrderStatus, error) {
	s := entity.NormalizeStatus(requested)
	switch s {
	case entity.OrderStatusPreparing, entity.OrderStatusDelivered:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q (permitidos: PREPARING, DELIVERED)", domain.ErrOrderStatusNotAllowed, requested)
}

// Transition decide si el pedido pasa de current a requested.
// changed=false sin error significa no-op: el pedido ya está en ese estado.
// DELIVERED y CANCELLED son terminales.
func Transition(current, requested entity.OrderStatus) (changed bool, err error) {
	cur := entity.NormalizeStatus(string(current))
	req := entity.NormalizeStatus(string(requested))
	if cur == req {
		return false, nil
	}
	switch cur {
	case entity.OrderStatusDelivered:
		return false, domain.ErrOrderAlreadyDelivered
	case entity.OrderStatusCancelled:
		return false, domain.ErrOrderCancelled
	}
	return true, nil
}

// CanDelete un pedido entregado no se elimina.
func CanDelete(status entity.OrderStatus) error {
	if entity.NormalizeStatus(string(status)) == entity.OrderStatusDelivered {
		return domain.ErrOrderDeliveredNotDeletable
	}
	return nil
}
