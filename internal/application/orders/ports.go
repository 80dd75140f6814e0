package orders

import "github.com/jhoicas/menu-admin-api/internal/domain/entity"

// Metrics contadores de negocio de pedidos.
type Metrics interface {
	OrderCreated(tenantID string)
	OrderDelivered(tenantID string)
	OrderNumberRetry()
}

// TicketRenderer genera el ticket PDF de un pedido.
type TicketRenderer interface {
	RenderTicket(tenant *entity.TenantContext, order *entity.Order) ([]byte, error)
}

type nopMetrics struct{}

func (nopMetrics) OrderCreated(string)   {}
func (nopMetrics) OrderDelivered(string) {}
func (nopMetrics) OrderNumberRetry()     {}
