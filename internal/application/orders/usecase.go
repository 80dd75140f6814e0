package orders

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/menu-admin-api/internal/application/audit"
	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/ordering"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
	"github.com/jhoicas/menu-admin-api/pkg/logger"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// Config parámetros de numeración.
type Config struct {
	Location   *time.Location // zona horaria del negocio (prefijo YYMMDD y "hoy")
	MaxRetries int            // intentos de inserción ante colisión de número
	RetryBase  time.Duration
}

// OrderUseCase casos de uso de pedidos.
type OrderUseCase struct {
	repo    repository.OrderRepository
	audit   audit.Recorder
	metrics Metrics
	tickets TicketRenderer
	log     *logger.Logger
	cfg     Config
	now     func() time.Time
}

// NewOrderUseCase construye el caso de uso. metrics y tickets pueden ser nil.
func NewOrderUseCase(repo repository.OrderRepository, rec audit.Recorder, metrics Metrics, tickets TicketRenderer, log *logger.Logger, cfg Config) *OrderUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	return &OrderUseCase{
		repo:    repo,
		audit:   rec,
		metrics: metrics,
		tickets: tickets,
		log:     log.Component("orders"),
		cfg:     cfg,
		now:     time.Now,
	}
}

// Create crea un pedido en PREPARING con el siguiente número del día.
// Ante colisión del número (unique order_number, tenant_id) reintenta hasta MaxRetries.
func (uc *OrderUseCase) Create(ctx context.Context, tenant *entity.TenantContext, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if tenant == nil {
		return nil, domain.ErrTenantDomainRequired
	}
	items, err := normalizeItems(in.Items)
	if err != nil {
		return nil, err
	}
	order := &entity.Order{
		TenantID: tenant.ID,
		Items:    items,
		Customer: entity.OrderCustomer{
			Name:            in.Customer.Name,
			Phone:           in.Customer.Phone,
			DocumentType:    in.Customer.DocumentType,
			DocumentNumber:  in.Customer.DocumentNumber,
			BusinessName:    in.Customer.BusinessName,
			BusinessAddress: in.Customer.BusinessAddress,
		},
		Delivery: entity.OrderDelivery{Type: in.Delivery.Type, Address: strings.TrimSpace(in.Delivery.Address)},
		Payment:  entity.OrderPayment{Method: in.Payment.Method},
		Subtotal: in.Subtotal,
		Total:    in.Total,
		Status:   entity.OrderStatusPreparing,
		Notes:    strings.TrimSpace(in.Notes),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= uc.cfg.MaxRetries; attempt++ {
		now := uc.now()
		number, err := uc.nextNumber(ctx, tenant.ID, now)
		if err != nil {
			return nil, err
		}
		order.ID = uuid.New().String()
		order.OrderNumber = number
		order.CreatedAt = now
		order.UpdatedAt = now

		err = uc.repo.Create(ctx, order)
		if err == nil {
			uc.metrics.OrderCreated(tenant.ID)
			return toOrderResponse(order), nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		uc.metrics.OrderNumberRetry()
		uc.log.Warn().Str("tenant_id", tenant.ID).Str("order_number", number).Int("attempt", attempt).Msg("colisión de número de pedido, reintentando")
		if attempt < uc.cfg.MaxRetries {
			if err := uc.backoff(ctx, attempt); err != nil {
				return nil, err
			}
		}
	}
	return nil, fmt.Errorf("%w: no se pudo asignar número de pedido tras %d intentos", domain.ErrConflict, uc.cfg.MaxRetries)
}

func (uc *OrderUseCase) nextNumber(ctx context.Context, tenantID string, now time.Time) (string, error) {
	prefix := ordering.DatePrefix(now, uc.cfg.Location)
	start, end := ordering.DayBounds(now, uc.cfg.Location)
	last, err := uc.repo.LastOrderNumber(ctx, tenantID, prefix, start, end)
	if err != nil {
		return "", err
	}
	return ordering.NextNumber(prefix, last)
}

func (uc *OrderUseCase) backoff(ctx context.Context, attempt int) error {
	if uc.cfg.RetryBase <= 0 {
		return ctx.Err()
	}
	d := uc.cfg.RetryBase*time.Duration(attempt) + rand.N(uc.cfg.RetryBase)
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// List lista pedidos paginados. Sin tenant solo puede listar SUPERADMIN (todos los tenants).
func (uc *OrderUseCase) List(ctx context.Context, principal *entity.Principal, tenant *entity.TenantContext, in dto.OrderListRequest) (*dto.OrderListResponse, error) {
	if tenant == nil && !principal.IsSuperAdmin() {
		return nil, domain.ErrUnauthorized
	}
	in.Normalize(defaultPageLimit, maxPageLimit)
	f := repository.OrderFilter{
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		Search:        strings.TrimSpace(in.Search),
		Page:          in.Page,
		Limit:         in.Limit,
	}
	if tenant != nil {
		f.TenantID = tenant.ID
	}
	if in.Status != "" {
		s := entity.NormalizeStatus(in.Status)
		if !s.IsKnown() {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
		}
		f.Status = s
	}
	var err error
	if f.DateFrom, err = uc.parseDate(in.DateFrom, false); err != nil {
		return nil, err
	}
	if f.DateTo, err = uc.parseDate(in.DateTo, true); err != nil {
		return nil, err
	}

	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{Items: items, Pagination: *dto.NewPagination(f.Page, f.Limit, total)}, nil
}

// ListByPhone pedidos de un cliente dentro del tenant.
func (uc *OrderUseCase) ListByPhone(ctx context.Context, tenant *entity.TenantContext, phone string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if tenant == nil {
		return nil, domain.ErrTenantDomainRequired
	}
	phone = strings.TrimSpace(phone)
	if !entity.IsValidPhone(phone) {
		return nil, fmt.Errorf("%w: el teléfono debe tener el formato +51XXXXXXXXX", domain.ErrInvalidInput)
	}
	return uc.List(ctx, nil, tenant, dto.OrderListRequest{PageRequest: page, CustomerPhone: phone})
}

// parseDate acepta YYYY-MM-DD (día en la zona del negocio) o RFC3339.
// Para el límite superior, una fecha sin hora cubre el día completo.
func (uc *OrderUseCase) parseDate(s string, upper bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, uc.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q", domain.ErrInvalidInput, s)
	}
	if upper {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

// Get obtiene un pedido del tenant. tenantID vacío (SUPERADMIN) no restringe.
func (uc *OrderUseCase) Get(ctx context.Context, tenantID, id string) (*dto.OrderResponse, error) {
	o, err := uc.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

func (uc *OrderUseCase) find(ctx context.Context, tenantID, id string) (*entity.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrOrderNotFound
	}
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || (tenantID != "" && o.TenantID != tenantID) {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// UpdateStatus aplica la máquina de estados. Mismo estado: devuelve el pedido sin escribir.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, actor *entity.Principal, tenant *entity.TenantContext, id, status string) (*dto.OrderResponse, error) {
	target, err := ordering.ParseTarget(status)
	if err != nil {
		return nil, err
	}
	o, err := uc.find(ctx, tenantIDOf(tenant), id)
	if err != nil {
		return nil, err
	}
	changed, err := ordering.Transition(o.Status, target)
	if err != nil {
		return nil, err
	}
	if !changed {
		return toOrderResponse(o), nil
	}
	if err := uc.repo.UpdateStatus(ctx, o.ID, target); err != nil {
		return nil, err
	}
	o.Status = target
	o.UpdatedAt = uc.now()

	if target == entity.OrderStatusDelivered {
		uc.delivered(ctx, actor, tenant, o)
	}
	return toOrderResponse(o), nil
}

// delivered emite el evento order_delivered: log estructurado, auditoría y métrica.
func (uc *OrderUseCase) delivered(ctx context.Context, actor *entity.Principal, tenant *entity.TenantContext, o *entity.Order) {
	uc.metrics.OrderDelivered(o.TenantID)
	uc.log.Info().
		Str("event", entity.LogActionOrderDelivered).
		Str("tenant_id", o.TenantID).
		Str("order_number", o.OrderNumber).
		Str("customer_name", o.Customer.Name).
		Str("customer_phone", o.Customer.Phone).
		Str("delivery_type", o.Delivery.Type).
		Msg("pedido entregado")
	if uc.audit == nil {
		return
	}
	e := audit.Entry{
		Level:   entity.LogLevelInfo,
		Action:  entity.LogActionOrderDelivered,
		Message: fmt.Sprintf("Pedido %s entregado", o.OrderNumber),
		Details: map[string]interface{}{
			"orderId":       o.ID,
			"orderNumber":   o.OrderNumber,
			"customerName":  o.Customer.Name,
			"customerPhone": o.Customer.Phone,
			"deliveryType":  o.Delivery.Type,
			"total":         o.Total.String(),
		},
		TenantID: o.TenantID,
	}
	if tenant != nil {
		e.TenantName = tenant.Name
	}
	if actor != nil {
		e.UserID = actor.ID
		e.UserEmail = actor.Email
	}
	uc.audit.Record(ctx, e)
}

// Delete elimina un pedido que no esté entregado.
func (uc *OrderUseCase) Delete(ctx context.Context, actor *entity.Principal, tenant *entity.TenantContext, id string) error {
	o, err := uc.find(ctx, tenantIDOf(tenant), id)
	if err != nil {
		return err
	}
	if err := ordering.CanDelete(o.Status); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, o.ID); err != nil {
		return err
	}
	if uc.audit != nil {
		e := audit.Entry{
			Level:    entity.LogLevelWarning,
			Action:   entity.LogActionOrderDeleted,
			Message:  fmt.Sprintf("Pedido %s eliminado", o.OrderNumber),
			Details:  map[string]interface{}{"orderId": o.ID, "orderNumber": o.OrderNumber, "status": string(o.Status)},
			TenantID: o.TenantID,
		}
		if actor != nil {
			e.UserID, e.UserEmail = actor.ID, actor.Email
		}
		uc.audit.Record(ctx, e)
	}
	return nil
}

// Stats agregados del tenant; "hoy" según la zona del negocio.
func (uc *OrderUseCase) Stats(ctx context.Context, tenant *entity.TenantContext) (*dto.OrderStatsResponse, error) {
	if tenant == nil {
		return nil, domain.ErrTenantDomainRequired
	}
	start, end := ordering.DayBounds(uc.now(), uc.cfg.Location)
	st, err := uc.repo.Stats(ctx, tenant.ID, start, end)
	if err != nil {
		return nil, err
	}
	return &dto.OrderStatsResponse{
		Total:        st.Total,
		Preparing:    st.Preparing,
		Delivered:    st.Delivered,
		TodayTotal:   st.TodayTotal,
		TodayRevenue: st.TodayRevenue,
	}, nil
}

// Ticket genera el PDF del pedido.
func (uc *OrderUseCase) Ticket(ctx context.Context, tenant *entity.TenantContext, id string) ([]byte, string, error) {
	if uc.tickets == nil {
		return nil, "", fmt.Errorf("tickets no configurados")
	}
	o, err := uc.find(ctx, tenantIDOf(tenant), id)
	if err != nil {
		return nil, "", err
	}
	if tenant == nil {
		tenant = &entity.TenantContext{ID: o.TenantID}
	}
	pdf, err := uc.tickets.RenderTicket(tenant, o)
	if err != nil {
		return nil, "", fmt.Errorf("render ticket: %w", err)
	}
	return pdf, o.OrderNumber, nil
}

func tenantIDOf(t *entity.TenantContext) string {
	if t == nil {
		return ""
	}
	return t.ID
}
