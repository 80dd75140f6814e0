package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, tenant_id, order_number, items, customer, delivery, payment, subtotal, total, status, notes, created_at, updated_at`

// OrderRepo implementación de OrderRepository. Items, cliente, entrega y pago viven en columnas JSONB.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta el pedido. Colisión de (order_number, tenant_id): domain.ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}
	delivery, err := json.Marshal(o.Delivery)
	if err != nil {
		return fmt.Errorf("marshal delivery: %w", err)
	}
	payment, err := json.Marshal(o.Payment)
	if err != nil {
		return fmt.Errorf("marshal payment: %w", err)
	}
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(ctx, query,
		o.ID, o.TenantID, o.OrderNumber, items, customer, delivery, payment,
		o.Subtotal, o.Total, string(o.Status), nullIfEmpty(o.Notes), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID (sin filtrar por tenant; el aislamiento se verifica en la aplicación).
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// List pedidos filtrados, más recientes primero, con el total sin paginar.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.TenantID != "" {
		add("tenant_id = $%d", f.TenantID)
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.DateFrom != nil {
		add("created_at >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("created_at <= $%d", *f.DateTo)
	}
	if f.CustomerPhone != "" {
		add("customer->>'phone' = $%d", f.CustomerPhone)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, likePattern(s))
		n := len(args)
		where = append(where, fmt.Sprintf("(order_number ILIKE $%d OR customer->>'name' ILIKE $%d)", n, n))
	}

	var total int
	if err := r.q.QueryRow(ctx, countQuery("orders", where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset())

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return list, total, nil
}

// LastOrderNumber mayor número del día para el tenant. "" si aún no hay pedidos.
func (r *OrderRepo) LastOrderNumber(ctx context.Context, tenantID, prefix string, dayStart, dayEnd time.Time) (string, error) {
	query := `
		SELECT COALESCE(MAX(order_number), '')
		FROM orders
		WHERE tenant_id = $1 AND order_number LIKE $2 || '%' AND created_at >= $3 AND created_at < $4`
	var last string
	if err := r.q.QueryRow(ctx, query, tenantID, prefix, dayStart, dayEnd).Scan(&last); err != nil {
		return "", fmt.Errorf("last order number: %w", err)
	}
	return last, nil
}

// UpdateStatus persiste el nuevo estado. domain.ErrOrderNotFound si no existe.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// Delete elimina el pedido. domain.ErrOrderNotFound si no existe.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// Stats contadores del tenant e ingresos del día [dayStart, dayEnd), todos los estados.
func (r *OrderRepo) Stats(ctx context.Context, tenantID string, dayStart, dayEnd time.Time) (*entity.OrderStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PREPARING'),
			COUNT(*) FILTER (WHERE status = 'DELIVERED'),
			COUNT(*) FILTER (WHERE created_at >= $2 AND created_at < $3),
			COALESCE(SUM(total) FILTER (WHERE created_at >= $2 AND created_at < $3), 0)
		FROM orders
		WHERE tenant_id = $1`
	var s entity.OrderStats
	err := r.q.QueryRow(ctx, query, tenantID, dayStart, dayEnd).Scan(
		&s.Total, &s.Preparing, &s.Delivered, &s.TodayTotal, &s.TodayRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}
	return &s, nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o                                  entity.Order
		items, customer, delivery, payment []byte
		status                             string
		notes                              *string
	)
	if err := row.Scan(&o.ID, &o.TenantID, &o.OrderNumber, &items, &customer, &delivery, &payment,
		&o.Subtotal, &o.Total, &status, &notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	if err := json.Unmarshal(delivery, &o.Delivery); err != nil {
		return nil, fmt.Errorf("decode delivery: %w", err)
	}
	if err := json.Unmarshal(payment, &o.Payment); err != nil {
		return nil, fmt.Errorf("decode payment: %w", err)
	}
	o.Status = entity.OrderStatus(status)
	o.Notes = derefString(notes)
	return &o, nil
}
