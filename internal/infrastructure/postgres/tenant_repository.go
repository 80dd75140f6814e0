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

var _ repository.TenantRepository = (*TenantRepo)(nil)

const tenantColumns = `id, name, slug, domain, custom_domain, email, status, plan, settings, created_at, updated_at`

// TenantRepo implementación de TenantRepository (usable con pool o tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// Create persiste un tenant. Slug, dominio o dominio personalizado repetidos: domain.ErrDuplicate.
func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	settings := t.Settings
	if len(settings) == 0 {
		settings = json.RawMessage(`{}`)
	}
	query := `
		INSERT INTO tenants (id, name, slug, domain, custom_domain, email, status, plan, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Name, t.Slug, t.Domain, t.CustomDomain, t.Email, t.Status, t.Plan, []byte(settings),
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene un tenant por ID. (nil, nil) si no existe.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	row := r.q.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

// FindByDomain resuelve el tenant por dominio, dominio personalizado o slug candidato.
func (r *TenantRepo) FindByDomain(ctx context.Context, domainName, slug string, statuses []string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants
		WHERE (domain = $1 OR custom_domain = $1 OR slug = $2) AND status = ANY($3)
		ORDER BY (domain = $1 OR custom_domain = $1) DESC
		LIMIT 1`
	t, err := scanTenant(r.q.QueryRow(ctx, query, domainName, slug, statuses))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find tenant by domain: %w", err)
	}
	return t, nil
}

// ExistsSlugOrDomain indica si ya hay un tenant con ese slug o dominio.
func (r *TenantRepo) ExistsSlugOrDomain(ctx context.Context, slug, domainName string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tenants WHERE slug = $1 OR domain = $2 OR custom_domain = $2)`,
		slug, domainName,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists tenant: %w", err)
	}
	return exists, nil
}

// List lista tenants con filtros y paginación; devuelve también el total sin paginar.
func (r *TenantRepo) List(ctx context.Context, f repository.TenantFilter) ([]*entity.Tenant, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Plan != "" {
		args = append(args, f.Plan)
		where = append(where, fmt.Sprintf("plan = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, likePattern(s))
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR slug ILIKE $%d OR domain ILIKE $%d)", n, n, n))
	}
	query := `SELECT ` + tenantColumns + `, COUNT(*) OVER() FROM tenants`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Tenant
		total int
	)
	for rows.Next() {
		var t entity.Tenant
		var settings []byte
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Domain, &t.CustomDomain, &t.Email, &t.Status, &t.Plan,
			&settings, &t.CreatedAt, &t.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan tenant: %w", err)
		}
		t.Settings = settings
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list tenants: %w", err)
	}
	if len(list) == 0 && f.Offset > 0 {
		// Página fuera de rango: COUNT(*) OVER() no devuelve filas.
		if err := r.q.QueryRow(ctx, countQuery("tenants", where), args[:len(args)-2]...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count tenants: %w", err)
		}
	}
	return list, total, nil
}

// UpdateStatus cambia el estado. domain.ErrTenantNotFound si no existe.
func (r *TenantRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE tenants SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update tenant status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

// UpdateSettings reemplaza el JSON de settings (el merge lo hace la aplicación).
func (r *TenantRepo) UpdateSettings(ctx context.Context, id string, settings json.RawMessage) error {
	tag, err := r.q.Exec(ctx, `UPDATE tenants SET settings = $2, updated_at = NOW() WHERE id = $1`, id, []byte(settings))
	if err != nil {
		return fmt.Errorf("update tenant settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

// Update actualiza los datos generales del tenant.
func (r *TenantRepo) Update(ctx context.Context, t *entity.Tenant) error {
	query := `
		UPDATE tenants SET name = $2, email = $3, plan = $4, domain = $5, custom_domain = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, t.ID, t.Name, t.Email, t.Plan, t.Domain, t.CustomDomain, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

// Delete elimina el tenant; las filas dependientes caen por CASCADE.
func (r *TenantRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

// Count total de tenants (cualquier estado).
func (r *TenantRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tenants: %w", err)
	}
	return n, nil
}

// Stats agrega pedidos, ingresos y conteos de usuarios, platos y categorías del tenant.
func (r *TenantRepo) Stats(ctx context.Context, id string, monthStart time.Time) (*entity.TenantStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM orders WHERE tenant_id = $1),
			(SELECT COALESCE(SUM(total), 0) FROM orders WHERE tenant_id = $1),
			(SELECT COUNT(*) FROM orders WHERE tenant_id = $1 AND created_at >= $2),
			(SELECT COALESCE(SUM(total), 0) FROM orders WHERE tenant_id = $1 AND created_at >= $2),
			(SELECT COUNT(*) FROM users WHERE tenant_id = $1),
			(SELECT COUNT(*) FROM dishes WHERE tenant_id = $1),
			(SELECT COUNT(*) FROM categories WHERE tenant_id = $1)`
	var s entity.TenantStats
	err := r.q.QueryRow(ctx, query, id, monthStart).Scan(
		&s.TotalOrders, &s.TotalRevenue, &s.OrdersThisMonth, &s.RevenueThisMonth,
		&s.Users, &s.Dishes, &s.Categories,
	)
	if err != nil {
		return nil, fmt.Errorf("tenant stats: %w", err)
	}
	return &s, nil
}

func scanTenant(row pgx.Row) (*entity.Tenant, error) {
	var t entity.Tenant
	var settings []byte
	if err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Domain, &t.CustomDomain, &t.Email, &t.Status, &t.Plan,
		&settings, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Settings = settings
	return &t, nil
}

func countQuery(table string, where []string) string {
	q := "SELECT COUNT(*) FROM " + table
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	return q
}
