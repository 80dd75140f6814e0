package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
)

var _ repository.LogRepository = (*LogRepo)(nil)

const logColumns = `id, level, action, message, details, user_id, user_email, tenant_id, tenant_name, ip_address, user_agent, created_at`

// LogRepo implementación append-only de LogRepository.
type LogRepo struct {
	q Querier
}

// NewLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLogRepository(q Querier) *LogRepo {
	return &LogRepo{q: q}
}

// Create inserta una entrada de auditoría.
func (r *LogRepo) Create(ctx context.Context, l *entity.Log) error {
	var details []byte
	if len(l.Details) > 0 {
		details = l.Details
	}
	query := `INSERT INTO logs (` + logColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.Level, l.Action, l.Message, details, l.UserID, l.UserEmail, l.TenantID, l.TenantName,
		l.IPAddress, l.UserAgent, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}

// List logs filtrados, más recientes primero, con el total sin paginar.
func (r *LogRepo) List(ctx context.Context, f repository.LogFilter) ([]*entity.Log, int, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Level != "" {
		add("level = $%d", f.Level)
	}
	if f.Action != "" {
		add("action = $%d", f.Action)
	}
	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.TenantID != "" {
		add("tenant_id = $%d", f.TenantID)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}

	var total int
	if err := r.q.QueryRow(ctx, countQuery("logs", where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count logs: %w", err)
	}

	query := `SELECT ` + logColumns + ` FROM logs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Stats totales, errores (error + critical), advertencias y entradas desde since.
func (r *LogRepo) Stats(ctx context.Context, since time.Time) (*repository.LogStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE level IN ('error', 'critical')),
			COUNT(*) FILTER (WHERE level = 'warning'),
			COUNT(*) FILTER (WHERE created_at >= $1)
		FROM logs`
	var s repository.LogStats
	if err := r.q.QueryRow(ctx, query, since).Scan(&s.Total, &s.Errors, &s.Warnings, &s.Last24h); err != nil {
		return nil, fmt.Errorf("log stats: %w", err)
	}
	return &s, nil
}

// Since entradas desde since, más recientes primero.
func (r *LogRepo) Since(ctx context.Context, since time.Time, limit int) ([]*entity.Log, error) {
	return r.query(ctx,
		`SELECT `+logColumns+` FROM logs WHERE created_at >= $1 ORDER BY created_at DESC LIMIT $2`,
		since, limit,
	)
}

func (r *LogRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Log, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.Log
	for rows.Next() {
		var l entity.Log
		var details []byte
		if err := rows.Scan(&l.ID, &l.Level, &l.Action, &l.Message, &details, &l.UserID, &l.UserEmail,
			&l.TenantID, &l.TenantName, &l.IPAddress, &l.UserAgent, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		l.Details = details
		list = append(list, &l)
	}
	return list, rows.Err()
}
