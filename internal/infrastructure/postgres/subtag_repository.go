package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
)

var _ repository.SubtagRepository = (*SubtagRepo)(nil)

// SubtagRepo implementación de SubtagRepository (usable con pool o tx).
type SubtagRepo struct {
	q Querier
}

// NewSubtagRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubtagRepository(q Querier) *SubtagRepo {
	return &SubtagRepo{q: q}
}

// Create persiste el subtag. El índice único sobre lower(name) produce domain.ErrDuplicate.
func (r *SubtagRepo) Create(ctx context.Context, s *entity.Subtag) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO subtags (id, tenant_id, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.TenantID, s.Name, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subtag: %w", err)
	}
	return nil
}

// GetByID obtiene el subtag del tenant.
func (r *SubtagRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Subtag, error) {
	return r.findOne(ctx, `tenant_id = $1 AND id = $2`, tenantID, id)
}

// GetByName busca sin distinguir mayúsculas.
func (r *SubtagRepo) GetByName(ctx context.Context, tenantID, name string) (*entity.Subtag, error) {
	return r.findOne(ctx, `tenant_id = $1 AND lower(name) = lower($2)`, tenantID, name)
}

// List subtags del tenant por nombre.
func (r *SubtagRepo) List(ctx context.Context, tenantID string) ([]*entity.Subtag, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, tenant_id, name, created_at, updated_at FROM subtags WHERE tenant_id = $1 ORDER BY name ASC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list subtags: %w", err)
	}
	defer rows.Close()

	var list []*entity.Subtag
	for rows.Next() {
		var s entity.Subtag
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subtag: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update renombra el subtag.
func (r *SubtagRepo) Update(ctx context.Context, s *entity.Subtag) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE subtags SET name = $3, updated_at = $4 WHERE tenant_id = $1 AND id = $2`,
		s.TenantID, s.ID, s.Name, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update subtag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el subtag (las referencias en platos se limpian aparte, en la misma tx).
func (r *SubtagRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM subtags WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete subtag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByIDs cuántos de ids existen para el tenant.
func (r *SubtagRepo) CountByIDs(ctx context.Context, tenantID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM subtags WHERE tenant_id = $1 AND id::text = ANY($2)`, tenantID, ids,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count subtags: %w", err)
	}
	return n, nil
}

func (r *SubtagRepo) findOne(ctx context.Context, cond string, args ...any) (*entity.Subtag, error) {
	var s entity.Subtag
	err := r.q.QueryRow(ctx,
		`SELECT id, tenant_id, name, created_at, updated_at FROM subtags WHERE `+cond, args...,
	).Scan(&s.ID, &s.TenantID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subtag: %w", err)
	}
	return &s, nil
}
