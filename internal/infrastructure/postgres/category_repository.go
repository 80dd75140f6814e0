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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categorySelect = `
	SELECT c.id, c.tenant_id, c.name, c.slug, c.description, c.image, c."order", c.is_active,
		(SELECT COUNT(*) FROM dishes d WHERE d.category_id = c.id),
		c.created_at, c.updated_at
	FROM categories c`

// CategoryRepo implementación de CategoryRepository (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría. Slug repetido en el tenant: domain.ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, tenant_id, name, slug, description, image, "order", is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.Name, c.Slug, nullIfEmpty(c.Description), nullIfEmpty(c.Image), c.Order, c.IsActive,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene la categoría del tenant. (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, categorySelect+` WHERE c.tenant_id = $1 AND c.id = $2`, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// GetBySlug categoría del tenant por slug. (nil, nil) si no existe.
func (r *CategoryRepo) GetBySlug(ctx context.Context, tenantID, slug string) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, categorySelect+` WHERE c.tenant_id = $1 AND c.slug = $2`, tenantID, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by slug: %w", err)
	}
	return c, nil
}

// List categorías del tenant por orden de despliegue.
func (r *CategoryRepo) List(ctx context.Context, tenantID string, activeOnly bool) ([]*entity.Category, error) {
	query := categorySelect + ` WHERE c.tenant_id = $1`
	if activeOnly {
		query += ` AND c.is_active`
	}
	query += ` ORDER BY c."order" ASC, c.name ASC`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories SET name = $3, slug = $4, description = $5, image = $6, "order" = $7, is_active = $8, updated_at = $9
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		c.TenantID, c.ID, c.Name, c.Slug, nullIfEmpty(c.Description), nullIfEmpty(c.Image), c.Order, c.IsActive, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la categoría. Con platos asociados la FK lo impide: domain.ErrCategoryHasDishes.
func (r *CategoryRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCategoryHasDishes
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountDishes cuántos platos pertenecen a la categoría.
func (r *CategoryRepo) CountDishes(ctx context.Context, tenantID, id string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM dishes WHERE tenant_id = $1 AND category_id = $2`, tenantID, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count dishes: %w", err)
	}
	return n, nil
}

// UpdateOrder fija la posición de despliegue.
func (r *CategoryRepo) UpdateOrder(ctx context.Context, tenantID, id string, order int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE categories SET "order" = $3, updated_at = NOW() WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, order,
	)
	if err != nil {
		return fmt.Errorf("update category order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	var description, image *string
	if err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Slug, &description, &image, &c.Order, &c.IsActive,
		&c.DishCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Description = derefString(description)
	c.Image = derefString(image)
	return &c, nil
}
