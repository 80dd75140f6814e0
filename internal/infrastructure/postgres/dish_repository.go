package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
)

var _ repository.DishRepository = (*DishRepo)(nil)

const dishColumns = `id, tenant_id, category_id, name, slug, description, price, image, is_active, is_featured,
	allergens, tags, subtag_ids, preparation_time, servings, "order", created_at, updated_at`

// DishRepo implementación de DishRepository. Alérgenos, tags y subtags se guardan como TEXT[].
type DishRepo struct {
	q Querier
}

// NewDishRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDishRepository(q Querier) *DishRepo {
	return &DishRepo{q: q}
}

// Create persiste un plato.
func (r *DishRepo) Create(ctx context.Context, d *entity.Dish) error {
	query := `INSERT INTO dishes (` + dishColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.TenantID, d.CategoryID, d.Name, d.Slug, nullIfEmpty(d.Description), d.Price, nullIfEmpty(d.Image),
		d.IsActive, d.IsFeatured, emptyIfNil(d.Allergens), emptyIfNil(d.Tags), emptyIfNil(d.SubtagIDs),
		d.PreparationTime, d.Servings, d.Order, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert dish: %w", err)
	}
	return nil
}

// GetByID obtiene el plato del tenant. (nil, nil) si no existe.
func (r *DishRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Dish, error) {
	d, err := scanDish(r.q.QueryRow(ctx,
		`SELECT `+dishColumns+` FROM dishes WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dish: %w", err)
	}
	return d, nil
}

// GetBySlug plato del tenant por slug. (nil, nil) si no existe.
func (r *DishRepo) GetBySlug(ctx context.Context, tenantID, slug string) (*entity.Dish, error) {
	d, err := scanDish(r.q.QueryRow(ctx,
		`SELECT `+dishColumns+` FROM dishes WHERE tenant_id = $1 AND slug = $2`, tenantID, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dish by slug: %w", err)
	}
	return d, nil
}

// List platos del tenant por orden de despliegue.
func (r *DishRepo) List(ctx context.Context, f repository.DishFilter) ([]*entity.Dish, error) {
	where := []string{"tenant_id = $1"}
	args := []any{f.TenantID}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.ActiveOnly {
		where = append(where, "is_active")
	}
	if f.FeaturedOnly {
		where = append(where, "is_featured")
	}
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY "order" ASC, name ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Dish
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dish: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Update actualiza todos los campos editables.
func (r *DishRepo) Update(ctx context.Context, d *entity.Dish) error {
	query := `
		UPDATE dishes SET category_id = $3, name = $4, slug = $5, description = $6, price = $7, image = $8,
			is_active = $9, is_featured = $10, allergens = $11, tags = $12, subtag_ids = $13,
			preparation_time = $14, servings = $15, "order" = $16, updated_at = $17
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		d.TenantID, d.ID, d.CategoryID, d.Name, d.Slug, nullIfEmpty(d.Description), d.Price, nullIfEmpty(d.Image),
		d.IsActive, d.IsFeatured, emptyIfNil(d.Allergens), emptyIfNil(d.Tags), emptyIfNil(d.SubtagIDs),
		d.PreparationTime, d.Servings, d.Order, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update dish: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el plato.
func (r *DishRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM dishes WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete dish: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateOrder fija la posición de despliegue.
func (r *DishRepo) UpdateOrder(ctx context.Context, tenantID, id string, order int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE dishes SET "order" = $3, updated_at = NOW() WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, order,
	)
	if err != nil {
		return fmt.Errorf("update dish order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RemoveSubtag quita el subtag de todos los platos del tenant que lo referencian.
func (r *DishRepo) RemoveSubtag(ctx context.Context, tenantID, subtagID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE dishes SET subtag_ids = array_remove(subtag_ids, $2), updated_at = NOW()
		WHERE tenant_id = $1 AND $2 = ANY(subtag_ids)`,
		tenantID, subtagID,
	)
	if err != nil {
		return 0, fmt.Errorf("remove subtag from dishes: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanDish(row pgx.Row) (*entity.Dish, error) {
	var d entity.Dish
	var description, image *string
	if err := row.Scan(&d.ID, &d.TenantID, &d.CategoryID, &d.Name, &d.Slug, &description, &d.Price, &image,
		&d.IsActive, &d.IsFeatured, &d.Allergens, &d.Tags, &d.SubtagIDs,
		&d.PreparationTime, &d.Servings, &d.Order, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.Description = derefString(description)
	d.Image = derefString(image)
	return &d, nil
}
