package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
)

// DishUseCase casos de uso CRUD para platos.
type DishUseCase struct {
	repo       repository.DishRepository
	categories repository.CategoryRepository
	subtags    repository.SubtagRepository
	tx         CatalogTxRunner
}

// NewDishUseCase construye el caso de uso.
func NewDishUseCase(repo repository.DishRepository, categories repository.CategoryRepository, subtags repository.SubtagRepository, tx CatalogTxRunner) *DishUseCase {
	return &DishUseCase{repo: repo, categories: categories, subtags: subtags, tx: tx}
}

// Create crea un plato en una categoría del mismo tenant.
func (uc *DishUseCase) Create(ctx context.Context, tenantID string, in dto.CreateDishRequest) (*dto.DishResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if err := uc.checkCategory(ctx, tenantID, in.CategoryID); err != nil {
		return nil, err
	}
	subtagIDs, err := uc.checkSubtags(ctx, tenantID, in.SubtagIDs)
	if err != nil {
		return nil, err
	}
	s, err := resolveSlug(in.Slug, name)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	d := &entity.Dish{
		ID:              uuid.New().String(),
		TenantID:        tenantID,
		CategoryID:      in.CategoryID,
		Name:            name,
		Slug:            s,
		Description:     in.Description,
		Price:           in.Price,
		Image:           in.Image,
		IsActive:        true,
		IsFeatured:      in.IsFeatured,
		Allergens:       nonNil(in.Allergens),
		Tags:            nonNil(in.Tags),
		SubtagIDs:       subtagIDs,
		PreparationTime: in.PreparationTime,
		Servings:        in.Servings,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
	if in.Order != nil {
		d.Order = *in.Order
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDishResponse(d), nil
}

// Get obtiene un plato del tenant. Con activeOnly un plato inactivo es ErrNotFound.
func (uc *DishUseCase) Get(ctx context.Context, tenantID, id string, activeOnly bool) (*dto.DishResponse, error) {
	d, err := uc.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if activeOnly && !d.IsActive {
		return nil, domain.ErrNotFound
	}
	return toDishResponse(d), nil
}

// GetBySlug obtiene un plato del tenant por slug.
func (uc *DishUseCase) GetBySlug(ctx context.Context, tenantID, s string, activeOnly bool) (*dto.DishResponse, error) {
	d, err := uc.repo.GetBySlug(ctx, tenantID, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return nil, err
	}
	if d == nil || (activeOnly && !d.IsActive) {
		return nil, domain.ErrNotFound
	}
	return toDishResponse(d), nil
}

// List lista platos con filtros opcionales por categoría, activos y destacados.
func (uc *DishUseCase) List(ctx context.Context, tenantID string, in dto.DishListRequest) ([]dto.DishResponse, error) {
	list, err := uc.repo.List(ctx, repository.DishFilter{
		TenantID:     tenantID,
		CategoryID:   in.CategoryID,
		ActiveOnly:   in.Active,
		FeaturedOnly: in.Featured,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.DishResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDishResponse(d))
	}
	return out, nil
}

// Update actualización parcial del plato.
func (uc *DishUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateDishRequest) (*dto.DishResponse, error) {
	d, err := uc.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil && *in.CategoryID != d.CategoryID {
		if err := uc.checkCategory(ctx, tenantID, *in.CategoryID); err != nil {
			return nil, err
		}
		d.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
		}
		d.Name = name
	}
	if in.Slug != nil {
		s, err := resolveSlug(*in.Slug, d.Name)
		if err != nil {
			return nil, err
		}
		d.Slug = s
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
		d.Price = *in.Price
	}
	if in.SubtagIDs != nil {
		ids, err := uc.checkSubtags(ctx, tenantID, in.SubtagIDs)
		if err != nil {
			return nil, err
		}
		d.SubtagIDs = ids
	}
	applyDishFields(d, in)
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDishResponse(d), nil
}

func applyDishFields(d *entity.Dish, in dto.UpdateDishRequest) {
	if in.Description != nil {
		d.Description = *in.Description
	}
	if in.Image != nil {
		d.Image = *in.Image
	}
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		d.IsFeatured = *in.IsFeatured
	}
	if in.Allergens != nil {
		d.Allergens = in.Allergens
	}
	if in.Tags != nil {
		d.Tags = in.Tags
	}
	if in.PreparationTime != nil {
		d.PreparationTime = in.PreparationTime
	}
	if in.Servings != nil {
		d.Servings = in.Servings
	}
	if in.Order != nil {
		d.Order = *in.Order
	}
}

// Delete elimina un plato.
func (uc *DishUseCase) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := uc.find(ctx, tenantID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, tenantID, id)
}

// Reorder aplica todas las posiciones en una sola transacción.
func (uc *DishUseCase) Reorder(ctx context.Context, tenantID string, in dto.ReorderRequest) error {
	if err := validateReorder(in); err != nil {
		return err
	}
	return uc.tx.RunCatalog(ctx, func(_ repository.CategoryRepository, dishes repository.DishRepository, _ repository.SubtagRepository) error {
		for _, it := range in.Items {
			if err := dishes.UpdateOrder(ctx, tenantID, it.ID, it.Order); err != nil {
				return err
			}
		}
		return nil
	})
}

func (uc *DishUseCase) find(ctx context.Context, tenantID, id string) (*entity.Dish, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	d, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (uc *DishUseCase) checkCategory(ctx context.Context, tenantID, categoryID string) error {
	if _, err := uuid.Parse(categoryID); err != nil {
		return fmt.Errorf("%w: categoryId inválido", domain.ErrInvalidInput)
	}
	c, err := uc.categories.GetByID(ctx, tenantID, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: la categoría no existe", domain.ErrInvalidInput)
	}
	return nil
}

// checkSubtags deduplica ids y verifica que todos pertenezcan al tenant.
func (uc *DishUseCase) checkSubtags(ctx context.Context, tenantID string, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("%w: subtag inválido %q", domain.ErrInvalidInput, id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return out, nil
	}
	n, err := uc.subtags.CountByIDs(ctx, tenantID, out)
	if err != nil {
		return nil, err
	}
	if n != len(out) {
		return nil, fmt.Errorf("%w: uno o más subtags no existen", domain.ErrInvalidInput)
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toDishResponse(d *entity.Dish) *dto.DishResponse {
	return &dto.DishResponse{
		ID:              d.ID,
		CategoryID:      d.CategoryID,
		Name:            d.Name,
		Slug:            d.Slug,
		Description:     d.Description,
		Price:           d.Price.Round(2),
		Image:           d.Image,
		IsActive:        d.IsActive,
		IsFeatured:      d.IsFeatured,
		Allergens:       nonNil(d.Allergens),
		Tags:            nonNil(d.Tags),
		SubtagIDs:       nonNil(d.SubtagIDs),
		PreparationTime: d.PreparationTime,
		Servings:        d.Servings,
		Order:           d.Order,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
