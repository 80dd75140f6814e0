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
	"github.com/jhoicas/menu-admin-api/pkg/slug"
)

// CategoryUseCase casos de uso CRUD para categorías del menú.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	tx   CatalogTxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, tx CatalogTxRunner) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tx: tx}
}

// Create crea una categoría. El slug se deriva del nombre si no viene.
func (uc *CategoryUseCase) Create(ctx context.Context, tenantID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	s, err := resolveSlug(in.Slug, name)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Name:        name,
		Slug:        s,
		Description: in.Description,
		Image:       in.Image,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Order != nil {
		c.Order = *in.Order
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Get obtiene una categoría del tenant. Con activeOnly una categoría inactiva es ErrNotFound.
func (uc *CategoryUseCase) Get(ctx context.Context, tenantID, id string, activeOnly bool) (*dto.CategoryResponse, error) {
	c, err := uc.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if activeOnly && !c.IsActive {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

// GetBySlug obtiene una categoría del tenant por slug.
func (uc *CategoryUseCase) GetBySlug(ctx context.Context, tenantID, s string, activeOnly bool) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetBySlug(ctx, tenantID, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return nil, err
	}
	if c == nil || (activeOnly && !c.IsActive) {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

// List lista categorías ordenadas por posición.
func (uc *CategoryUseCase) List(ctx context.Context, tenantID string, activeOnly bool) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, tenantID, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Update actualización parcial.
func (uc *CategoryUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
		}
		c.Name = name
	}
	if in.Slug != nil {
		s, err := resolveSlug(*in.Slug, c.Name)
		if err != nil {
			return nil, err
		}
		c.Slug = s
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Image != nil {
		c.Image = *in.Image
	}
	if in.Order != nil {
		c.Order = *in.Order
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Delete elimina una categoría sin platos asociados.
func (uc *CategoryUseCase) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := uc.find(ctx, tenantID, id); err != nil {
		return err
	}
	n, err := uc.repo.CountDishes(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrCategoryHasDishes
	}
	return uc.repo.Delete(ctx, tenantID, id)
}

// Reorder aplica todas las posiciones en una sola transacción.
func (uc *CategoryUseCase) Reorder(ctx context.Context, tenantID string, in dto.ReorderRequest) error {
	if err := validateReorder(in); err != nil {
		return err
	}
	return uc.tx.RunCatalog(ctx, func(categories repository.CategoryRepository, _ repository.DishRepository, _ repository.SubtagRepository) error {
		for _, it := range in.Items {
			if err := categories.UpdateOrder(ctx, tenantID, it.ID, it.Order); err != nil {
				return err
			}
		}
		return nil
	})
}

func (uc *CategoryUseCase) find(ctx context.Context, tenantID, id string) (*entity.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	c, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func resolveSlug(raw, name string) (string, error) {
	s := slug.Make(raw)
	if s == "" {
		s = slug.Make(name)
	}
	if s == "" {
		return "", fmt.Errorf("%w: no se pudo derivar un slug válido", domain.ErrInvalidInput)
	}
	return s, nil
}

func validateReorder(in dto.ReorderRequest) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: items vacío", domain.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(in.Items))
	for _, it := range in.Items {
		if _, err := uuid.Parse(it.ID); err != nil {
			return fmt.Errorf("%w: id inválido %q", domain.ErrInvalidInput, it.ID)
		}
		if it.Order < 0 {
			return fmt.Errorf("%w: order negativo", domain.ErrInvalidInput)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("%w: id repetido %q", domain.ErrInvalidInput, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		Order:       c.Order,
		IsActive:    c.IsActive,
		DishCount:   c.DishCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
