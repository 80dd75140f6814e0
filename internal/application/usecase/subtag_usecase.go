package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
)

// SubtagUseCase casos de uso de subtags. El nombre es único por tenant sin distinguir mayúsculas.
type SubtagUseCase struct {
	repo repository.SubtagRepository
	tx   CatalogTxRunner
}

// NewSubtagUseCase construye el caso de uso.
func NewSubtagUseCase(repo repository.SubtagRepository, tx CatalogTxRunner) *SubtagUseCase {
	return &SubtagUseCase{repo: repo, tx: tx}
}

// Create crea un subtag con el nombre recortado.
func (uc *SubtagUseCase) Create(ctx context.Context, tenantID string, in dto.SubtagRequest) (*dto.SubtagResponse, error) {
	name, err := uc.checkName(ctx, tenantID, in.Name, "")
	if err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Subtag{ID: uuid.New().String(), TenantID: tenantID, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, s); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrSubtagNameTaken
		}
		return nil, err
	}
	return toSubtagResponse(s), nil
}

// Get obtiene un subtag del tenant.
func (uc *SubtagUseCase) Get(ctx context.Context, tenantID, id string) (*dto.SubtagResponse, error) {
	s, err := uc.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toSubtagResponse(s), nil
}

// List lista subtags ordenados por nombre.
func (uc *SubtagUseCase) List(ctx context.Context, tenantID string) ([]dto.SubtagResponse, error) {
	list, err := uc.repo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubtagResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSubtagResponse(s))
	}
	return out, nil
}

// Update renombra un subtag.
func (uc *SubtagUseCase) Update(ctx context.Context, tenantID, id string, in dto.SubtagRequest) (*dto.SubtagResponse, error) {
	s, err := uc.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	name, err := uc.checkName(ctx, tenantID, in.Name, s.ID)
	if err != nil {
		return nil, err
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrSubtagNameTaken
		}
		return nil, err
	}
	return toSubtagResponse(s), nil
}

// Delete elimina el subtag y lo quita de subtag_ids de todos los platos, en una transacción.
func (uc *SubtagUseCase) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := uc.find(ctx, tenantID, id); err != nil {
		return err
	}
	return uc.tx.RunCatalog(ctx, func(_ repository.CategoryRepository, dishes repository.DishRepository, subtags repository.SubtagRepository) error {
		if _, err := dishes.RemoveSubtag(ctx, tenantID, id); err != nil {
			return err
		}
		return subtags.Delete(ctx, tenantID, id)
	})
}

// checkName recorta y valida unicidad; selfID excluye al propio subtag en una edición.
func (uc *SubtagUseCase) checkName(ctx context.Context, tenantID, raw, selfID string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByName(ctx, tenantID, name)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.ID != selfID {
		return "", domain.ErrSubtagNameTaken
	}
	return name, nil
}

func (uc *SubtagUseCase) find(ctx context.Context, tenantID, id string) (*entity.Subtag, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	s, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func toSubtagResponse(s *entity.Subtag) *dto.SubtagResponse {
	return &dto.SubtagResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}
