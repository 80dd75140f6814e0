package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jhoicas/menu-admin-api/internal/application/audit"
	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
)

// TenantUseCase operaciones del tenant sobre sí mismo (datos actuales y settings).
type TenantUseCase struct {
	repo  repository.TenantRepository
	cache CacheInvalidator
	audit audit.Recorder
}

// NewTenantUseCase construye el caso de uso. cache y rec pueden ser nil.
func NewTenantUseCase(repo repository.TenantRepository, cache CacheInvalidator, rec audit.Recorder) *TenantUseCase {
	return &TenantUseCase{repo: repo, cache: cache, audit: rec}
}

// Current devuelve el tenant completo.
func (uc *TenantUseCase) Current(ctx context.Context, tenantID string) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	return ToTenantResponse(t), nil
}

// UpdateSettings mezcla patch sobre los settings actuales (merge superficial de objetos JSON).
func (uc *TenantUseCase) UpdateSettings(ctx context.Context, actor *entity.Principal, tenantID string, patch json.RawMessage) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	merged, err := MergeSettings(t.Settings, patch)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateSettings(ctx, tenantID, merged); err != nil {
		return nil, err
	}
	t.Settings = merged
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, tenantID)
	}
	if uc.audit != nil {
		e := audit.Entry{
			Action:     entity.LogActionSettingsUpdated,
			Message:    fmt.Sprintf("Settings de %s actualizados", t.Name),
			TenantID:   t.ID,
			TenantName: t.Name,
		}
		if actor != nil {
			e.UserID, e.UserEmail = actor.ID, actor.Email
		}
		uc.audit.Record(ctx, e)
	}
	return ToTenantResponse(t), nil
}

// Update cambia nombre, email, dominios o plan. El plan solo lo cambia el SUPERADMIN.
func (uc *TenantUseCase) Update(ctx context.Context, actor *entity.Principal, tenantID string, in dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	changed := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len([]rune(name)) < 3 {
			return nil, fmt.Errorf("%w: el nombre debe tener al menos 3 caracteres", domain.ErrInvalidInput)
		}
		t.Name, changed["name"] = name, name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
		}
		t.Email, changed["email"] = email, email
	}
	if in.Plan != nil && *in.Plan != t.Plan {
		if !actor.IsSuperAdmin() {
			return nil, fmt.Errorf("%w: solo el superadmin cambia el plan", domain.ErrForbidden)
		}
		if !entity.IsValidPlan(*in.Plan) {
			return nil, fmt.Errorf("%w: plan %q", domain.ErrInvalidInput, *in.Plan)
		}
		t.Plan, changed["plan"] = *in.Plan, *in.Plan
	}
	if in.Domain != nil {
		d := strings.ToLower(strings.TrimSpace(*in.Domain))
		if d == "" {
			return nil, fmt.Errorf("%w: el dominio no puede estar vacío", domain.ErrInvalidInput)
		}
		t.Domain, changed["domain"] = d, d
	}
	if in.CustomDomain != nil {
		cd := strings.ToLower(strings.TrimSpace(*in.CustomDomain))
		if cd == "" {
			t.CustomDomain = nil
		} else {
			t.CustomDomain = &cd
		}
		changed["customDomain"] = cd
	}
	if len(changed) == 0 {
		return ToTenantResponse(t), nil
	}
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, tenantID)
	}
	if uc.audit != nil {
		e := audit.Entry{
			Action:     entity.LogActionTenantUpdated,
			Message:    fmt.Sprintf("Tenant %s actualizado", t.Name),
			Details:    changed,
			TenantID:   t.ID,
			TenantName: t.Name,
		}
		if actor != nil {
			e.UserID, e.UserEmail = actor.ID, actor.Email
		}
		uc.audit.Record(ctx, e)
	}
	return ToTenantResponse(t), nil
}

// MergeSettings merge superficial: las claves de patch reemplazan a las de base.
// Ambos deben ser objetos JSON (base vacío o null cuenta como {}).
func MergeSettings(base, patch json.RawMessage) (json.RawMessage, error) {
	out := map[string]json.RawMessage{}
	if len(base) > 0 && string(base) != "null" {
		if err := json.Unmarshal(base, &out); err != nil {
			return nil, fmt.Errorf("settings actuales inválidos: %w", err)
		}
		if out == nil {
			out = map[string]json.RawMessage{}
		}
	}
	var p map[string]json.RawMessage
	if err := json.Unmarshal(patch, &p); err != nil || p == nil {
		return nil, fmt.Errorf("%w: settings debe ser un objeto JSON", domain.ErrInvalidInput)
	}
	for k, v := range p {
		out[k] = v
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ToTenantResponse mapea la entidad a su DTO.
func ToTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	if t == nil {
		return nil
	}
	return &dto.TenantResponse{
		ID:           t.ID,
		Name:         t.Name,
		Slug:         t.Slug,
		Domain:       t.Domain,
		CustomDomain: t.CustomDomain,
		Email:        t.Email,
		Status:       t.Status,
		Plan:         t.Plan,
		Settings:     t.Settings,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
