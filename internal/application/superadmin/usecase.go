package superadmin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/menu-admin-api/internal/application/audit"
	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/application/usecase"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTenantLimit = 20
	maxTenantLimit     = 100
	minPasswordLen     = 6
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]{3,}$`)

// Config parámetros del alta de tenants.
type Config struct {
	BaseDomain string         // dominio por defecto: <slug>.<BaseDomain>
	Location   *time.Location // para "este mes" en las estadísticas
}

// TenantAdminUseCase gestión de tenants por el SUPERADMIN.
type TenantAdminUseCase struct {
	repo  repository.TenantRepository
	users repository.UserRepository
	tx    TenantTxRunner
	cache CacheInvalidator
	audit audit.Recorder
	cfg   Config
	now   func() time.Time
}

// NewTenantAdminUseCase construye el caso de uso. cache puede ser nil.
func NewTenantAdminUseCase(repo repository.TenantRepository, users repository.UserRepository, tx TenantTxRunner, cache CacheInvalidator, rec audit.Recorder, cfg Config) *TenantAdminUseCase {
	if cfg.BaseDomain == "" {
		cfg.BaseDomain = "james.pe"
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &TenantAdminUseCase{repo: repo, users: users, tx: tx, cache: cache, audit: rec, cfg: cfg, now: time.Now}
}

// List lista tenants con filtros y paginación por página.
func (uc *TenantAdminUseCase) List(ctx context.Context, in dto.TenantListRequest) ([]dto.TenantResponse, *dto.Pagination, error) {
	in.Normalize(defaultTenantLimit, maxTenantLimit)
	list, total, err := uc.repo.List(ctx, repository.TenantFilter{
		Status: in.Status,
		Plan:   in.Plan,
		Search: strings.TrimSpace(in.Search),
		Limit:  in.Limit,
		Offset: (in.Page - 1) * in.Limit,
	})
	if err != nil {
		return nil, nil, err
	}
	out := make([]dto.TenantResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *usecase.ToTenantResponse(t))
	}
	return out, dto.NewPagination(in.Page, in.Limit, total), nil
}

// Get obtiene un tenant por ID.
func (uc *TenantAdminUseCase) Get(ctx context.Context, id string) (*dto.TenantResponse, error) {
	t, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return usecase.ToTenantResponse(t), nil
}

// Create da de alta el tenant y su usuario ADMIN en una sola transacción.
func (uc *TenantAdminUseCase) Create(ctx context.Context, actor audit.Actor, in dto.CreateTenantRequest) (*dto.CreateTenantResponse, error) {
	t, admin, password, err := uc.buildTenant(in)
	if err != nil {
		return nil, err
	}
	exists, err := uc.repo.ExistsSlugOrDomain(ctx, t.Slug, t.Domain)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: el slug o dominio ya existe", domain.ErrDuplicate)
	}
	existingUser, err := uc.users.GetByEmail(ctx, admin.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin.PasswordHash = string(hash)

	err = uc.tx.RunTenant(ctx, func(tenants repository.TenantRepository, users repository.UserRepository) error {
		if err := tenants.Create(ctx, t); err != nil {
			return err
		}
		return users.Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, actor.Stamp(audit.Entry{
		Level:      entity.LogLevelInfo,
		Action:     entity.LogActionTenantCreated,
		Message:    fmt.Sprintf("Tenant %s creado", t.Name),
		Details:    map[string]interface{}{"adminEmail": admin.Email, "slug": t.Slug, "domain": t.Domain, "plan": t.Plan},
		TenantID:   t.ID,
		TenantName: t.Name,
	}))
	return &dto.CreateTenantResponse{
		Tenant: *usecase.ToTenantResponse(t),
		Admin: dto.UserResponse{
			ID:        admin.ID,
			Email:     admin.Email,
			Name:      admin.Name,
			Role:      admin.Role,
			TenantID:  admin.TenantID,
			IsActive:  admin.IsActive,
			CreatedAt: admin.CreatedAt,
		},
	}, nil
}

func (uc *TenantAdminUseCase) buildTenant(in dto.CreateTenantRequest) (*entity.Tenant, *entity.User, string, error) {
	name := strings.TrimSpace(in.Name)
	if len([]rune(name)) < 3 {
		return nil, nil, "", fmt.Errorf("%w: el nombre debe tener al menos 3 caracteres", domain.ErrInvalidInput)
	}
	s := strings.ToLower(strings.TrimSpace(in.Slug))
	if s == "" {
		s = strings.ToLower(strings.TrimSpace(in.Subdomain))
	}
	if !slugPattern.MatchString(s) {
		return nil, nil, "", fmt.Errorf("%w: el slug solo puede contener minúsculas, números y guiones (mínimo 3)", domain.ErrInvalidInput)
	}
	adminEmail := strings.ToLower(strings.TrimSpace(in.AdminEmail))
	if _, err := mail.ParseAddress(adminEmail); err != nil {
		return nil, nil, "", fmt.Errorf("%w: email del admin inválido", domain.ErrInvalidInput)
	}
	if len(in.AdminPassword) < minPasswordLen {
		return nil, nil, "", fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	adminName := strings.TrimSpace(in.AdminName)
	if len([]rune(adminName)) < 3 {
		return nil, nil, "", fmt.Errorf("%w: el nombre del admin debe tener al menos 3 caracteres", domain.ErrInvalidInput)
	}
	plan := in.Plan
	if plan == "" {
		plan = entity.PlanFree
	}
	if !entity.IsValidPlan(plan) {
		return nil, nil, "", fmt.Errorf("%w: plan %q", domain.ErrInvalidInput, plan)
	}
	dom := strings.ToLower(strings.TrimSpace(in.Domain))
	if dom == "" {
		dom = s + "." + uc.cfg.BaseDomain
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		email = adminEmail
	}
	settings := in.Settings
	if len(settings) == 0 || string(settings) == "null" {
		settings = json.RawMessage(`{}`)
	} else if !json.Valid(settings) || settings[0] != '{' {
		return nil, nil, "", fmt.Errorf("%w: settings debe ser un objeto JSON", domain.ErrInvalidInput)
	}

	now := uc.now()
	t := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      s,
		Domain:    dom,
		Email:     email,
		Status:    entity.TenantStatusActive,
		Plan:      plan,
		Settings:  settings,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if cd := strings.ToLower(strings.TrimSpace(in.CustomDomain)); cd != "" {
		t.CustomDomain = &cd
	}
	tenantID := t.ID
	admin := &entity.User{
		ID:        uuid.New().String(),
		TenantID:  &tenantID,
		Email:     adminEmail,
		Name:      adminName,
		Role:      entity.RoleAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return t, admin, in.AdminPassword, nil
}

// UpdateStatus cambia el estado del tenant y audita suspensión o activación.
func (uc *TenantAdminUseCase) UpdateStatus(ctx context.Context, actor audit.Actor, id, status string) (*dto.TenantResponse, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !entity.IsValidTenantStatus(status) {
		return nil, fmt.Errorf("%w: estado %q (active, suspended, inactive)", domain.ErrInvalidInput, status)
	}
	t, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	t.Status = status
	t.UpdatedAt = uc.now()
	uc.invalidate(ctx, id)

	e := audit.Entry{
		Level:      entity.LogLevelInfo,
		Action:     entity.LogActionTenantUpdated,
		Message:    fmt.Sprintf("Tenant %s cambió a %s", t.Name, status),
		Details:    map[string]interface{}{"status": status},
		TenantID:   t.ID,
		TenantName: t.Name,
	}
	switch status {
	case entity.TenantStatusSuspended:
		e.Level, e.Action = entity.LogLevelWarning, entity.LogActionTenantSuspended
		e.Message = fmt.Sprintf("Tenant %s suspendido", t.Name)
	case entity.TenantStatusActive:
		e.Action = entity.LogActionTenantActivated
		e.Message = fmt.Sprintf("Tenant %s activado", t.Name)
	}
	uc.record(ctx, actor.Stamp(e))
	return usecase.ToTenantResponse(t), nil
}

// Delete elimina el tenant (CASCADE). Nunca el último tenant del sistema.
func (uc *TenantAdminUseCase) Delete(ctx context.Context, actor audit.Actor, id string) error {
	t, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	n, err := uc.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n <= 1 {
		return domain.ErrLastTenant
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	uc.record(ctx, actor.Stamp(audit.Entry{
		Level:      entity.LogLevelWarning,
		Action:     entity.LogActionTenantDeleted,
		Message:    fmt.Sprintf("Tenant %s eliminado", t.Name),
		Details:    map[string]interface{}{"slug": t.Slug, "domain": t.Domain},
		TenantName: t.Name,
	}))
	return nil
}

// Stats métricas del tenant: pedidos e ingresos totales y del mes, usuarios, platos y categorías.
func (uc *TenantAdminUseCase) Stats(ctx context.Context, id string) (*dto.TenantStatsResponse, error) {
	if _, err := uc.find(ctx, id); err != nil {
		return nil, err
	}
	now := uc.now().In(uc.cfg.Location)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.cfg.Location)
	st, err := uc.repo.Stats(ctx, id, monthStart)
	if err != nil {
		return nil, err
	}
	return &dto.TenantStatsResponse{
		TotalOrders:      st.TotalOrders,
		TotalRevenue:     st.TotalRevenue,
		OrdersThisMonth:  st.OrdersThisMonth,
		RevenueThisMonth: st.RevenueThisMonth,
		Users:            st.Users,
		Dishes:           st.Dishes,
		Categories:       st.Categories,
	}, nil
}

func (uc *TenantAdminUseCase) find(ctx context.Context, id string) (*entity.Tenant, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrTenantNotFound
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	return t, nil
}

func (uc *TenantAdminUseCase) invalidate(ctx context.Context, id string) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, id)
	}
}

func (uc *TenantAdminUseCase) record(ctx context.Context, e audit.Entry) {
	if uc.audit != nil {
		uc.audit.Record(ctx, e)
	}
}
