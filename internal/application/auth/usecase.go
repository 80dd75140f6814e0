package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/menu-admin-api/internal/application/audit"
	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/application/usecase"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
	"github.com/jhoicas/menu-admin-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y datos del usuario actual.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	audit      audit.Recorder
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tenantRepo repository.TenantRepository, rec audit.Recorder, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tenantRepo: tenantRepo, audit: rec, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario (+ tenant si aplica).
// Email inexistente y password incorrecta responden igual: ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, actor audit.Actor, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		uc.record(ctx, actor.Stamp(audit.Entry{
			Level:   entity.LogLevelWarning,
			Action:  entity.LogActionLoginFailed,
			Message: fmt.Sprintf("Login fallido para %s", email),
			Details: map[string]interface{}{"email": email},
		}))
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	var tenant *entity.Tenant
	if user.TenantID != nil {
		tenant, err = uc.tenantRepo.GetByID(ctx, *user.TenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil || tenant.Status == entity.TenantStatusInactive {
			return nil, domain.ErrTenantNotFound
		}
		if tenant.Status == entity.TenantStatusSuspended {
			return nil, domain.ErrTenantSuspended
		}
	}

	payload := jwt.Payload{UserID: user.ID, Email: user.Email, Role: user.Role}
	if user.TenantID != nil {
		payload.TenantID = *user.TenantID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, payload)
	if err != nil {
		return nil, err
	}

	e := audit.Entry{
		Level:   entity.LogLevelInfo,
		Action:  entity.LogActionUserLogin,
		Message: fmt.Sprintf("Login de %s", user.Email),
	}
	actor.UserID, actor.Email = user.ID, user.Email
	e = actor.Stamp(e)
	if tenant != nil {
		e.TenantID, e.TenantName = tenant.ID, tenant.Name
	}
	uc.record(ctx, e)

	return &dto.LoginResponse{
		Token:  token,
		User:   *toUserResponse(user),
		Tenant: usecase.ToTenantResponse(tenant),
	}, nil
}

// Me devuelve el payload del usuario autenticado.
func (uc *AuthUseCase) Me(p *entity.Principal) (*dto.MeResponse, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	out := &dto.MeResponse{UserID: p.ID, Email: p.Email, Role: p.Role}
	if p.TenantID != "" {
		tid := p.TenantID
		out.TenantID = &tid
	}
	return out, nil
}

func (uc *AuthUseCase) record(ctx context.Context, e audit.Entry) {
	if uc.audit != nil {
		uc.audit.Record(ctx, e)
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		TenantID:  u.TenantID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
