package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUserPasswordLen = 6
	recentOrdersLimit  = 5
)

// UserUseCase gestión de usuarios del tenant por su ADMIN.
// Toda operación queda acotada al tenant resuelto.
type UserUseCase struct {
	users   repository.UserRepository
	tenants repository.TenantRepository
	orders  repository.OrderRepository
	now     func() time.Time
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository, tenants repository.TenantRepository, orders repository.OrderRepository) *UserUseCase {
	return &UserUseCase{users: users, tenants: tenants, orders: orders, now: time.Now}
}

// List usuarios del tenant, más recientes primero.
func (uc *UserUseCase) List(ctx context.Context, tenantID string) ([]dto.UserResponse, error) {
	list, err := uc.users.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, ToUserResponse(u))
	}
	return out, nil
}

// Create da de alta un ADMIN u ORDERS_MANAGER del tenant.
func (uc *UserUseCase) Create(ctx context.Context, tenantID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email, nombre y contraseña son requeridos", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < minUserPasswordLen {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minUserPasswordLen)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleOrdersManager
	}
	if err := checkTenantRole(role); err != nil {
		return nil, err
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	tid := tenantID
	u := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     &tid,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	out := ToUserResponse(u)
	return &out, nil
}

// Update cambia nombre, rol, estado o contraseña. Nadie se quita a sí mismo el rol ni se desactiva.
func (uc *UserUseCase) Update(ctx context.Context, actor *entity.Principal, tenantID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	self := actor != nil && actor.ID == u.ID
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
		}
		u.Name = name
	}
	if in.Role != nil && *in.Role != u.Role {
		if err := checkTenantRole(*in.Role); err != nil {
			return nil, err
		}
		if self {
			return nil, fmt.Errorf("%w: no puedes cambiar tu propio rol", domain.ErrForbidden)
		}
		u.Role = *in.Role
	}
	if in.IsActive != nil && *in.IsActive != u.IsActive {
		if self {
			return nil, fmt.Errorf("%w: no puedes desactivar tu propia cuenta", domain.ErrForbidden)
		}
		u.IsActive = *in.IsActive
	}
	if in.Password != nil {
		if len(*in.Password) < minUserPasswordLen {
			return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minUserPasswordLen)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = uc.now()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	out := ToUserResponse(u)
	return &out, nil
}

// Delete elimina un usuario del tenant. No se permite borrar la propia cuenta.
func (uc *UserUseCase) Delete(ctx context.Context, actor *entity.Principal, tenantID, id string) error {
	if actor != nil && actor.ID == id {
		return fmt.Errorf("%w: no puedes eliminar tu propia cuenta", domain.ErrInvalidInput)
	}
	return uc.users.Delete(ctx, tenantID, id)
}

// Stats conteos del tenant y sus últimos pedidos.
func (uc *UserUseCase) Stats(ctx context.Context, tenantID string) (*dto.AdminStatsResponse, error) {
	now := uc.now().UTC()
	st, err := uc.tenants.Stats(ctx, tenantID, time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}
	users, err := uc.users.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	recent, _, err := uc.orders.List(ctx, repository.OrderFilter{TenantID: tenantID, Page: 1, Limit: recentOrdersLimit})
	if err != nil {
		return nil, err
	}
	out := &dto.AdminStatsResponse{
		Dishes:       st.Dishes,
		Categories:   st.Categories,
		Orders:       st.TotalOrders,
		Users:        users,
		RecentOrders: make([]dto.RecentOrderResponse, 0, len(recent)),
	}
	for _, o := range recent {
		out.RecentOrders = append(out.RecentOrders, dto.RecentOrderResponse{
			ID:           o.ID,
			OrderNumber:  o.OrderNumber,
			CustomerName: o.Customer.Name,
			Total:        o.Total,
			Status:       string(o.Status),
			CreatedAt:    o.CreatedAt,
		})
	}
	return out, nil
}

// find solo devuelve usuarios del tenant; los de otro tenant cuentan como inexistentes.
func (uc *UserUseCase) find(ctx context.Context, tenantID, id string) (*entity.User, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || u.TenantID == nil || *u.TenantID != tenantID {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func checkTenantRole(role string) error {
	if role != entity.RoleAdmin && role != entity.RoleOrdersManager {
		return fmt.Errorf("%w: rol %q (ADMIN, ORDERS_MANAGER)", domain.ErrInvalidInput, role)
	}
	return nil
}

// ToUserResponse mapea la entidad a su DTO (sin hash).
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		TenantID:  u.TenantID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
