package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/application/usecase"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func strp(s string) *string { return &s }

func tenantUser(id, tenant, email, role string, created time.Time) *entity.User {
	return &entity.User{ID: id, TenantID: strp(tenant), Email: email, Name: id, Role: role, IsActive: true, CreatedAt: created}
}

func newUserFixture() (*usecase.UserUseCase, *memUserRepo, *memOrderRepo) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	users := newMemUserRepo(
		tenantUser("admin", tenantID, "admin@cevicheria.pe", entity.RoleAdmin, base),
		tenantUser("caja", tenantID, "caja@cevicheria.pe", entity.RoleOrdersManager, base.Add(time.Hour)),
		tenantUser("otro", "t2", "admin@sabor.pe", entity.RoleAdmin, base),
	)
	tenants := &memTenantRepo{tenants: map[string]*entity.Tenant{tenantID: {ID: tenantID, Name: "La Cevichería"}}}
	orders := &memOrderRepo{}
	for i, n := range []string{"2403140006", "2403140005", "2403140004", "2403140003", "2403140002", "2403140001"} {
		orders.orders = append(orders.orders, &entity.Order{
			ID: n, TenantID: tenantID, OrderNumber: n, Total: decimal.NewFromInt(int64(10 + i)),
			Status: entity.OrderStatusPending, Customer: entity.OrderCustomer{Name: "Ana"},
		})
	}
	orders.orders = append(orders.orders, &entity.Order{ID: "x", TenantID: "t2", OrderNumber: "2403140001"})
	return usecase.NewUserUseCase(users, tenants, orders), users, orders
}

func TestUsers_ListSoloDelTenant(t *testing.T) {
	uc, _, _ := newUserFixture()
	out, err := uc.List(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "caja", out[0].ID, "más reciente primero")
	assert.Equal(t, "admin", out[1].ID)
}

func TestUsers_Create(t *testing.T) {
	uc, users, _ := newUserFixture()
	ctx := context.Background()

	out, err := uc.Create(ctx, tenantID, dto.CreateUserRequest{Email: " Mozo@Cevicheria.pe ", Name: "Mozo", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "mozo@cevicheria.pe", out.Email)
	assert.Equal(t, entity.RoleOrdersManager, out.Role, "rol por defecto")
	require.NotNil(t, out.TenantID)
	assert.Equal(t, tenantID, *out.TenantID)

	stored := users.users[out.ID]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto1")))

	_, err = uc.Create(ctx, tenantID, dto.CreateUserRequest{Email: "admin@sabor.pe", Name: "X", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists, "email único global")

	_, err = uc.Create(ctx, tenantID, dto.CreateUserRequest{Email: "root@cevicheria.pe", Name: "Root", Password: "secreto1", Role: entity.RoleSuperAdmin})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, tenantID, dto.CreateUserRequest{Email: "x@cevicheria.pe", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, tenantID, dto.CreateUserRequest{Email: "no-es-email", Name: "X", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUsers_Update(t *testing.T) {
	uc, users, _ := newUserFixture()
	ctx := context.Background()
	actor := &entity.Principal{ID: "admin", Role: entity.RoleAdmin, TenantID: tenantID}

	out, err := uc.Update(ctx, actor, tenantID, "caja", dto.UpdateUserRequest{Name: strp("Caja 1"), Role: strp(entity.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, "Caja 1", out.Name)
	assert.Equal(t, entity.RoleAdmin, users.users["caja"].Role)

	_, err = uc.Update(ctx, actor, tenantID, "otro", dto.UpdateUserRequest{Name: strp("Intruso")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound, "usuario de otro tenant")
	assert.Equal(t, "otro", users.users["otro"].Name)

	_, err = uc.Update(ctx, actor, tenantID, "admin", dto.UpdateUserRequest{Role: strp(entity.RoleOrdersManager)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	off := false
	_, err = uc.Update(ctx, actor, tenantID, "admin", dto.UpdateUserRequest{IsActive: &off})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Update(ctx, actor, tenantID, "caja", dto.UpdateUserRequest{Role: strp(entity.RoleSuperAdmin)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUsers_Delete(t *testing.T) {
	uc, users, _ := newUserFixture()
	ctx := context.Background()
	actor := &entity.Principal{ID: "admin", Role: entity.RoleAdmin, TenantID: tenantID}

	assert.ErrorIs(t, uc.Delete(ctx, actor, tenantID, "admin"), domain.ErrInvalidInput, "no la propia cuenta")
	assert.ErrorIs(t, uc.Delete(ctx, actor, tenantID, "otro"), domain.ErrUserNotFound)
	assert.Contains(t, users.users, "otro")

	require.NoError(t, uc.Delete(ctx, actor, tenantID, "caja"))
	assert.NotContains(t, users.users, "caja")
}

func TestUsers_Stats(t *testing.T) {
	uc, _, orders := newUserFixture()
	st, err := uc.Stats(context.Background(), tenantID)
	require.NoError(t, err)

	assert.Equal(t, 12, st.Dishes)
	assert.Equal(t, 3, st.Categories)
	assert.Equal(t, 7, st.Orders)
	assert.Equal(t, 2, st.Users, "conteo real de usuarios del tenant")
	require.Len(t, st.RecentOrders, 5)
	assert.Equal(t, "2403140006", st.RecentOrders[0].OrderNumber)
	assert.Equal(t, "Ana", st.RecentOrders[0].CustomerName)
	assert.Equal(t, 5, orders.lastF.Limit)
	assert.Equal(t, tenantID, orders.lastF.TenantID)

	_, err = uc.Stats(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}
