package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/menu-admin-api/internal/application/audit"
	"github.com/jhoicas/menu-admin-api/internal/application/auth"
	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
	"github.com/jhoicas/menu-admin-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	repository.UserRepository
	users map[string]*entity.User
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.users[email], nil
}

type memTenants struct {
	repository.TenantRepository
	tenants map[string]*entity.Tenant
}

func (m *memTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return m.tenants[id], nil
}

type spyRecorder struct{ entries []audit.Entry }

func (s *spyRecorder) Record(_ context.Context, e audit.Entry) { s.entries = append(s.entries, e) }

func hash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func setup(t *testing.T) (*auth.AuthUseCase, *spyRecorder, *memTenants) {
	tid := "t1"
	users := &memUsers{users: map[string]*entity.User{
		"admin@cevicheria.pe": {ID: "u1", TenantID: &tid, Email: "admin@cevicheria.pe", PasswordHash: hash(t, "secreto1"), Role: entity.RoleAdmin, IsActive: true},
		"root@james.pe":       {ID: "u0", Email: "root@james.pe", PasswordHash: hash(t, "rootpass"), Role: entity.RoleSuperAdmin, IsActive: true},
		"baja@cevicheria.pe":  {ID: "u2", TenantID: &tid, Email: "baja@cevicheria.pe", PasswordHash: hash(t, "secreto1"), Role: entity.RoleOrdersManager, IsActive: false},
	}}
	tenants := &memTenants{tenants: map[string]*entity.Tenant{
		"t1": {ID: "t1", Name: "La Cevichería", Status: entity.TenantStatusActive},
	}}
	rec := &spyRecorder{}
	uc := auth.NewAuthUseCase(users, tenants, rec, auth.JWTConfig{Secret: "s3cr3t", ExpMinutes: 60, Issuer: "test"})
	return uc, rec, tenants
}

func TestLogin_OK(t *testing.T) {
	uc, rec, _ := setup(t)
	out, err := uc.Login(context.Background(), audit.Actor{IPAddress: "1.2.3.4"}, dto.LoginRequest{Email: " Admin@Cevicheria.pe ", Password: "secreto1"})
	require.NoError(t, err)
	require.NotNil(t, out.Tenant)
	assert.Equal(t, "t1", out.Tenant.ID)

	p, err := jwt.Parse("s3cr3t", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "t1", p.TenantID)
	assert.Equal(t, entity.RoleAdmin, p.Role)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, entity.LogActionUserLogin, rec.entries[0].Action)
	assert.Equal(t, "1.2.3.4", rec.entries[0].IPAddress)
}

func TestLogin_SuperadminSinTenant(t *testing.T) {
	uc, _, _ := setup(t)
	out, err := uc.Login(context.Background(), audit.Actor{}, dto.LoginRequest{Email: "root@james.pe", Password: "rootpass"})
	require.NoError(t, err)
	assert.Nil(t, out.Tenant)
	assert.Nil(t, out.User.TenantID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, rec, _ := setup(t)
	_, err := uc.Login(context.Background(), audit.Actor{}, dto.LoginRequest{Email: "admin@cevicheria.pe", Password: "mal"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(context.Background(), audit.Actor{}, dto.LoginRequest{Email: "nadie@x.pe", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	require.Len(t, rec.entries, 2)
	assert.Equal(t, entity.LogActionLoginFailed, rec.entries[0].Action)
}

func TestLogin_UsuarioInactivoYTenantSuspendido(t *testing.T) {
	uc, _, tenants := setup(t)
	_, err := uc.Login(context.Background(), audit.Actor{}, dto.LoginRequest{Email: "baja@cevicheria.pe", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	tenants.tenants["t1"].Status = entity.TenantStatusSuspended
	_, err = uc.Login(context.Background(), audit.Actor{}, dto.LoginRequest{Email: "admin@cevicheria.pe", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrTenantSuspended)
}

func TestMe(t *testing.T) {
	uc, _, _ := setup(t)
	out, err := uc.Me(&entity.Principal{ID: "u0", Email: "root@james.pe", Role: entity.RoleSuperAdmin})
	require.NoError(t, err)
	assert.Nil(t, out.TenantID)

	_, err = uc.Me(nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
