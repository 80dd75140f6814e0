package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/application/usecase"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTenantFixture() (*usecase.TenantUseCase, *memTenantRepo, *spyInvalidator, *spyRecorder) {
	cd := "cevicheria.com"
	repo := &memTenantRepo{tenants: map[string]*entity.Tenant{
		tenantID: {ID: tenantID, Name: "La Cevichería", Domain: "cevicheria.james.pe", CustomDomain: &cd, Email: "hola@cevicheria.pe", Plan: entity.PlanFree},
		"t2":     {ID: "t2", Name: "Sabor", Domain: "sabor.james.pe", Plan: entity.PlanBasic},
	}}
	inv, rec := &spyInvalidator{}, &spyRecorder{}
	return usecase.NewTenantUseCase(repo, inv, rec), repo, inv, rec
}

func TestTenantUseCase_UpdateAdmin(t *testing.T) {
	uc, repo, inv, rec := newTenantFixture()
	admin := &entity.Principal{ID: "u1", Email: "admin@cevicheria.pe", Role: entity.RoleAdmin, TenantID: tenantID}

	out, err := uc.Update(context.Background(), admin, tenantID, dto.UpdateTenantRequest{
		Name:         strp("  La Cevichería de Ana "),
		Domain:       strp("Ana.James.pe"),
		CustomDomain: strp(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "La Cevichería de Ana", out.Name)
	assert.Equal(t, "ana.james.pe", repo.tenants[tenantID].Domain)
	assert.Nil(t, repo.tenants[tenantID].CustomDomain, "vacío elimina el dominio propio")
	assert.Equal(t, []string{tenantID}, inv.ids)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, entity.LogActionTenantUpdated, rec.entries[0].Action)
	assert.Equal(t, "u1", rec.entries[0].UserID)
	assert.Contains(t, rec.entries[0].Details, "domain")
}

func TestTenantUseCase_UpdatePlanSoloSuperadmin(t *testing.T) {
	uc, repo, _, _ := newTenantFixture()
	ctx := context.Background()
	admin := &entity.Principal{ID: "u1", Role: entity.RoleAdmin, TenantID: tenantID}
	root := &entity.Principal{ID: "root", Role: entity.RoleSuperAdmin}

	_, err := uc.Update(ctx, admin, tenantID, dto.UpdateTenantRequest{Plan: strp(entity.PlanPremium)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, entity.PlanFree, repo.tenants[tenantID].Plan)

	// Reenviar el plan actual no es un cambio.
	_, err = uc.Update(ctx, admin, tenantID, dto.UpdateTenantRequest{Plan: strp(entity.PlanFree)})
	assert.NoError(t, err)

	_, err = uc.Update(ctx, root, tenantID, dto.UpdateTenantRequest{Plan: strp("gold")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Update(ctx, root, tenantID, dto.UpdateTenantRequest{Plan: strp(entity.PlanPremium)})
	require.NoError(t, err)
	assert.Equal(t, entity.PlanPremium, out.Plan)
}

func TestTenantUseCase_UpdateValidaciones(t *testing.T) {
	uc, _, inv, _ := newTenantFixture()
	ctx := context.Background()
	root := &entity.Principal{ID: "root", Role: entity.RoleSuperAdmin}

	_, err := uc.Update(ctx, root, tenantID, dto.UpdateTenantRequest{Domain: strp("sabor.james.pe")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, root, tenantID, dto.UpdateTenantRequest{Email: strp("sin-arroba")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, root, tenantID, dto.UpdateTenantRequest{Name: strp("ab")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, root, "nope", dto.UpdateTenantRequest{Name: strp("Nuevo")})
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)

	assert.Empty(t, inv.ids, "sin cambios persistidos no se invalida la caché")
}
