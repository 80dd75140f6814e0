package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/application/usecase"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tenantID = "t1"

func newCatalog() (*memCatalog, *usecase.CategoryUseCase, *usecase.DishUseCase, *usecase.SubtagUseCase) {
	m := newMemCatalog()
	cats := usecase.NewCategoryUseCase(catRepo{m}, m)
	dishes := usecase.NewDishUseCase(dishRepo{m}, catRepo{m}, subRepo{m}, m)
	subs := usecase.NewSubtagUseCase(subRepo{m}, m)
	return m, cats, dishes, subs
}

// ── categorías ────────────────────────────────────────────────────────────────

func TestCategory_CreateDerivaSlug(t *testing.T) {
	_, cats, _, _ := newCatalog()
	c, err := cats.Create(context.Background(), tenantID, dto.CreateCategoryRequest{Name: "  Platos de Fondo "})
	require.NoError(t, err)
	assert.Equal(t, "Platos de Fondo", c.Name)
	assert.Equal(t, "platos-de-fondo", c.Slug)
	assert.True(t, c.IsActive)

	_, err = cats.Create(context.Background(), tenantID, dto.CreateCategoryRequest{Name: "Platos de fondo"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "slug único por tenant")

	_, err = cats.Create(context.Background(), "t2", dto.CreateCategoryRequest{Name: "Platos de fondo"})
	assert.NoError(t, err, "otro tenant puede reutilizar el slug")
}

func TestCategory_DeleteConPlatos(t *testing.T) {
	_, cats, dishes, _ := newCatalog()
	ctx := context.Background()
	c, err := cats.Create(ctx, tenantID, dto.CreateCategoryRequest{Name: "Entradas"})
	require.NoError(t, err)
	d, err := dishes.Create(ctx, tenantID, dto.CreateDishRequest{CategoryID: c.ID, Name: "Causa", Price: decimal.NewFromInt(18)})
	require.NoError(t, err)

	err = cats.Delete(ctx, tenantID, c.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryHasDishes)

	require.NoError(t, dishes.Delete(ctx, tenantID, d.ID))
	assert.NoError(t, cats.Delete(ctx, tenantID, c.ID))
}

func TestCategory_ReorderTodoONada(t *testing.T) {
	m, cats, _, _ := newCatalog()
	ctx := context.Background()
	a, err := cats.Create(ctx, tenantID, dto.CreateCategoryRequest{Name: "A"})
	require.NoError(t, err)
	b, err := cats.Create(ctx, tenantID, dto.CreateCategoryRequest{Name: "B"})
	require.NoError(t, err)

	require.NoError(t, cats.Reorder(ctx, tenantID, dto.ReorderRequest{Items: []dto.ReorderItem{{ID: a.ID, Order: 2}, {ID: b.ID, Order: 1}}}))
	assert.Equal(t, 2, m.categories[a.ID].Order)
	assert.Equal(t, 1, m.categories[b.ID].Order)

	err = cats.Reorder(ctx, tenantID, dto.ReorderRequest{Items: []dto.ReorderItem{{ID: a.ID, Order: 5}, {ID: uuid.NewString(), Order: 6}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, m.categories[a.ID].Order, "el fallo revierte el lote completo")

	err = cats.Reorder(ctx, tenantID, dto.ReorderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategory_GetOtroTenant(t *testing.T) {
	_, cats, _, _ := newCatalog()
	ctx := context.Background()
	c, err := cats.Create(ctx, tenantID, dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	_, err = cats.Get(ctx, "t2", c.ID, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategory_InactivaOcultaAlPublico(t *testing.T) {
	_, cats, _, _ := newCatalog()
	ctx := context.Background()
	inactive := false
	c, err := cats.Create(ctx, tenantID, dto.CreateCategoryRequest{Name: "Temporada", IsActive: &inactive})
	require.NoError(t, err)

	_, err = cats.Get(ctx, tenantID, c.ID, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = cats.GetBySlug(ctx, tenantID, "temporada", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := cats.Get(ctx, tenantID, c.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	got, err = cats.GetBySlug(ctx, tenantID, " Temporada ", false)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = cats.GetBySlug(ctx, "t2", "temporada", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDish_GetBySlugYActivos(t *testing.T) {
	_, cats, dishes, _ := newCatalog()
	ctx := context.Background()
	c, err := cats.Create(ctx, tenantID, dto.CreateCategoryRequest{Name: "Fondos"})
	require.NoError(t, err)
	inactive := false
	d, err := dishes.Create(ctx, tenantID, dto.CreateDishRequest{CategoryID: c.ID, Name: "Lomo Saltado", Price: decimal.NewFromInt(32), IsActive: &inactive})
	require.NoError(t, err)

	_, err = dishes.Get(ctx, tenantID, d.ID, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = dishes.GetBySlug(ctx, tenantID, "lomo-saltado", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := dishes.GetBySlug(ctx, tenantID, "lomo-saltado", false)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
}

// ── platos ────────────────────────────────────────────────────────────────────

func TestDish_ValidaCategoriaYSubtags(t *testing.T) {
	_, cats, dishes, subs := newCatalog()
	ctx := context.Background()
	c, err := cats.Create(ctx, tenantID, dto.CreateCategoryRequest{Name: "Fondos"})
	require.NoError(t, err)
	s, err := subs.Create(ctx, tenantID, dto.SubtagRequest{Name: "Picante"})
	require.NoError(t, err)

	_, err = dishes.Create(ctx, tenantID, dto.CreateDishRequest{CategoryID: uuid.NewString(), Name: "Lomo", Price: decimal.NewFromInt(30)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "categoría inexistente")

	_, err = dishes.Create(ctx, tenantID, dto.CreateDishRequest{CategoryID: c.ID, Name: "Lomo", Price: decimal.NewFromInt(30), SubtagIDs: []string{uuid.NewString()}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "subtag inexistente")

	_, err = dishes.Create(ctx, tenantID, dto.CreateDishRequest{CategoryID: c.ID, Name: "Lomo", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")

	d, err := dishes.Create(ctx, tenantID, dto.CreateDishRequest{CategoryID: c.ID, Name: "Lomo Saltado", Price: decimal.NewFromInt(30), SubtagIDs: []string{s.ID, s.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{s.ID}, d.SubtagIDs, "ids deduplicados")
	assert.Equal(t, "lomo-saltado", d.Slug)
	assert.NotNil(t, d.Allergens)
}

func TestDish_UpdateParcialYList(t *testing.T) {
	_, cats, dishes, _ := newCatalog()
	ctx := context.Background()
	c, err := cats.Create(ctx, tenantID, dto.CreateCategoryRequest{Name: "Postres"})
	require.NoError(t, err)
	d, err := dishes.Create(ctx, tenantID, dto.CreateDishRequest{CategoryID: c.ID, Name: "Suspiro", Price: decimal.NewFromInt(12)})
	require.NoError(t, err)

	featured := true
	p := decimal.NewFromFloat(13.5)
	out, err := dishes.Update(ctx, tenantID, d.ID, dto.UpdateDishRequest{IsFeatured: &featured, Price: &p})
	require.NoError(t, err)
	assert.True(t, out.IsFeatured)
	assert.True(t, out.Price.Equal(p))
	assert.Equal(t, "Suspiro", out.Name)

	list, err := dishes.List(ctx, tenantID, dto.DishListRequest{Featured: true})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// ── subtags ───────────────────────────────────────────────────────────────────

func TestSubtag_NombreUnicoSinMayusculas(t *testing.T) {
	_, _, _, subs := newCatalog()
	ctx := context.Background()

	s, err := subs.Create(ctx, tenantID, dto.SubtagRequest{Name: "  Vegano "})
	require.NoError(t, err)
	assert.Equal(t, "Vegano", s.Name)

	_, err = subs.Create(ctx, tenantID, dto.SubtagRequest{Name: "VEGANO"})
	assert.ErrorIs(t, err, domain.ErrSubtagNameTaken)

	_, err = subs.Create(ctx, tenantID, dto.SubtagRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := subs.Update(ctx, tenantID, s.ID, dto.SubtagRequest{Name: "vegano"})
	require.NoError(t, err, "renombrar a sí mismo con otro casing es válido")
	assert.Equal(t, "vegano", out.Name)
}

func TestSubtag_DeleteLimpiaPlatos(t *testing.T) {
	m, cats, dishes, subs := newCatalog()
	ctx := context.Background()
	c, err := cats.Create(ctx, tenantID, dto.CreateCategoryRequest{Name: "Fondos"})
	require.NoError(t, err)
	s1, err := subs.Create(ctx, tenantID, dto.SubtagRequest{Name: "Picante"})
	require.NoError(t, err)
	s2, err := subs.Create(ctx, tenantID, dto.SubtagRequest{Name: "Sin gluten"})
	require.NoError(t, err)
	d, err := dishes.Create(ctx, tenantID, dto.CreateDishRequest{CategoryID: c.ID, Name: "Ají", Price: decimal.NewFromInt(20), SubtagIDs: []string{s1.ID, s2.ID}})
	require.NoError(t, err)

	require.NoError(t, subs.Delete(ctx, tenantID, s1.ID))
	assert.Equal(t, []string{s2.ID}, m.dishes[d.ID].SubtagIDs)
	_, ok := m.subtags[s1.ID]
	assert.False(t, ok)
	assert.Equal(t, 1, m.txRuns)
}

// ── settings ──────────────────────────────────────────────────────────────────

func TestMergeSettings(t *testing.T) {
	out, err := usecase.MergeSettings(json.RawMessage(`{"theme":"dark","whatsapp":"+51900000000"}`), json.RawMessage(`{"theme":"light","logo":"x.png"}`))
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, map[string]string{"theme": "light", "whatsapp": "+51900000000", "logo": "x.png"}, got)

	out, err = usecase.MergeSettings(nil, json.RawMessage(`{"a":"b"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"b"}`, string(out))

	_, err = usecase.MergeSettings(nil, json.RawMessage(`[1,2]`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTenantUseCase_UpdateSettingsInvalidaCache(t *testing.T) {
	repo := &memTenantRepo{tenants: map[string]*entity.Tenant{
		tenantID: {ID: tenantID, Name: "La Cevichería", Settings: json.RawMessage(`{"theme":"dark"}`)},
	}}
	inv := &spyInvalidator{}
	uc := usecase.NewTenantUseCase(repo, inv, nil)

	out, err := uc.UpdateSettings(context.Background(), nil, tenantID, json.RawMessage(`{"open":true}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark","open":true}`, string(out.Settings))
	assert.Equal(t, []string{tenantID}, inv.ids)

	_, err = uc.UpdateSettings(context.Background(), nil, "nope", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}
