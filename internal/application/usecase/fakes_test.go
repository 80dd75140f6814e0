package usecase_test

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/menu-admin-api/internal/application/audit"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
)

// memCatalog implementa los tres repositorios del catálogo y el TxRunner en memoria.
// RunCatalog restaura el estado previo si fn falla.
type memCatalog struct {
	categories map[string]*entity.Category
	dishes     map[string]*entity.Dish
	subtags    map[string]*entity.Subtag
	txRuns     int
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		categories: map[string]*entity.Category{},
		dishes:     map[string]*entity.Dish{},
		subtags:    map[string]*entity.Subtag{},
	}
}

func (m *memCatalog) RunCatalog(_ context.Context, fn func(repository.CategoryRepository, repository.DishRepository, repository.SubtagRepository) error) error {
	m.txRuns++
	snapCat := map[string]entity.Category{}
	for k, v := range m.categories {
		snapCat[k] = *v
	}
	snapDish := map[string]entity.Dish{}
	for k, v := range m.dishes {
		cp := *v
		cp.SubtagIDs = append([]string(nil), v.SubtagIDs...)
		snapDish[k] = cp
	}
	snapSub := map[string]entity.Subtag{}
	for k, v := range m.subtags {
		snapSub[k] = *v
	}
	if err := fn(catRepo{m}, dishRepo{m}, subRepo{m}); err != nil {
		m.categories, m.dishes, m.subtags = map[string]*entity.Category{}, map[string]*entity.Dish{}, map[string]*entity.Subtag{}
		for k, v := range snapCat {
			v := v
			m.categories[k] = &v
		}
		for k, v := range snapDish {
			v := v
			m.dishes[k] = &v
		}
		for k, v := range snapSub {
			v := v
			m.subtags[k] = &v
		}
		return err
	}
	return nil
}

// ── categorías ────────────────────────────────────────────────────────────────

type catRepo struct{ m *memCatalog }

func (r catRepo) Create(_ context.Context, c *entity.Category) error {
	for _, x := range r.m.categories {
		if x.TenantID == c.TenantID && x.Slug == c.Slug {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.m.categories[c.ID] = &cp
	return nil
}

func (r catRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Category, error) {
	c, ok := r.m.categories[id]
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r catRepo) GetBySlug(_ context.Context, tenantID, slug string) (*entity.Category, error) {
	for _, c := range r.m.categories {
		if c.TenantID == tenantID && c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r catRepo) List(_ context.Context, tenantID string, activeOnly bool) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.m.categories {
		if c.TenantID == tenantID && (!activeOnly || c.IsActive) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r catRepo) Update(_ context.Context, c *entity.Category) error {
	cp := *c
	r.m.categories[c.ID] = &cp
	return nil
}

func (r catRepo) Delete(_ context.Context, _, id string) error {
	delete(r.m.categories, id)
	return nil
}

func (r catRepo) CountDishes(_ context.Context, tenantID, id string) (int, error) {
	n := 0
	for _, d := range r.m.dishes {
		if d.TenantID == tenantID && d.CategoryID == id {
			n++
		}
	}
	return n, nil
}

func (r catRepo) UpdateOrder(_ context.Context, tenantID, id string, order int) error {
	c, ok := r.m.categories[id]
	if !ok || c.TenantID != tenantID {
		return domain.ErrNotFound
	}
	c.Order = order
	return nil
}

// ── platos ────────────────────────────────────────────────────────────────────

type dishRepo struct{ m *memCatalog }

func (r dishRepo) Create(_ context.Context, d *entity.Dish) error {
	for _, x := range r.m.dishes {
		if x.TenantID == d.TenantID && x.Slug == d.Slug {
			return domain.ErrDuplicate
		}
	}
	cp := *d
	r.m.dishes[d.ID] = &cp
	return nil
}

func (r dishRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Dish, error) {
	d, ok := r.m.dishes[id]
	if !ok || d.TenantID != tenantID {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r dishRepo) GetBySlug(_ context.Context, tenantID, slug string) (*entity.Dish, error) {
	for _, d := range r.m.dishes {
		if d.TenantID == tenantID && d.Slug == slug {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r dishRepo) List(_ context.Context, f repository.DishFilter) ([]*entity.Dish, error) {
	var out []*entity.Dish
	for _, d := range r.m.dishes {
		if d.TenantID != f.TenantID || (f.CategoryID != "" && d.CategoryID != f.CategoryID) {
			continue
		}
		if (f.ActiveOnly && !d.IsActive) || (f.FeaturedOnly && !d.IsFeatured) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r dishRepo) Update(_ context.Context, d *entity.Dish) error {
	cp := *d
	r.m.dishes[d.ID] = &cp
	return nil
}

func (r dishRepo) Delete(_ context.Context, _, id string) error {
	delete(r.m.dishes, id)
	return nil
}

func (r dishRepo) UpdateOrder(_ context.Context, tenantID, id string, order int) error {
	d, ok := r.m.dishes[id]
	if !ok || d.TenantID != tenantID {
		return domain.ErrNotFound
	}
	d.Order = order
	return nil
}

func (r dishRepo) RemoveSubtag(_ context.Context, tenantID, subtagID string) (int64, error) {
	var n int64
	for _, d := range r.m.dishes {
		if d.TenantID != tenantID {
			continue
		}
		if ids, changed := d.WithoutSubtag(subtagID); changed {
			d.SubtagIDs = ids
			n++
		}
	}
	return n, nil
}

// ── subtags ───────────────────────────────────────────────────────────────────

type subRepo struct{ m *memCatalog }

func (r subRepo) Create(_ context.Context, s *entity.Subtag) error {
	for _, x := range r.m.subtags {
		if x.TenantID == s.TenantID && strings.EqualFold(x.Name, s.Name) {
			return domain.ErrDuplicate
		}
	}
	cp := *s
	r.m.subtags[s.ID] = &cp
	return nil
}

func (r subRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Subtag, error) {
	s, ok := r.m.subtags[id]
	if !ok || s.TenantID != tenantID {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r subRepo) GetByName(_ context.Context, tenantID, name string) (*entity.Subtag, error) {
	for _, s := range r.m.subtags {
		if s.TenantID == tenantID && strings.EqualFold(s.Name, name) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r subRepo) List(_ context.Context, tenantID string) ([]*entity.Subtag, error) {
	var out []*entity.Subtag
	for _, s := range r.m.subtags {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r subRepo) Update(_ context.Context, s *entity.Subtag) error {
	cp := *s
	r.m.subtags[s.ID] = &cp
	return nil
}

func (r subRepo) Delete(_ context.Context, _, id string) error {
	delete(r.m.subtags, id)
	return nil
}

func (r subRepo) CountByIDs(_ context.Context, tenantID string, ids []string) (int, error) {
	n := 0
	for _, id := range ids {
		if s, ok := r.m.subtags[id]; ok && s.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

// ── tenants ───────────────────────────────────────────────────────────────────

type memTenantRepo struct {
	repository.TenantRepository
	tenants map[string]*entity.Tenant
}

func (r *memTenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTenantRepo) UpdateSettings(_ context.Context, id string, s json.RawMessage) error {
	r.tenants[id].Settings = s
	return nil
}

type spyInvalidator struct{ ids []string }

func (s *spyInvalidator) Invalidate(_ context.Context, id string) { s.ids = append(s.ids, id) }

func (r *memTenantRepo) Stats(_ context.Context, id string, _ time.Time) (*entity.TenantStats, error) {
	if _, ok := r.tenants[id]; !ok {
		return nil, domain.ErrTenantNotFound
	}
	return &entity.TenantStats{TotalOrders: 7, Dishes: 12, Categories: 3, Users: 99}, nil
}

// ── users ─────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	repository.UserRepository
	users map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	m := &memUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, x := range m.users {
		if x.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.users {
		if u.TenantID != nil && *u.TenantID == tenantID {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memUserRepo) Delete(_ context.Context, tenantID, id string) error {
	u, ok := m.users[id]
	if !ok || u.TenantID == nil || *u.TenantID != tenantID {
		return domain.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUserRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	list, _ := m.ListByTenant(ctx, tenantID)
	return len(list), nil
}

// ── orders ────────────────────────────────────────────────────────────────────

type memOrderRepo struct {
	repository.OrderRepository
	orders []*entity.Order
	lastF  repository.OrderFilter
}

func (m *memOrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	m.lastF = f
	var out []*entity.Order
	for _, o := range m.orders {
		if o.TenantID == f.TenantID {
			out = append(out, o)
		}
	}
	total := len(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (r *memTenantRepo) Update(_ context.Context, t *entity.Tenant) error {
	for id, x := range r.tenants {
		if id != t.ID && x.Domain == t.Domain {
			return domain.ErrDuplicate
		}
	}
	if _, ok := r.tenants[t.ID]; !ok {
		return domain.ErrTenantNotFound
	}
	cp := *t
	r.tenants[t.ID] = &cp
	return nil
}

type spyRecorder struct{ entries []audit.Entry }

func (s *spyRecorder) Record(_ context.Context, e audit.Entry) { s.entries = append(s.entries, e) }
