package tenancy

import (
	"context"
	"strings"

	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
	"github.com/jhoicas/menu-admin-api/pkg/logger"
)

// Estados resolubles desde un dominio: suspended se resuelve para poder responder 403 en vez de 404.
var resolvableStatuses = []string{entity.TenantStatusActive, entity.TenantStatusSuspended}

// Resolver traduce dominios (o el tenant del usuario) al TenantContext que gobierna el request.
type Resolver struct {
	repo  repository.TenantRepository
	cache Cache // opcional
	log   *logger.Logger
}

// NewResolver construye el resolver. cache puede ser nil.
func NewResolver(repo repository.TenantRepository, cache Cache, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{repo: repo, cache: cache, log: log.Component("tenancy")}
}

// CandidateSlug devuelve la porción del dominio antes del primer punto.
func CandidateSlug(domainName string) string {
	if i := strings.IndexByte(domainName, '.'); i >= 0 {
		return domainName[:i]
	}
	return domainName
}

// Resolve resuelve un dominio (X-Tenant-Domain) a su tenant.
// Vacío: ErrTenantDomainRequired; sin coincidencia: ErrTenantNotFound; suspendido: ErrTenantSuspended.
func (r *Resolver) Resolve(ctx context.Context, domainName string) (*entity.TenantContext, error) {
	domainName = strings.ToLower(strings.TrimSpace(domainName))
	if domainName == "" {
		return nil, domain.ErrTenantDomainRequired
	}

	if tc := r.fromCache(ctx, domainName); tc != nil {
		return checkStatus(tc)
	}

	t, err := r.repo.FindByDomain(ctx, domainName, CandidateSlug(domainName), resolvableStatuses)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	tc := t.Context()
	r.toCache(ctx, domainName, tc)
	return checkStatus(tc)
}

// ResolvePublic variante para la consulta pública por dominio: solo tenants activos.
func (r *Resolver) ResolvePublic(ctx context.Context, domainName string) (*entity.Tenant, error) {
	domainName = strings.ToLower(strings.TrimSpace(domainName))
	if domainName == "" {
		return nil, domain.ErrTenantDomainRequired
	}
	t, err := r.repo.FindByDomain(ctx, domainName, CandidateSlug(domainName), []string{entity.TenantStatusActive})
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	return t, nil
}

// ForRequest aplica la prioridad de resolución:
// 1) header X-Tenant-Domain, 2) tenant ya adjunto por un middleware previo, 3) tenant del principal.
func (r *Resolver) ForRequest(ctx context.Context, header string, attached *entity.TenantContext, principal *entity.Principal) (*entity.TenantContext, error) {
	if strings.TrimSpace(header) != "" {
		return r.Resolve(ctx, header)
	}
	if attached != nil {
		return attached, nil
	}
	if principal != nil && principal.TenantID != "" {
		return r.ByID(ctx, principal.TenantID)
	}
	return nil, domain.ErrTenantDomainRequired
}

// ByID resuelve por ID aplicando la misma regla de estados que por dominio.
func (r *Resolver) ByID(ctx context.Context, id string) (*entity.TenantContext, error) {
	t, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Status == entity.TenantStatusInactive {
		return nil, domain.ErrTenantNotFound
	}
	return checkStatus(t.Context())
}

// Invalidate descarta la caché del tenant (cambio de estado, settings o borrado).
func (r *Resolver) Invalidate(ctx context.Context, tenantID string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx, tenantID); err != nil {
		r.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("no se pudo invalidar caché de tenant")
	}
}

func (r *Resolver) fromCache(ctx context.Context, domainName string) *entity.TenantContext {
	if r.cache == nil {
		return nil
	}
	tc, err := r.cache.Get(ctx, domainName)
	if err != nil {
		r.log.Warn().Err(err).Str("domain", domainName).Msg("caché de tenant no disponible")
		return nil
	}
	return tc
}

func (r *Resolver) toCache(ctx context.Context, domainName string, tc *entity.TenantContext) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, domainName, tc); err != nil {
		r.log.Warn().Err(err).Str("domain", domainName).Msg("no se pudo cachear tenant")
	}
}

func checkStatus(tc *entity.TenantContext) (*entity.TenantContext, error) {
	if tc.Status == entity.TenantStatusSuspended {
		return nil, domain.ErrTenantSuspended
	}
	return tc, nil
}
