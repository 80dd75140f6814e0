package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TenantResponse salida de un tenant.
type TenantResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Domain       string          `json:"domain"`
	CustomDomain *string         `json:"customDomain"`
	Email        string          `json:"email"`
	Status       string          `json:"status"`
	Plan         string          `json:"plan"`
	Settings     json.RawMessage `json:"settings,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// PublicTenantResponse datos públicos de un tenant (consulta por dominio).
type PublicTenantResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Domain   string          `json:"domain"`
	Plan     string          `json:"plan"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

// CreateTenantRequest alta de tenant con su usuario ADMIN. Subdomain es alias de Slug.
type CreateTenantRequest struct {
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Subdomain     string          `json:"subdomain"`
	Domain        string          `json:"domain"`
	CustomDomain  string          `json:"customDomain"`
	Email         string          `json:"email"`
	Plan          string          `json:"plan"`
	Settings      json.RawMessage `json:"settings"`
	AdminEmail    string          `json:"adminEmail"`
	AdminPassword string          `json:"adminPassword"`
	AdminName     string          `json:"adminName"`
}

// CreateTenantResponse tenant creado y su administrador.
type CreateTenantResponse struct {
	Tenant TenantResponse `json:"tenant"`
	Admin  UserResponse   `json:"admin"`
}

// UpdateTenantRequest cambios generales del tenant. Campos nil no se tocan;
// CustomDomain vacío lo elimina.
type UpdateTenantRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Plan         *string `json:"plan"`
	Domain       *string `json:"domain"`
	CustomDomain *string `json:"customDomain"`
}

// UpdateTenantStatusRequest cambio de estado por superadmin.
type UpdateTenantStatusRequest struct {
	Status string `json:"status"`
}

// TenantListRequest filtros del listado de tenants.
type TenantListRequest struct {
	PageRequest
	Status string `query:"status"`
	Plan   string `query:"plan"`
	Search string `query:"search"`
}

// TenantStatsResponse métricas del tenant.
type TenantStatsResponse struct {
	TotalOrders      int             `json:"totalOrders"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	OrdersThisMonth  int             `json:"ordersThisMonth"`
	RevenueThisMonth decimal.Decimal `json:"revenueThisMonth"`
	Users            int             `json:"users"`
	Dishes           int             `json:"dishes"`
	Categories       int             `json:"categories"`
}
