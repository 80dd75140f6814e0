package entity

import (
	"encoding/json"
	"time"
)

// Estados válidos para Tenant.
const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
	TenantStatusInactive  = "inactive"
)

// Planes SaaS disponibles (deben coincidir con el CHECK de la tabla tenants).
const (
	PlanFree       = "free"
	PlanBasic      = "basic"
	PlanPremium    = "premium"
	PlanEnterprise = "enterprise"
)

// Tenant representa un restaurante (unidad de particionado de datos).
// Es dueño de categorías, platos, subtags, usuarios, pedidos y logs (CASCADE en el esquema).
type Tenant struct {
	ID           string
	Name         string
	Slug         string
	Domain       string
	CustomDomain *string // nil = sin dominio personalizado
	Email        string
	Status       string // active, suspended, inactive
	Plan         string // free, basic, premium, enterprise
	Settings     json.RawMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Context devuelve la proyección mínima que se adjunta al request.
func (t *Tenant) Context() *TenantContext {
	return &TenantContext{
		ID:       t.ID,
		Name:     t.Name,
		Domain:   t.Domain,
		Settings: t.Settings,
		Plan:     t.Plan,
		Status:   t.Status,
	}
}

// TenantContext es el tenant resuelto para un request (id, nombre, dominio, settings, plan, estado).
type TenantContext struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Domain   string          `json:"domain"`
	Settings json.RawMessage `json:"settings,omitempty"`
	Plan     string          `json:"plan"`
	Status   string          `json:"status"`
}

// IsValidTenantStatus informa si s es un estado de tenant conocido.
func IsValidTenantStatus(s string) bool {
	switch s {
	case TenantStatusActive, TenantStatusSuspended, TenantStatusInactive:
		return true
	}
	return false
}

// IsValidPlan informa si p es un plan conocido.
func IsValidPlan(p string) bool {
	switch p {
	case PlanFree, PlanBasic, PlanPremium, PlanEnterprise:
		return true
	}
	return false
}
