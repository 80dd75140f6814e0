package entity

import (
	"encoding/json"
	"time"
)

// Niveles de log de auditoría.
const (
	LogLevelInfo     = "info"
	LogLevelWarning  = "warning"
	LogLevelError    = "error"
	LogLevelCritical = "critical"
)

// Acciones auditadas (deben coincidir con el CHECK de la tabla logs).
const (
	LogActionTenantCreated   = "tenant_created"
	LogActionTenantUpdated   = "tenant_updated"
	LogActionTenantSuspended = "tenant_suspended"
	LogActionTenantActivated = "tenant_activated"
	LogActionTenantDeleted   = "tenant_deleted"
	LogActionUserLogin       = "user_login"
	LogActionLoginFailed     = "login_failed"
	LogActionOrderDelivered  = "order_delivered"
	LogActionOrderDeleted    = "order_deleted"
	LogActionSettingsUpdated = "settings_updated"
)

// IsValidLogAction informa si a es una acción auditada conocida.
func IsValidLogAction(a string) bool {
	switch a {
	case LogActionTenantCreated, LogActionTenantUpdated, LogActionTenantSuspended,
		LogActionTenantActivated, LogActionTenantDeleted, LogActionUserLogin,
		LogActionLoginFailed, LogActionOrderDelivered, LogActionOrderDeleted,
		LogActionSettingsUpdated:
		return true
	}
	return false
}

// Log registro de auditoría. Append-only: nunca se modifica ni se elimina.
type Log struct {
	ID         string
	Level      string
	Action     string
	Message    string
	Details    json.RawMessage
	UserID     *string
	UserEmail  *string
	TenantID   *string
	TenantName *string
	IPAddress  *string
	UserAgent  *string
	CreatedAt  time.Time
}
