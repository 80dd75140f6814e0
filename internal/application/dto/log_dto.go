package dto

import (
	"encoding/json"
	"time"
)

// LogListRequest filtros del listado de logs.
type LogListRequest struct {
	Level    string `query:"level"`
	Action   string `query:"action"`
	UserID   string `query:"userId"`
	TenantID string `query:"tenantId"`
	From     string `query:"startDate"`
	To       string `query:"endDate"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

// LogResponse salida de un log de auditoría.
type LogResponse struct {
	ID         string          `json:"id"`
	Level      string          `json:"level"`
	Action     string          `json:"action"`
	Message    string          `json:"message"`
	Details    json.RawMessage `json:"details,omitempty"`
	UserID     *string         `json:"userId"`
	UserEmail  *string         `json:"userEmail"`
	TenantID   *string         `json:"tenantId"`
	TenantName *string         `json:"tenantName"`
	IPAddress  *string         `json:"ipAddress"`
	UserAgent  *string         `json:"userAgent"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// LogListResponse lista con total (limit/offset).
type LogListResponse struct {
	Items  []LogResponse `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// LogStatsResponse agregados de logs.
type LogStatsResponse struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Last24h  int `json:"last24h"`
}
