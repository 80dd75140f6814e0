package repository

import (
	"context"
	"time"

	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
)

// LogFilter filtros de consulta de logs de auditoría.
type LogFilter struct {
	Level    string
	Action   string
	UserID   string
	TenantID string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// LogStats agregados de logs.
type LogStats struct {
	Total    int
	Errors   int // error + critical
	Warnings int
	Last24h  int
}

// LogRepository puerto de persistencia de auditoría. Solo inserción y lectura.
type LogRepository interface {
	Create(ctx context.Context, log *entity.Log) error
	List(ctx context.Context, f LogFilter) ([]*entity.Log, int, error)
	Stats(ctx context.Context, since time.Time) (*LogStats, error)
	Since(ctx context.Context, since time.Time, limit int) ([]*entity.Log, error)
}
