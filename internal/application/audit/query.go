package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
)

const (
	defaultLogLimit    = 100
	defaultActionLimit = 10
	maxLogLimit        = 500
	recentWindow       = 24 * time.Hour
)

// List consulta logs con filtros (solo SUPERADMIN a nivel HTTP).
func (s *Service) List(ctx context.Context, in dto.LogListRequest) (*dto.LogListResponse, error) {
	f := repository.LogFilter{
		Level:    in.Level,
		Action:   in.Action,
		UserID:   in.UserID,
		TenantID: in.TenantID,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	if f.Limit < 1 {
		f.Limit = defaultLogLimit
	}
	if f.Limit > maxLogLimit {
		f.Limit = maxLogLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	var err error
	if f.From, err = parseDate(in.From); err != nil {
		return nil, err
	}
	if f.To, err = parseDate(in.To); err != nil {
		return nil, err
	}

	logs, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.LogListResponse{Items: toLogResponses(logs), Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// Stats totales, errores (error + critical), warnings y últimas 24h.
func (s *Service) Stats(ctx context.Context) (*dto.LogStatsResponse, error) {
	st, err := s.repo.Stats(ctx, s.now().Add(-recentWindow))
	if err != nil {
		return nil, err
	}
	return &dto.LogStatsResponse{Total: st.Total, Errors: st.Errors, Warnings: st.Warnings, Last24h: st.Last24h}, nil
}

// Recent logs de las últimas 24 horas.
func (s *Service) Recent(ctx context.Context, limit int) ([]dto.LogResponse, error) {
	if limit < 1 || limit > maxLogLimit {
		limit = defaultLogLimit
	}
	logs, err := s.repo.Since(ctx, s.now().Add(-recentWindow), limit)
	if err != nil {
		return nil, err
	}
	return toLogResponses(logs), nil
}

// ByAction últimos logs de una acción, más recientes primero.
func (s *Service) ByAction(ctx context.Context, action string, limit int) ([]dto.LogResponse, error) {
	if !entity.IsValidLogAction(action) {
		return nil, fmt.Errorf("%w: acción %q", domain.ErrInvalidInput, action)
	}
	if limit < 1 {
		limit = defaultActionLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}
	logs, _, err := s.repo.List(ctx, repository.LogFilter{Action: action, Limit: limit})
	if err != nil {
		return nil, err
	}
	return toLogResponses(logs), nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: fecha inválida %q", domain.ErrInvalidInput, s)
}

func toLogResponses(logs []*entity.Log) []dto.LogResponse {
	out := make([]dto.LogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.LogResponse{
			ID:         l.ID,
			Level:      l.Level,
			Action:     l.Action,
			Message:    l.Message,
			Details:    l.Details,
			UserID:     l.UserID,
			UserEmail:  l.UserEmail,
			TenantID:   l.TenantID,
			TenantName: l.TenantName,
			IPAddress:  l.IPAddress,
			UserAgent:  l.UserAgent,
			CreatedAt:  l.CreatedAt,
		})
	}
	return out
}
