package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
	"github.com/jhoicas/menu-admin-api/pkg/logger"
)

// Entry evento a auditar. Los campos vacíos se persisten como NULL.
type Entry struct {
	Level      string
	Action     string
	Message    string
	Details    map[string]interface{}
	UserID     string
	UserEmail  string
	TenantID   string
	TenantName string
	IPAddress  string
	UserAgent  string
}

// Recorder registra eventos de auditoría sin propagar errores.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

// Service sink de auditoría sobre LogRepository.
// Sin Start las escrituras son síncronas; con Start pasan por una cola acotada.
type Service struct {
	repo    repository.LogRepository
	log     *logger.Logger
	now     func() time.Time
	timeout time.Duration

	mu    sync.RWMutex
	queue chan *entity.Log
	done  chan struct{}
}

var _ Recorder = (*Service)(nil)

// NewService construye el servicio de auditoría.
func NewService(repo repository.LogRepository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, log: log.Component("audit"), now: time.Now, timeout: 3 * time.Second}
}

// SetWriteTimeout tiempo máximo por escritura (<= 0 mantiene el actual).
func (s *Service) SetWriteTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// Start arranca el escritor en segundo plano con una cola de tamaño size.
// Con la cola llena las entradas se descartan: Record nunca bloquea al request.
func (s *Service) Start(size int) {
	if size <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue != nil {
		return
	}
	s.queue = make(chan *entity.Log, size)
	s.done = make(chan struct{})
	go s.run(s.queue, s.done)
}

func (s *Service) run(queue <-chan *entity.Log, done chan<- struct{}) {
	defer close(done)
	for l := range queue {
		s.write(context.Background(), l)
	}
}

// Close deja de aceptar entradas y espera a que se vacíe la cola (o a ctx).
// Después de Close, Record vuelve a escribir de forma síncrona.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	queue, done := s.queue, s.done
	s.queue, s.done = nil, nil
	s.mu.Unlock()
	if queue == nil {
		return nil
	}
	close(queue)
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Record persiste la entrada. Un fallo de escritura solo se registra en el log de la app.
func (s *Service) Record(ctx context.Context, e Entry) {
	if e.Level == "" {
		e.Level = entity.LogLevelInfo
	}
	var details json.RawMessage
	if len(e.Details) > 0 {
		b, err := json.Marshal(e.Details)
		if err == nil {
			details = b
		}
	}
	l := &entity.Log{
		ID:         uuid.New().String(),
		Level:      e.Level,
		Action:     e.Action,
		Message:    e.Message,
		Details:    details,
		UserID:     optional(e.UserID),
		UserEmail:  optional(e.UserEmail),
		TenantID:   optional(e.TenantID),
		TenantName: optional(e.TenantName),
		IPAddress:  optional(e.IPAddress),
		UserAgent:  optional(e.UserAgent),
		CreatedAt:  s.now(),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.queue == nil {
		s.write(ctx, l)
		return
	}
	select {
	case s.queue <- l:
	default:
		s.log.Warn().Str("action", e.Action).Str("tenant_id", e.TenantID).Msg("cola de auditoría llena, entrada descartada")
	}
}

func (s *Service) write(ctx context.Context, l *entity.Log) {
	// La auditoría sobrevive a la cancelación del request que la originó.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	if err := s.repo.Create(ctx, l); err != nil {
		tenant := ""
		if l.TenantID != nil {
			tenant = *l.TenantID
		}
		s.log.Error().Err(err).Str("action", l.Action).Str("tenant_id", tenant).Msg("no se pudo registrar log de auditoría")
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Actor quién origina la acción auditada.
type Actor struct {
	UserID    string
	Email     string
	IPAddress string
	UserAgent string
}

// ActorFrom arma el actor desde el principal autenticado (puede ser nil) y los datos del request.
func ActorFrom(p *entity.Principal, ip, userAgent string) Actor {
	a := Actor{IPAddress: ip, UserAgent: userAgent}
	if p != nil {
		a.UserID, a.Email = p.ID, p.Email
	}
	return a
}

// Stamp copia los datos del actor en la entrada.
func (a Actor) Stamp(e Entry) Entry {
	e.UserID, e.UserEmail = a.UserID, a.Email
	e.IPAddress, e.UserAgent = a.IPAddress, a.UserAgent
	return e
}
