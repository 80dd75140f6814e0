package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jhoicas/menu-admin-api/internal/application/orders"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ orders.Metrics = (*Metrics)(nil)

// Metrics colectores Prometheus de la API: negocio de pedidos y tráfico HTTP.
type Metrics struct {
	gatherer prometheus.Gatherer

	ordersCreated   *prometheus.CounterVec
	ordersDelivered *prometheus.CounterVec
	numberRetries   prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registra los colectores en reg bajo el namespace dado.
// reg nil usa un registro propio (tests) con los colectores de proceso y Go.
func New(namespace string, reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		ordersCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Total de pedidos creados por tenant",
		}, []string{"tenant_id"}),
		ordersDelivered: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_delivered_total",
			Help:      "Total de pedidos marcados como entregados por tenant",
		}, []string{"tenant_id"}),
		numberRetries: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_number_retries_total",
			Help:      "Reintentos de asignación de número de pedido por colisión",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de requests HTTP",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de requests HTTP en segundos",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// OrderCreated incrementa el contador de pedidos creados.
func (m *Metrics) OrderCreated(tenantID string) {
	m.ordersCreated.WithLabelValues(tenantID).Inc()
}

// OrderDelivered incrementa el contador de entregas.
func (m *Metrics) OrderDelivered(tenantID string) {
	m.ordersDelivered.WithLabelValues(tenantID).Inc()
}

// OrderNumberRetry cuenta una colisión de número de pedido.
func (m *Metrics) OrderNumberRetry() {
	m.numberRetries.Inc()
}

// ObserveHTTP registra un request atendido. route es el patrón de la ruta, no el path real.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el formato de texto de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
