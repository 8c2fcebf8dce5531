// Package metrics expone la telemetría Prometheus de las stores, del backend relacional y de la API.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/internal/domain"
)

const (
	ResultOK            = "ok"
	ResultNotFound      = "not_found"
	ResultInvalid       = "invalid"
	ResultDuplicate     = "unique_violation"
	ResultMissingColumn = "undefined_column"
	ResultTimeout       = "deadline_exceeded"
	ResultBackend       = "backend"
)

var _ store.Observer = (*Metrics)(nil)

// Metrics agrupa los colectores. Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	gatherer prometheus.Gatherer

	storeOps      *prometheus.CounterVec
	storeDuration *prometheus.HistogramVec
	rollbacks     *prometheus.CounterVec
	storeSize     *prometheus.GaugeVec
	decodeDropped *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New registra los colectores en reg con el prefijo dado (p. ej. "bione").
// Con reg nil se crea un registro propio, útil en tests.
func New(reg *prometheus.Registry, prefix string) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "bione"
	}
	f := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		storeOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Operaciones de las stores contra el backend por resultado.",
		}, []string{"store", "op", "result"}),
		storeDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duración de las llamadas al backend.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"store", "op"}),
		rollbacks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Subsystem: "store",
			Name:      "rollbacks_total",
			Help:      "Cambios optimistas revertidos tras un fallo del backend.",
		}, []string{"store", "op"}),
		storeSize: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prefix,
			Subsystem: "store",
			Name:      "items",
			Help:      "Registros publicados actualmente en cada store.",
		}, []string{"store"}),
		decodeDropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Subsystem: "postgres",
			Name:      "decode_dropped_total",
			Help:      "Filas descartadas por no poder decodificarse.",
		}, []string{"table"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Peticiones HTTP por ruta y status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveOp implementa store.Observer.
func (m *Metrics) ObserveOp(storeName, op string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.storeOps.WithLabelValues(storeName, op, Classify(err)).Inc()
	m.storeDuration.WithLabelValues(storeName, op).Observe(elapsed.Seconds())
}

// ObserveRollback implementa store.Observer.
func (m *Metrics) ObserveRollback(storeName, op string) {
	if m == nil {
		return
	}
	m.rollbacks.WithLabelValues(storeName, op).Inc()
}

// ObserveSize implementa store.Observer.
func (m *Metrics) ObserveSize(storeName string, n int) {
	if m == nil {
		return
	}
	m.storeSize.WithLabelValues(storeName).Set(float64(n))
}

// DecodeDropped cuenta una fila descartada de table.
func (m *Metrics) DecodeDropped(table string) {
	if m == nil {
		return
	}
	m.decodeDropped.WithLabelValues(table).Inc()
}

// ObserveHTTP registra una petición atendida.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler sirve el formato de exposición de Prometheus.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Classify reduce un error a una etiqueta de cardinalidad baja.
func Classify(err error) string {
	if err == nil {
		return ResultOK
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ResultTimeout
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ResultDuplicate
		case "42703":
			return ResultMissingColumn
		}
		return ResultBackend
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return ResultInvalid
	case errors.Is(err, domain.ErrDuplicate):
		return ResultDuplicate
	}
	return ResultBackend
}
