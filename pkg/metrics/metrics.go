package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса в собственном реестре
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueries       *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge
	dbIdleConns     prometheus.Gauge
	dbWaitCount     prometheus.Gauge

	reservationsCreated  prometheus.Counter
	reservationsUpdated  prometheus.Counter
	reservationsRejected *prometheus.CounterVec
	overlapRacesLost     prometheus.Counter
}

// New создает и регистрирует метрики с префиксом serviceName
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "db_queries_total",
			Help:      "Count of database queries by operation and result.",
		}, []string{"operation", "result"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_open_connections",
			Help:      "Open database connections.",
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_in_use_connections",
			Help:      "Database connections in use.",
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_idle_connections",
			Help:      "Idle database connections.",
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for.",
		}),
		reservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reservations_created_total",
			Help:      "Count of reservations created.",
		}),
		reservationsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reservations_updated_total",
			Help:      "Count of reservations edited by venue staff.",
		}),
		reservationsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reservations_rejected_total",
			Help:      "Count of reservation requests rejected by the conflict validator.",
		}, []string{"reason"}),
		overlapRacesLost: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reservation_overlap_races_lost_total",
			Help:      "Count of inserts rejected by the storage exclusion constraint after passing the application check.",
		}),
	}

	reg.MustRegister(
		m.httpRequests, m.httpDuration,
		m.dbQueries, m.dbQueryDuration,
		m.dbOpenConns, m.dbInUseConns, m.dbIdleConns, m.dbWaitCount,
		m.reservationsCreated, m.reservationsUpdated, m.reservationsRejected, m.overlapRacesLost,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler HTTP обработчик для /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает реестр (для тестов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest учитывает HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveDBQuery учитывает запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, d time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.dbQueries.WithLabelValues(operation, result).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	m.dbOpenConns.Set(float64(open))
	m.dbInUseConns.Set(float64(inUse))
	m.dbIdleConns.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
}

// IncReservationCreated учитывает созданное бронирование
func (m *Metrics) IncReservationCreated() {
	m.reservationsCreated.Inc()
}

// IncReservationUpdated учитывает измененное бронирование
func (m *Metrics) IncReservationUpdated() {
	m.reservationsUpdated.Inc()
}

// IncReservationRejected учитывает отказ валидатора
func (m *Metrics) IncReservationRejected(reason string) {
	m.reservationsRejected.WithLabelValues(reason).Inc()
}

// IncOverlapRaceLost учитывает срабатывание ограничения исключения в БД
func (m *Metrics) IncOverlapRaceLost() {
	m.overlapRacesLost.Inc()
}
