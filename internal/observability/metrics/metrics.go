package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "ecoforecast_"

	ResultSuccess    = "success"
	ResultError      = "error"
	ResultValidation = "validation"
	ResultNotFound   = "not_found"
	ResultInvalidID  = "invalid_id"
)

var (
	registerOnce sync.Once

	saveTotal     *prometheus.CounterVec
	saveLatency   *prometheus.HistogramVec
	lookupTotal   *prometheus.CounterVec
	lookupLatency *prometheus.HistogramVec
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
	reportTotal   *prometheus.CounterVec
)

// Init registra las métricas en el registry por defecto. Idempotente.
func Init() {
	registerOnce.Do(func() {
		saveTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "inputs_save_total",
				Help: "Total inputs submissions by period and result",
			},
			[]string{"period", "result"},
		)
		saveLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "inputs_save_latency_seconds",
				Help:    "Inputs save latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"period", "result"},
		)
		lookupTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "inputs_lookup_total",
				Help: "Total inputs lookups by operation and result",
			},
			[]string{"op", "result"},
		)
		lookupLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "inputs_lookup_latency_seconds",
				Help:    "Inputs lookup latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op", "result"},
		)
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)
		reportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reports_generated_total",
				Help: "Total generated reports by format and result",
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			saveTotal,
			saveLatency,
			lookupTotal,
			lookupLatency,
			httpRequests,
			httpLatency,
			reportTotal,
		)
	})
}

// ObserveSave registra un envío (periodo quarterly / four-quarter).
func ObserveSave(period, result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if saveTotal != nil {
		saveTotal.WithLabelValues(period, result).Inc()
	}
	if saveLatency != nil {
		saveLatency.WithLabelValues(period, result).Observe(duration.Seconds())
	}
}

// ObserveLookup registra una consulta (latest, latest_four_quarter, by_id).
func ObserveLookup(op, result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if lookupTotal != nil {
		lookupTotal.WithLabelValues(op, result).Inc()
	}
	if lookupLatency != nil {
		lookupLatency.WithLabelValues(op, result).Observe(duration.Seconds())
	}
}

// ObserveHTTP registra una petición por ruta registrada (no por path concreto).
func ObserveHTTP(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unknown"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

// ObserveReport registra la generación de un PDF o XLSX.
func ObserveReport(format string, ok bool) {
	if reportTotal == nil {
		return
	}
	result := ResultSuccess
	if !ok {
		result = ResultError
	}
	reportTotal.WithLabelValues(format, result).Inc()
}
