// Package metrics exposes Prometheus instrumentation for HTTP traffic and for
// cycle and tracking writes. Collectors live on a private registry so each
// Metrics value can be served and tested on its own.
//
// HTTP labels keep cardinality bounded:
//
//   - method: HTTP method verb
//   - path:   the registered fiber route (e.g. /api/cycles)
//   - status: numeric status code as a string
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cyclekeeper"

const (
	DailyLogCreated = "created"
	DailyLogMerged  = "merged"
)

// Metrics is safe for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	httpInflight prometheus.Gauge

	cyclesCreated       prometheus.Counter
	cyclesUpdated       prometheus.Counter
	dailyLogsSaved      *prometheus.CounterVec
	symptomReplacements prometheus.Counter
	predictions         *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		httpInflight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_inflight",
				Help: "Current number of in-flight HTTP requests.",
			},
		),
		cyclesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_created_total",
			Help:      "Cycles recorded.",
		}),
		cyclesUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_updated_total",
			Help:      "Cycles closed or edited.",
		}),
		dailyLogsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "daily_logs_saved_total",
			Help:      "Daily observations saved, by whether the day's log was created or merged.",
		}, []string{"result"}),
		symptomReplacements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "symptom_replacements_total",
			Help:      "Daily symptom sets replaced.",
		}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Predictions served, by current phase.",
		}, []string{"phase"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpLatency,
		m.httpInflight,
		m.cyclesCreated,
		m.cyclesUpdated,
		m.dailyLogsSaved,
		m.symptomReplacements,
		m.predictions,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Middleware counts requests and observes latency per route.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}

		start := time.Now()
		m.httpInflight.Inc()
		defer m.httpInflight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		method := c.Method()
		path := c.Route().Path
		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		m.httpLatency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) CycleCreated() {
	if m == nil {
		return
	}
	m.cyclesCreated.Inc()
}

func (m *Metrics) CycleUpdated() {
	if m == nil {
		return
	}
	m.cyclesUpdated.Inc()
}

func (m *Metrics) DailyLogSaved(created bool) {
	if m == nil {
		return
	}
	result := DailyLogMerged
	if created {
		result = DailyLogCreated
	}
	m.dailyLogsSaved.WithLabelValues(result).Inc()
}

func (m *Metrics) SymptomsReplaced() {
	if m == nil {
		return
	}
	m.symptomReplacements.Inc()
}

func (m *Metrics) PredictionServed(phase string) {
	if m == nil {
		return
	}
	m.predictions.WithLabelValues(phase).Inc()
}
