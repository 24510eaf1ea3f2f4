package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa os coletores HTTP e de banco de dados num registry próprio.
type Metrics struct {
	registry   *prometheus.Registry
	httpReqCnt *prometheus.CounterVec
	httpDur    *prometheus.HistogramVec
	httpInfl   prometheus.Gauge
	dbQueryCnt *prometheus.CounterVec
	dbQueryDur *prometheus.HistogramVec
}

// New registra os coletores sob o namespace informado.
func New(namespace string) *Metrics {
	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: r,
		httpReqCnt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
		}, []string{"method", "route", "status"}),
		httpDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds", Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		httpInfl: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "http_requests_inflight",
		}),
		dbQueryCnt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "db_statements_total",
		}, []string{"op", "status"}),
		dbQueryDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "db_statement_duration_seconds", Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}
	r.MustRegister(m.httpReqCnt, m.httpDur, m.httpInfl, m.dbQueryCnt, m.dbQueryDur)
	return m
}

// Middleware mede cada requisição pela rota registrada no fiber.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.httpInfl.Inc()
		start := time.Now()
		err := c.Next()
		m.httpInfl.Dec()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		code := strconv.Itoa(status)
		m.httpReqCnt.WithLabelValues(c.Method(), route, code).Inc()
		m.httpDur.WithLabelValues(c.Method(), route, code).Observe(time.Since(start).Seconds())
		return err
	}
}

// ObserveStatement registra uma instrução SQL executada (op: query, execute, begin, commit, rollback).
func (m *Metrics) ObserveStatement(op string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryCnt.WithLabelValues(op, status).Inc()
	m.dbQueryDur.WithLabelValues(op).Observe(d.Seconds())
}

// Handler expõe o registry no formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry devolve o registry (usado em testes).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
