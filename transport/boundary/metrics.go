package boundary

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors an endpoint reports into.
type Metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	handlerErrors prometheus.Counter
}

// NewMetrics creates endpoint metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boundary_requests_total",
				Help: "Total requests handled at the boundary by method and status code.",
			},
			[]string{"method", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "boundary_request_duration_seconds",
				Help:    "Request duration at the boundary.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		handlerErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "boundary_handler_errors_total",
				Help: "Total handler invocations that failed and were converted to 500s.",
			},
		),
	}
	reg.MustRegister(m.requests, m.duration, m.handlerErrors)
	return m
}

func (m *Metrics) observe(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) handlerError() {
	if m == nil {
		return
	}
	m.handlerErrors.Inc()
}
