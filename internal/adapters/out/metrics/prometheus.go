// Package metrics exports workflow events to Prometheus. Collectors live in
// the default registry, so they are created once per process no matter how
// many recorders are handed out.
package metrics

import (
	"sync"

	"maintenance/internal/core/ports"
	"maintenance/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const resultOK = "ok"

type collectors struct {
	transitions      *prometheus.CounterVec
	numberCollisions prometheus.Counter
	backlog          *prometheus.GaugeVec
}

var collectorsSingleton = sync.OnceValue(func() *collectors {
	return &collectors{
		transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maintenance",
			Subsystem: "orders",
			Name:      "transitions_total",
			Help:      "Order operations broken down by operation and result kind.",
		}, []string{"transition", "result"}),
		numberCollisions: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "maintenance",
			Subsystem: "orders",
			Name:      "number_collisions_total",
			Help:      "Order number allocations lost to a concurrent insert and retried.",
		}),
		backlog: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "maintenance",
			Subsystem: "orders",
			Name:      "backlog",
			Help:      "Current number of orders per status.",
		}, []string{"status"}),
	}
})

// PrometheusRecorder implements ports.MetricsRecorder.
type PrometheusRecorder struct {
	c *collectors
}

var _ ports.MetricsRecorder = PrometheusRecorder{}

func NewPrometheusRecorder() PrometheusRecorder {
	return PrometheusRecorder{c: collectorsSingleton()}
}

// ObserveTransition labels failures with their error kind so a spike of
// conflicts is told apart from a spike of forbidden calls.
func (r PrometheusRecorder) ObserveTransition(transition string, err error) {
	result := resultOK
	if err != nil {
		result = errs.KindOf(err).String()
	}
	r.c.transitions.WithLabelValues(transition, result).Inc()
}

func (r PrometheusRecorder) ObserveNumberCollision() {
	r.c.numberCollisions.Inc()
}

func (r PrometheusRecorder) SetBacklog(countByStatus map[string]int64) {
	for status, count := range countByStatus {
		r.c.backlog.WithLabelValues(status).Set(float64(count))
	}
}
