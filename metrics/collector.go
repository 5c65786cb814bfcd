package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wippyai/quest-go/config"
	"github.com/wippyai/quest-go/errors"
	"github.com/wippyai/quest-go/quest"
	"github.com/wippyai/quest-go/resource"
)

// Outcome label values for guarded calls.
const (
	OutcomeOK                    = "ok"
	OutcomeEngineFault           = "engine_fault"
	OutcomeContractViolation     = "contract_violation"
	OutcomeInternalInconsistency = "internal_inconsistency"
	OutcomeOther                 = "other"
)

// Collector records bridge metrics on its own registry. It satisfies
// quest.Metrics.
type Collector struct {
	registry *prometheus.Registry

	calls     *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	faults    *prometheus.CounterVec
	live      *prometheus.GaugeVec
	allocated *prometheus.CounterVec
	released  *prometheus.CounterVec
}

// NewCollector registers every metric on registry, or on a fresh registry
// when registry is nil.
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = config.DefaultMetricsNamespace
	}
	buckets := cfg.DurationBuckets
	if len(buckets) == 0 {
		buckets = config.DefaultDurationBuckets
	}

	c := &Collector{
		registry: registry,
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "engine",
			Name:      "calls_total",
			Help:      "Guarded engine calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: "engine",
			Name:      "call_duration_seconds",
			Help:      "Wall time of guarded engine calls.",
			Buckets:   buckets,
		}, []string{"op"}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "engine",
			Name:      "faults_total",
			Help:      "Engine faults recovered, by the engine function that raised them.",
		}, []string{"func"}),
		live: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: "registers",
			Name:      "live",
			Help:      "Registers currently allocated.",
		}, []string{"kind"}),
		allocated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "registers",
			Name:      "allocated_total",
			Help:      "Registers allocated.",
		}, []string{"kind"}),
		released: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "registers",
			Name:      "released_total",
			Help:      "Registers deallocated.",
		}, []string{"kind"}),
	}

	registry.MustRegister(c.calls, c.duration, c.faults, c.live, c.allocated, c.released)
	return c
}

// Registry returns the registry the collector writes to.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveCall records one guarded call.
func (c *Collector) ObserveCall(op string, elapsed time.Duration, err error) {
	c.calls.WithLabelValues(op, outcome(err)).Inc()
	c.duration.WithLabelValues(op).Observe(elapsed.Seconds())

	if e, ok := err.(*errors.Error); ok && e.Kind == errors.KindEngineFault {
		fn := e.Func
		if fn == "" {
			fn = op
		}
		c.faults.WithLabelValues(fn).Inc()
	}
}

// OnResourceEvent tracks register allocation from the environment's table.
func (c *Collector) OnResourceEvent(e resource.Event) {
	kind := registerKind(e.Tag)
	switch e.Type {
	case resource.EventCreated:
		c.allocated.WithLabelValues(kind).Inc()
		c.live.WithLabelValues(kind).Inc()
	case resource.EventDropped:
		c.released.WithLabelValues(kind).Inc()
		c.live.WithLabelValues(kind).Dec()
	}
}

// Handler serves the collector's registry in the Prometheus exposition
// format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

func outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	k, ok := errors.KindOf(err)
	if !ok {
		return OutcomeOther
	}
	switch k {
	case errors.KindEngineFault:
		return OutcomeEngineFault
	case errors.KindContractViolation:
		return OutcomeContractViolation
	case errors.KindInternalInconsistency:
		return OutcomeInternalInconsistency
	default:
		return OutcomeOther
	}
}

func registerKind(tag resource.Tag) string {
	switch tag {
	case quest.TagStateVector:
		return "statevector"
	case quest.TagDensity:
		return "density"
	default:
		return "unknown"
	}
}

var _ quest.Metrics = (*Collector)(nil)
