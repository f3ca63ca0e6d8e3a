// Package prometheus records pipeline run metrics in a private registry and
// exports them in the node-exporter textfile format after each run.
package prometheus

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// MetricsCollector registers metrics and exports the registry.
type MetricsCollector interface {
	RegisterCounter(name, help string, labels ...string) CounterVec
	RegisterGauge(name, help string, labels ...string) GaugeVec
	RegisterHistogram(name, help string, buckets []float64, labels ...string) HistogramVec
	// WriteTextfile atomically writes every registered metric to path.
	WriteTextfile(path string) error
	Gatherer() prometheus.Gatherer
}

type CounterVec interface {
	WithLabelValues(lvs ...string) Counter
}

type Counter interface {
	Inc()
	Add(delta float64)
}

type GaugeVec interface {
	WithLabelValues(lvs ...string) Gauge
}

type Gauge interface {
	Set(value float64)
	Inc()
	Add(delta float64)
}

type HistogramVec interface {
	WithLabelValues(lvs ...string) Histogram
}

type Histogram interface {
	Observe(value float64)
}

// CollectorConfig holds configuration for the collector.
type CollectorConfig struct {
	Namespace string
	// ConstLabels are attached to every metric, e.g. the host a run used.
	ConstLabels map[string]string
	// HistogramBuckets is used when RegisterHistogram gets nil buckets.
	HistogramBuckets []float64
}

var defaultHistogramBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

type registryCollector struct {
	registry *prometheus.Registry
	config   CollectorConfig
	byName   map[string]prometheus.Collector
	mu       sync.Mutex
	logger   logging.Logger
}

// NewMetricsCollector creates a collector backed by a fresh registry, so a
// textfile holds only sdfmine metrics.
func NewMetricsCollector(cfg CollectorConfig, logger logging.Logger) (MetricsCollector, error) {
	if cfg.Namespace == "" {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "metrics namespace is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if cfg.HistogramBuckets == nil {
		cfg.HistogramBuckets = defaultHistogramBuckets
	}

	return &registryCollector{
		registry: prometheus.NewRegistry(),
		config:   cfg,
		byName:   make(map[string]prometheus.Collector),
		logger:   logger,
	}, nil
}

func (c *registryCollector) Gatherer() prometheus.Gatherer { return c.registry }

func (c *registryCollector) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New(errors.ErrCodeIOFailed, "failed to create metrics directory").
				WithDetail("path=" + dir).WithCause(err)
		}
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return errors.New(errors.ErrCodeIOFailed, "failed to write metrics textfile").
			WithDetail("path=" + path).WithCause(err)
	}
	return nil
}

// register returns the collector already registered under name when there
// is one, so repeated registration shares a single vector.
func (c *registryCollector) register(name string, fresh prometheus.Collector) (prometheus.Collector, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fq := prometheus.BuildFQName(c.config.Namespace, "", name)
	if existing, ok := c.byName[fq]; ok {
		return existing, nil
	}
	if err := c.registry.Register(fresh); err != nil {
		return nil, err
	}
	c.byName[fq] = fresh
	return fresh, nil
}

// registerVec registers fresh and returns it as V, or ok=false when the name
// is taken by another metric type or registration fails.
func registerVec[V prometheus.Collector](c *registryCollector, kind, name string, fresh V) (V, bool) {
	var zero V
	registered, err := c.register(name, fresh)
	if err != nil {
		c.logger.Error("metric registration failed",
			logging.String("name", name), logging.String("type", kind), logging.Err(err))
		return zero, false
	}
	vec, ok := registered.(V)
	if !ok {
		c.logger.Warn("metric type mismatch", logging.String("name", name), logging.String("type", kind))
		return zero, false
	}
	return vec, true
}

func (c *registryCollector) RegisterCounter(name, help string, labels ...string) CounterVec {
	fresh := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   c.config.Namespace,
		Name:        name,
		Help:        help,
		ConstLabels: c.config.ConstLabels,
	}, labels)
	if vec, ok := registerVec(c, "counter", name, fresh); ok {
		return counterVec{vec}
	}
	return noopCounterVec{}
}

func (c *registryCollector) RegisterGauge(name, help string, labels ...string) GaugeVec {
	fresh := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   c.config.Namespace,
		Name:        name,
		Help:        help,
		ConstLabels: c.config.ConstLabels,
	}, labels)
	if vec, ok := registerVec(c, "gauge", name, fresh); ok {
		return gaugeVec{vec}
	}
	return noopGaugeVec{}
}

func (c *registryCollector) RegisterHistogram(name, help string, buckets []float64, labels ...string) HistogramVec {
	if buckets == nil {
		buckets = c.config.HistogramBuckets
	}
	fresh := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   c.config.Namespace,
		Name:        name,
		Help:        help,
		ConstLabels: c.config.ConstLabels,
		Buckets:     buckets,
	}, labels)
	if vec, ok := registerVec(c, "histogram", name, fresh); ok {
		return histogramVec{vec}
	}
	return noopHistogramVec{}
}

// ─────────────────────────────────────────────────────────────────────────────
// Adapters
// ─────────────────────────────────────────────────────────────────────────────

type counterVec struct{ *prometheus.CounterVec }

func (v counterVec) WithLabelValues(lvs ...string) Counter { return v.CounterVec.WithLabelValues(lvs...) }

type gaugeVec struct{ *prometheus.GaugeVec }

func (v gaugeVec) WithLabelValues(lvs ...string) Gauge { return v.GaugeVec.WithLabelValues(lvs...) }

type histogramVec struct{ *prometheus.HistogramVec }

func (v histogramVec) WithLabelValues(lvs ...string) Histogram {
	return v.HistogramVec.WithLabelValues(lvs...)
}

// The noop vectors stand in for a metric that could not be registered.
type noopCounterVec struct{}

func (noopCounterVec) WithLabelValues(...string) Counter { return noopMetric{} }

type noopGaugeVec struct{}

func (noopGaugeVec) WithLabelValues(...string) Gauge { return noopMetric{} }

type noopHistogramVec struct{}

func (noopHistogramVec) WithLabelValues(...string) Histogram { return noopMetric{} }

type noopMetric struct{}

func (noopMetric) Inc()            {}
func (noopMetric) Add(float64)     {}
func (noopMetric) Set(float64)     {}
func (noopMetric) Observe(float64) {}

//Personal.AI order the ending
