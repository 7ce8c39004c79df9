package metrics

import (
	"sync"
	"time"

	"mercator-hq/courier/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch labels.
const (
	DispatchMethod = "method"
	DispatchRaw    = "raw"
	DispatchNone   = "none"
)

// Outcome labels.
const (
	OutcomeSuccess     = "success"
	OutcomeEmpty       = "empty"
	OutcomeClientError = "client_error"
	OutcomeRemoteError = "remote_error"
	OutcomeError       = "error"
)

// Collector owns the relay's Prometheus metrics. A nil *Collector is valid
// and records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	requestMetrics  *RequestMetrics
	upstreamMetrics *UpstreamMetrics

	// Bounds the upstream status label set
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a collector registered with registry. If registry is
// nil, a fresh registry is created.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		cfg.RequestDurationBuckets = config.DefaultRequestDurationBuckets
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		requestMetrics:     NewRequestMetrics(cfg, registry),
		upstreamMetrics:    NewUpstreamMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(64),
	}
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.IsEnabled()
}

// RecordRequest records a completed relay call.
//
// Parameters:
//   - dispatch: DispatchMethod, DispatchRaw or DispatchNone
//   - outcome: one of the Outcome* labels
//   - duration: total handling time
func (c *Collector) RecordRequest(dispatch, outcome string, duration time.Duration) {
	if !c.enabled() {
		return
	}

	c.requestMetrics.RecordRequest(dispatch, outcome, duration)
}

// RecordUpstreamError records a failure reported by the platform.
func (c *Collector) RecordUpstreamError(dispatch string, status int) {
	if !c.enabled() {
		return
	}

	label := statusLabel(status)
	if !c.cardinalityLimiter.Allow(label) {
		label = "other"
	}
	c.upstreamMetrics.RecordError(dispatch, label)
}

// RecordEmptyResult records a decode failure answered with an empty result.
func (c *Collector) RecordEmptyResult(method string) {
	if !c.enabled() {
		return
	}

	c.upstreamMetrics.RecordEmptyResult(method)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter caps the number of distinct label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a limiter with the given maximum.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether labelSet is known or still fits under the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
