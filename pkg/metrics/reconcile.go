package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records merge/aggregate pipeline runs.
type PipelineMetrics struct {
	duration         *prometheus.HistogramVec
	runs             *prometheus.CounterVec
	merged           prometheus.Counter
	duplicates       prometheus.Counter
	vendorFallbacks  prometheus.Counter
	recordsSkipped   *prometheus.CounterVec
}

// NewPipelineMetrics registers the pipeline metrics on the provided registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reconcile_run_duration_seconds",
		Help:    "Duration of reconciliation pipeline runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"trigger"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconcile_runs_total",
		Help: "Reconciliation pipeline runs by outcome.",
	}, []string{"trigger", "outcome"})
	merged := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_transactions_merged_total",
		Help: "Transactions surviving the merge step.",
	})
	duplicates := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_duplicates_dropped_total",
		Help: "Local transactions dropped in favor of their synced mirror.",
	})
	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_vendor_fallbacks_total",
		Help: "Raw vendor names that resolved to the default vendor.",
	})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconcile_records_skipped_total",
		Help: "Source records skipped during normalization.",
	}, []string{"source"})
	reg.MustRegister(duration, runs, merged, duplicates, fallbacks, skipped)
	return &PipelineMetrics{
		duration:        duration,
		runs:            runs,
		merged:          merged,
		duplicates:      duplicates,
		vendorFallbacks: fallbacks,
		recordsSkipped:  skipped,
	}
}

// ObserveRun records one pipeline run.
func (p *PipelineMetrics) ObserveRun(trigger string, duration time.Duration, err error) {
	if p == nil || p.duration == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	p.duration.WithLabelValues(normalizeLabel(trigger)).Observe(duration.Seconds())
	p.runs.WithLabelValues(normalizeLabel(trigger), outcome).Inc()
}

// AddMerged counts transactions that survived the merge.
func (p *PipelineMetrics) AddMerged(n int) {
	if p == nil || p.merged == nil {
		return
	}
	p.merged.Add(float64(n))
}

// AddDuplicates counts local rows superseded by synced mirrors.
func (p *PipelineMetrics) AddDuplicates(n int) {
	if p == nil || p.duplicates == nil {
		return
	}
	p.duplicates.Add(float64(n))
}

// IncVendorFallback counts an unresolved vendor name.
func (p *PipelineMetrics) IncVendorFallback() {
	if p == nil || p.vendorFallbacks == nil {
		return
	}
	p.vendorFallbacks.Inc()
}

// IncSkipped counts a malformed source record that was skipped.
func (p *PipelineMetrics) IncSkipped(source string) {
	if p == nil || p.recordsSkipped == nil {
		return
	}
	p.recordsSkipped.WithLabelValues(normalizeLabel(source)).Inc()
}

// QueueMetrics records push retry queue activity.
type QueueMetrics struct {
	depth      prometheus.Gauge
	deliveries *prometheus.CounterVec
	drainTime  prometheus.Histogram
}

// NewQueueMetrics registers the queue metrics on the provided registerer.
func NewQueueMetrics(reg prometheus.Registerer) *QueueMetrics {
	if reg == nil {
		return &QueueMetrics{}
	}
	depth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "push_queue_depth",
		Help: "Pending items in the push retry queue.",
	})
	deliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "push_queue_deliveries_total",
		Help: "Delivery attempts by outcome.",
	}, []string{"outcome"})
	drainTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "push_queue_drain_duration_seconds",
		Help:    "Duration of full drain cycles in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(depth, deliveries, drainTime)
	return &QueueMetrics{depth: depth, deliveries: deliveries, drainTime: drainTime}
}

// SetDepth records the current pending item count.
func (q *QueueMetrics) SetDepth(n int) {
	if q == nil || q.depth == nil {
		return
	}
	q.depth.Set(float64(n))
}

// IncDelivery records one delivery attempt outcome.
func (q *QueueMetrics) IncDelivery(outcome string) {
	if q == nil || q.deliveries == nil {
		return
	}
	q.deliveries.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveDrain records the duration of a drain cycle.
func (q *QueueMetrics) ObserveDrain(duration time.Duration) {
	if q == nil || q.drainTime == nil {
		return
	}
	q.drainTime.Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return strings.ReplaceAll(value, " ", "_")
}
