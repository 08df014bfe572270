package metrics

import (
	"strconv"
	"sync"

	"github.com/arloliu/fleetslot/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	planDuration *prometheus.HistogramVec
	planSize     *prometheus.HistogramVec

	validations *prometheus.CounterVec
	canAssign   prometheus.Histogram

	commitDuration prometheus.Histogram
	assignedTotal  prometheus.Counter
	failedTotal    prometheus.Counter
	conflicts      *prometheus.CounterVec
	rollbacks      prometheus.Counter

	devicesGauge         prometheus.Gauge
	availableClonesGauge prometheus.Gauge
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "fleetslot" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "fleetslot"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.planDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "planner",
			Name:      "plan_duration_seconds",
			Help:      "Time spent computing one assignment plan by strategy.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"strategy"})

		p.planSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "planner",
			Name:      "plan_size",
			Help:      "Number of placements in one computed plan by strategy.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}, []string{"strategy"})

		p.validations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "validator",
			Name:      "validations_total",
			Help:      "Total feasibility validations by outcome.",
		}, []string{"valid"})

		p.canAssign = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "validator",
			Name:      "can_assign",
			Help:      "Feasible assignment counts reported by the validator.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		})

		p.commitDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "committer",
			Name:      "batch_duration_seconds",
			Help:      "Transaction time of one batch commit.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		})

		p.assignedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "committer",
			Name:      "assigned_total",
			Help:      "Total committed account assignments.",
		})

		p.failedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "committer",
			Name:      "failed_total",
			Help:      "Total per-pairing assignment failures.",
		})

		p.conflicts = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "committer",
			Name:      "conflicts_total",
			Help:      "Conditional updates lost to racing callers by kind.",
		}, []string{"kind"})

		p.rollbacks = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "committer",
			Name:      "rollbacks_total",
			Help:      "Whole-batch transaction rollbacks.",
		})

		p.devicesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "capacity",
			Name:      "devices",
			Help:      "Distinct devices in the last capacity snapshot.",
		})

		p.availableClonesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "capacity",
			Name:      "available_clones",
			Help:      "Fleet-wide available clones in the last capacity snapshot.",
		})

		collectors := []prometheus.Collector{
			p.planDuration, p.planSize,
			p.validations, p.canAssign,
			p.commitDuration, p.assignedTotal, p.failedTotal, p.conflicts, p.rollbacks,
			p.devicesGauge, p.availableClonesGauge,
		}
		for _, c := range collectors {
			// Best-effort registration: duplicate registration in tests is
			// tolerated rather than fatal.
			_ = p.reg.Register(c)
		}
	})
}

// RecordPlanDuration records the time taken to compute one plan.
func (p *PrometheusCollector) RecordPlanDuration(strategy string, duration float64) {
	p.ensureRegistered()
	p.planDuration.WithLabelValues(strategy).Observe(duration)
}

// RecordPlanSize records the number of placements in a computed plan.
func (p *PrometheusCollector) RecordPlanSize(strategy string, size int) {
	p.ensureRegistered()
	p.planSize.WithLabelValues(strategy).Observe(float64(size))
}

// RecordValidation records a validation outcome.
func (p *PrometheusCollector) RecordValidation(valid bool, canAssign int) {
	p.ensureRegistered()
	p.validations.WithLabelValues(strconv.FormatBool(valid)).Inc()
	p.canAssign.Observe(float64(canAssign))
}

// RecordBatchCommit records the outcome of one batch commit.
func (p *PrometheusCollector) RecordBatchCommit(assigned, failed int, duration float64) {
	p.ensureRegistered()
	p.commitDuration.Observe(duration)
	p.assignedTotal.Add(float64(assigned))
	p.failedTotal.Add(float64(failed))
}

// RecordConflict records a lost race on a row-conditional update.
func (p *PrometheusCollector) RecordConflict(kind string) {
	p.ensureRegistered()
	p.conflicts.WithLabelValues(kind).Inc()
}

// RecordRollback records a whole-batch transaction rollback.
func (p *PrometheusCollector) RecordRollback() {
	p.ensureRegistered()
	p.rollbacks.Inc()
}

// RecordCapacitySnapshot sets the fleet-wide capacity gauges.
func (p *PrometheusCollector) RecordCapacitySnapshot(devices, availableClones int) {
	p.ensureRegistered()
	p.devicesGauge.Set(float64(devices))
	p.availableClonesGauge.Set(float64(availableClones))
}
