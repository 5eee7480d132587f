// Package metrics provides Prometheus metrics for the career simulator.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "careersim"
	defaultSubsystem = "engine"
)

// Manager owns every collector the simulator records into.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Season orchestration
	seasonsSimulated prometheus.Counter
	seasonDuration   prometheus.Histogram
	seasonErrors     *prometheus.CounterVec
	activeAthletes   prometheus.Gauge
	retirements      prometheus.Counter

	// Transfer market
	offersGenerated  *prometheus.CounterVec
	offersDropped    *prometheus.CounterVec
	clubsEvaluated   prometheus.Histogram
	offersAccepted   *prometheus.CounterVec
	ledgerCommits    prometheus.Counter
	ledgerRejections prometheus.Counter

	// Availability and development
	injuries        *prometheus.CounterVec
	setbacks        prometheus.Counter
	suspensions     *prometheus.CounterVec
	traitEvents     *prometheus.CounterVec
	roleTransitions *prometheus.CounterVec
	trainingBlocked prometheus.Counter
	overallDelta    prometheus.Histogram

	// Season job pipeline
	queueDepth     prometheus.Gauge
	queueRejected  *prometheus.CounterVec
	jobsProcessed  *prometheus.CounterVec
	jobLatency     prometheus.Histogram
	workersRunning prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.seasonsSimulated = auto.NewCounter(m.counterOpts("seasons_simulated_total",
		"Total number of athlete seasons simulated"))
	m.seasonDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "season_duration_milliseconds",
		Help:        "Wall time spent simulating one athlete season",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
	m.seasonErrors = auto.NewCounterVec(m.counterOpts("season_errors_total",
		"Season ticks rejected, by reason"), []string{"reason"})
	m.activeAthletes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "active_athletes",
		Help:        "Athletes currently tracked and not retired",
		ConstLabels: m.constLabels,
	})
	m.retirements = auto.NewCounter(m.counterOpts("retirements_total",
		"Athletes retired by the orchestrator"))

	m.offersGenerated = auto.NewCounterVec(m.counterOpts("offers_generated_total",
		"Offers surviving negotiation, by kind"), []string{"kind"})
	m.offersDropped = auto.NewCounterVec(m.counterOpts("offers_dropped_total",
		"Candidate offers discarded, by reason"), []string{"reason"})
	m.clubsEvaluated = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "eligible_clubs",
		Help:        "Clubs passing eligibility per market evaluation",
		Buckets:     []float64{0, 1, 2, 5, 10, 20, 40, 80},
		ConstLabels: m.constLabels,
	})
	m.offersAccepted = auto.NewCounterVec(m.counterOpts("offers_accepted_total",
		"Offers accepted and committed, by kind"), []string{"kind"})
	m.ledgerCommits = auto.NewCounter(m.counterOpts("ledger_commits_total",
		"Club budget ledger commits"))
	m.ledgerRejections = auto.NewCounter(m.counterOpts("ledger_rejections_total",
		"Ledger commits refused because the club could not afford them"))

	m.injuries = auto.NewCounterVec(m.counterOpts("injuries_total",
		"Injuries suffered, by severity"), []string{"severity"})
	m.setbacks = auto.NewCounter(m.counterOpts("injury_setbacks_total",
		"Recoveries extended by a setback"))
	m.suspensions = auto.NewCounterVec(m.counterOpts("suspensions_total",
		"Suspension counter changes, by competition and action"), []string{"competition", "action"})
	m.traitEvents = auto.NewCounterVec(m.counterOpts("trait_events_total",
		"Trait acquisitions, upgrades and removals"), []string{"kind"})
	m.roleTransitions = auto.NewCounterVec(m.counterOpts("role_transitions_total",
		"Squad role changes, by direction"), []string{"direction"})
	m.trainingBlocked = auto.NewCounter(m.counterOpts("training_rejected_total",
		"Training investments rejected as repeats within a season"))
	m.overallDelta = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "overall_delta",
		Help:        "Change in overall rating per season",
		Buckets:     []float64{-8, -4, -2, -1, 0, 1, 2, 4, 8},
		ConstLabels: m.constLabels,
	})

	m.queueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "job_queue_depth",
		Help:        "Season jobs waiting for a worker",
		ConstLabels: m.constLabels,
	})
	m.queueRejected = auto.NewCounterVec(m.counterOpts("job_queue_rejected_total",
		"Season jobs refused by the queue, by reason"), []string{"reason"})
	m.jobsProcessed = auto.NewCounterVec(m.counterOpts("jobs_processed_total",
		"Season jobs handled by workers, by status"), []string{"status"})
	m.jobLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "job_latency_milliseconds",
		Help:        "Time from dequeue to handler return",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
	m.workersRunning = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "workers_running",
		Help:        "Season workers currently running",
		ConstLabels: m.constLabels,
	})
}

// Season metrics.

// RecordSeasonSimulated increments the season counter and observes its duration.
func RecordSeasonSimulated(d time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.seasonsSimulated.Inc()
	globalManager.seasonDuration.Observe(float64(d.Microseconds()) / 1000)
}

// RecordSeasonError counts a rejected season tick.
func RecordSeasonError(reason string) {
	if !globalManager.enabled {
		return
	}
	globalManager.seasonErrors.WithLabelValues(reason).Inc()
}

// UpdateActiveAthletes sets the number of tracked, non-retired athletes.
func UpdateActiveAthletes(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.activeAthletes.Set(float64(n))
}

// RecordRetirement counts a retirement.
func RecordRetirement() {
	if !globalManager.enabled {
		return
	}
	globalManager.retirements.Inc()
}

// Transfer market metrics.

// RecordOfferGenerated counts an offer that survived negotiation.
func RecordOfferGenerated(kind string) {
	if !globalManager.enabled {
		return
	}
	globalManager.offersGenerated.WithLabelValues(kind).Inc()
}

// RecordOfferDropped counts a discarded candidate offer.
func RecordOfferDropped(reason string) {
	if !globalManager.enabled {
		return
	}
	globalManager.offersDropped.WithLabelValues(reason).Inc()
}

// ObserveEligibleClubs records how many clubs passed eligibility.
func ObserveEligibleClubs(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.clubsEvaluated.Observe(float64(n))
}

// RecordOfferAccepted counts an accepted offer.
func RecordOfferAccepted(kind string) {
	if !globalManager.enabled {
		return
	}
	globalManager.offersAccepted.WithLabelValues(kind).Inc()
}

// RecordLedgerCommit counts a successful ledger commit.
func RecordLedgerCommit() {
	if !globalManager.enabled {
		return
	}
	globalManager.ledgerCommits.Inc()
}

// RecordLedgerRejection counts a refused ledger commit.
func RecordLedgerRejection() {
	if !globalManager.enabled {
		return
	}
	globalManager.ledgerRejections.Inc()
}

// Availability and development metrics.

// RecordInjury counts an injury by severity.
func RecordInjury(severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.injuries.WithLabelValues(severity).Inc()
}

// RecordSetback counts an injury setback.
func RecordSetback() {
	if !globalManager.enabled {
		return
	}
	globalManager.setbacks.Inc()
}

// RecordSuspension counts a suspension change ("issued" or "served").
func RecordSuspension(competition, action string) {
	if !globalManager.enabled {
		return
	}
	globalManager.suspensions.WithLabelValues(competition, action).Inc()
}

// RecordTraitEvent counts a trait event ("acquired", "upgraded", "removed").
func RecordTraitEvent(kind string) {
	if !globalManager.enabled {
		return
	}
	globalManager.traitEvents.WithLabelValues(kind).Inc()
}

// RecordRoleTransition counts a squad role change ("up", "down", "same").
func RecordRoleTransition(direction string) {
	if !globalManager.enabled {
		return
	}
	globalManager.roleTransitions.WithLabelValues(direction).Inc()
}

// RecordTrainingRejected counts a repeated training investment.
func RecordTrainingRejected() {
	if !globalManager.enabled {
		return
	}
	globalManager.trainingBlocked.Inc()
}

// ObserveOverallDelta records the season change in overall.
func ObserveOverallDelta(delta int) {
	if !globalManager.enabled {
		return
	}
	globalManager.overallDelta.Observe(float64(delta))
}

// Job pipeline metrics.

// UpdateQueueDepth sets the number of waiting jobs.
func UpdateQueueDepth(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.queueDepth.Set(float64(n))
}

// RecordQueueRejected counts a job the queue refused.
func RecordQueueRejected(reason string) {
	if !globalManager.enabled {
		return
	}
	globalManager.queueRejected.WithLabelValues(reason).Inc()
}

// RecordJobProcessed counts a handled job and observes its latency.
func RecordJobProcessed(status string, d time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.jobsProcessed.WithLabelValues(status).Inc()
	globalManager.jobLatency.Observe(float64(d.Milliseconds()))
}

// UpdateWorkersRunning sets the running worker gauge.
func UpdateWorkersRunning(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.workersRunning.Set(float64(n))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// SetEnabled toggles recording on the global manager.
func SetEnabled(enabled bool) {
	globalManager.enabled = enabled
}
