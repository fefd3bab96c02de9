package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsPublished,
			Help:      HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventHandlerErrors,
			Help:      HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Farm Metrics
var (
	OperationOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameOperationOutcomes,
			Help:      HelpTextOperationOutcomes,
		},
		[]string{LabelOperation, LabelOutcome},
	)

	SeedsBought = newCropCounter(MetricNameSeedsBought, HelpTextSeedsBought)
	SeedsSown   = newCropCounter(MetricNameSeedsSown, HelpTextSeedsSown)

	CropsHarvested = newCropCounter(MetricNameCropsHarvested, HelpTextCropsHarvested)
	CropsSold      = newCropCounter(MetricNameCropsSold, HelpTextCropsSold)
	CropsStolen    = newCropCounter(MetricNameCropsStolen, HelpTextCropsStolen)

	PlotsReclaimed  = newCounter(MetricNamePlotsReclaimed, HelpTextPlotsReclaimed)
	PlotsUpgraded   = newCounter(MetricNamePlotsUpgraded, HelpTextPlotsUpgraded)
	SignIns         = newCounter(MetricNameSignIns, HelpTextSignIns)
	UsersRegistered = newCounter(MetricNameUsersRegistered, HelpTextUsersRegistered)

	CurrencyEarned = newCounter(MetricNameCurrencyEarned, HelpTextCurrencyEarned)
	CurrencySpent  = newCounter(MetricNameCurrencySpent, HelpTextCurrencySpent)
)

func newCounter(name, help string) prometheus.Counter {
	return promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	})
}

func newCropCounter(name, help string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, []string{LabelCrop})
}

// RecordOutcome counts one farm operation result
func RecordOutcome(operation, outcome string) {
	OperationOutcomes.WithLabelValues(operation, outcome).Inc()
}
