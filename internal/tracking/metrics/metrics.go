package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for tracking operations.
type Metrics struct {
	ConsentsSaved      *prometheus.CounterVec
	ActivitiesRecorded *prometheus.CounterVec
	ActivitiesSkipped  prometheus.Counter
	ActivitiesEvicted  prometheus.Counter
	ActivitiesTrimmed  prometheus.Counter
	LocationCaptures   *prometheus.CounterVec
	CookieReadFailures *prometheus.CounterVec
	Purges             prometheus.Counter

	IPLookupLatency prometheus.Histogram
}

// New registers tracking collectors with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers tracking collectors with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ConsentsSaved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atelier_consents_saved_total",
			Help: "Total number of consent decisions saved, labeled by category and whether it was granted",
		}, []string{"category", "granted"}),
		ActivitiesRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atelier_activities_recorded_total",
			Help: "Total number of activities appended to visitor logs, labeled by action kind and platform",
		}, []string{"kind", "platform"}),
		ActivitiesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "atelier_activities_skipped_total",
			Help: "Total number of tracking calls dropped for lack of activity consent",
		}),
		ActivitiesEvicted: factory.NewCounter(prometheus.CounterOpts{
			Name: "atelier_activities_evicted_total",
			Help: "Total number of activities dropped from full visitor logs",
		}),
		ActivitiesTrimmed: factory.NewCounter(prometheus.CounterOpts{
			Name: "atelier_activities_trimmed_total",
			Help: "Total number of activities dropped so the activity cookie fits the browser size limit",
		}),
		LocationCaptures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atelier_location_captures_total",
			Help: "Location capture attempts, labeled by source and outcome",
		}, []string{"source", "outcome"}),
		CookieReadFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atelier_cookie_read_failures_total",
			Help: "Cookie values that could not be decoded, labeled by cookie",
		}, []string{"cookie"}),
		Purges: factory.NewCounter(prometheus.CounterOpts{
			Name: "atelier_tracking_purges_total",
			Help: "Total number of visitor opt-outs that cleared tracking cookies",
		}),
		IPLookupLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "atelier_ip_lookup_latency_seconds",
			Help:    "Latency of IP geolocation lookups in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

func (m *Metrics) IncrementConsentsSaved(category string, granted bool) {
	label := "false"
	if granted {
		label = "true"
	}
	m.ConsentsSaved.WithLabelValues(category, label).Inc()
}

// IncrementActivitiesRecorded counts an appended activity. Free-form action
// labels are folded into "page_view" or "interaction" to bound cardinality.
func (m *Metrics) IncrementActivitiesRecorded(kind, platform string) {
	m.ActivitiesRecorded.WithLabelValues(kind, platform).Inc()
}

func (m *Metrics) IncrementActivitiesSkipped() {
	m.ActivitiesSkipped.Inc()
}

func (m *Metrics) IncrementActivitiesEvicted() {
	m.ActivitiesEvicted.Inc()
}

func (m *Metrics) AddActivitiesTrimmed(n int) {
	m.ActivitiesTrimmed.Add(float64(n))
}

// IncrementLocationCaptures records one capture step. Outcome is "success" or "failed".
func (m *Metrics) IncrementLocationCaptures(source, outcome string) {
	m.LocationCaptures.WithLabelValues(source, outcome).Inc()
}

func (m *Metrics) IncrementCookieReadFailures(cookie string) {
	m.CookieReadFailures.WithLabelValues(cookie).Inc()
}

func (m *Metrics) IncrementPurges() {
	m.Purges.Inc()
}

func (m *Metrics) ObserveIPLookupLatency(durationSeconds float64) {
	m.IPLookupLatency.Observe(durationSeconds)
}
