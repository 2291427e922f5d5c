package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ModeSingle = "single"
	ModeBatch  = "batch"

	OutcomeVerified      = "verified"
	OutcomeNotRecognized = "not_recognized"
	OutcomeNoBottle      = "no_bottle"
	OutcomeError         = "error"
)

// Scanner holds the verification counters. A nil *Scanner is a valid no-op.
type Scanner struct {
	verifications    *prometheus.CounterVec
	recorderFailures *prometheus.CounterVec
	batchSize        prometheus.Histogram
}

func NewScanner(reg prometheus.Registerer) *Scanner {
	factory := promauto.With(reg)
	return &Scanner{
		verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inflight",
			Subsystem: "scanner",
			Name:      "verifications_total",
			Help:      "QR payload verifications by mode and outcome.",
		}, []string{"mode", "outcome"}),
		recorderFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inflight",
			Subsystem: "scanner",
			Name:      "event_record_failures_total",
			Help:      "Bottle events that could not be recorded or published.",
		}, []string{"stage"}),
		batchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "inflight",
			Subsystem: "scanner",
			Name:      "batch_size",
			Help:      "Number of payloads per batch verification.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

func (m *Scanner) ObserveVerification(mode, outcome string) {
	if m == nil {
		return
	}
	m.verifications.WithLabelValues(mode, outcome).Inc()
}

func (m *Scanner) ObserveRecorderFailure(stage string) {
	if m == nil {
		return
	}
	m.recorderFailures.WithLabelValues(stage).Inc()
}

func (m *Scanner) ObserveBatchSize(n int) {
	if m == nil {
		return
	}
	m.batchSize.Observe(float64(n))
}
