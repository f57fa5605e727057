package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	portmetrics "github.com/alanyang/hemotask/internal/port/metrics"
)

const namespace = "hemotask"

// Recorder implements port/metrics.Recorder with Prometheus collectors.
type Recorder struct {
	selections *prometheus.CounterVec
	duration   prometheus.Histogram
}

var _ portmetrics.Recorder = (*Recorder)(nil)

// NewRecorder registers the selection collectors on reg, or on the default
// registerer when reg is nil.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Technician selections by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "selection_duration_seconds",
			Help:      "Time spent choosing a technician.",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
	}
	reg.MustRegister(r.selections, r.duration)
	return r
}

func (r *Recorder) ObserveSelection(outcome string, took time.Duration) {
	r.selections.WithLabelValues(outcome).Inc()
	r.duration.Observe(took.Seconds())
}
