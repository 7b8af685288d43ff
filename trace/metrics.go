package trace

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the work done by a Planner. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Traces    prometheus.Counter
	Curves    *prometheus.CounterVec // by outcome: accepted, truncated, dropped
	Seeds     prometheus.Counter     // seeds emitted on accepted curves
	QueueSize prometheus.Gauge
}

// Outcomes of the clip pass, used as label values of Metrics.Curves.
const (
	OutcomeAccepted  = "accepted"
	OutcomeTruncated = "truncated"
	OutcomeDropped   = "dropped"
)

// NewMetrics creates the planner's metrics and registers them with reg.
// If reg is nil, the metrics are created but not registered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Traces: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streetplan",
			Name:      "traces_total",
			Help:      "Number of streamlines traced.",
		}),
		Curves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streetplan",
			Name:      "curves_total",
			Help:      "Number of fitted curves, by outcome of the clip pass.",
		}, []string{"outcome"}),
		Seeds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streetplan",
			Name:      "seeds_total",
			Help:      "Number of seeds queued for further tracing.",
		}),
		QueueSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "streetplan",
			Name:      "seed_queue_size",
			Help:      "Number of seeds in the queue.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Traces, m.Curves, m.Seeds, m.QueueSize} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) traced(n int) {
	if m != nil {
		m.Traces.Add(float64(n))
	}
}

func (m *Metrics) curve(outcome string) {
	if m != nil {
		m.Curves.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) seeded(n, queued int) {
	if m != nil {
		m.Seeds.Add(float64(n))
		m.QueueSize.Set(float64(queued))
	}
}
