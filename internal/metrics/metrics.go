// Package metrics exposes Prometheus counters for catalog activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeTable     = "table"
	OutcomeNoResults = "no_results"
)

// Metrics groups the collectors registered by New.
type Metrics struct {
	Actions  *prometheus.CounterVec
	Renders  *prometheus.CounterVec
	Sessions prometheus.GaugeFunc
}

// New registers the catalog collectors on reg. sessions reports the live session count.
func New(reg prometheus.Registerer, sessions func() int) *Metrics {
	m := &Metrics{
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "actions_total",
			Help:      "Filter actions applied, by action type.",
		}, []string{"action"}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "renders_total",
			Help:      "Views rendered, by outcome.",
		}, []string{"outcome"}),
		Sessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "catalog",
			Name:      "sessions",
			Help:      "Live browsing sessions.",
		}, func() float64 {
			if sessions == nil {
				return 0
			}
			return float64(sessions())
		}),
	}
	reg.MustRegister(m.Actions, m.Renders, m.Sessions)
	return m
}

// ObserveAction counts one applied action.
func (m *Metrics) ObserveAction(action string) {
	m.Actions.WithLabelValues(action).Inc()
}

// ObserveRender counts one rendered view.
func (m *Metrics) ObserveRender(noResults bool) {
	outcome := OutcomeTable
	if noResults {
		outcome = OutcomeNoResults
	}
	m.Renders.WithLabelValues(outcome).Inc()
}
