// Package metrics exposes Prometheus instruments for catalog commands.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder groups the command instruments. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
	papers   prometheus.Gauge
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paperctl_commands_total",
				Help: "Total number of catalog commands by outcome.",
			},
			[]string{"command", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paperctl_command_duration_seconds",
				Help:    "Catalog command latency including simulated delay.",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 1.5, 2, 5},
			},
			[]string{"command"},
		),
		papers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "paperctl_papers",
				Help: "Number of papers currently held in the session catalog.",
			},
		),
	}
	reg.MustRegister(r.commands, r.duration, r.papers)
	return r
}

// Observe records one finished command.
func (r *Recorder) Observe(command, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.commands.WithLabelValues(command, outcome).Inc()
	r.duration.WithLabelValues(command).Observe(d.Seconds())
}

// SetPapers records the current catalog size.
func (r *Recorder) SetPapers(n int) {
	if r == nil {
		return
	}
	r.papers.Set(float64(n))
}
