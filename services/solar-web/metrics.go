package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"solar-predictor/internal/session"
)

// Metrics drží Prometheus metriky služby.
type Metrics struct {
	registry *prometheus.Registry

	Submissions *prometheus.CounterVec // label: source (form/api)
	Restarts    prometheus.Counter
	StateReads  *prometheus.CounterVec // label: state
	OutputKW    prometheus.Histogram
}

// NewMetrics vytvoří metriky ve vlastním registru (testy si tak nepřekáží s globálním).
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "solar_prediction_submissions_total", Help: "Number of prediction form submissions"},
			[]string{"source"},
		),
		Restarts: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "solar_prediction_restarts_total", Help: "Submissions that replaced a still computing prediction"},
		),
		StateReads: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "solar_prediction_state_reads_total", Help: "Session state reads by observed state"},
			[]string{"state"},
		),
		OutputKW: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "solar_prediction_output_kw",
				Help:    "Estimated output of computed predictions in kW",
				Buckets: []float64{0, 10, 25, 50, 100, 150, 200, 300},
			},
		),
	}
	m.registry.MustRegister(
		m.Submissions, m.Restarts, m.StateReads, m.OutputKW,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler vrací endpoint pro /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSubmit zaznamená odeslání a případné přerušení běžícího výpočtu.
func (m *Metrics) ObserveSubmit(source string, snap session.Snapshot) {
	m.Submissions.WithLabelValues(source).Inc()
	if snap.Replaced {
		m.Restarts.Inc()
	}
}

// ObserveRead zaznamená čtení stavu, u hotového výsledku i jeho hodnotu.
func (m *Metrics) ObserveRead(snap session.Snapshot) {
	m.StateReads.WithLabelValues(string(snap.State)).Inc()
	if snap.Output != nil {
		m.OutputKW.Observe(snap.Output.KW)
	}
}
