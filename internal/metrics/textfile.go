// Package metrics exports service snapshots as Prometheus metrics for the
// node_exporter textfile collector.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/runnerr0/smf/internal/svc"
	"github.com/runnerr0/smf/internal/svcdate"
)

const (
	labelFMRI  = "fmri"
	labelState = "state"
)

// Exporter holds a private registry so textfile output only carries
// service metrics.
type Exporter struct {
	registry *prometheus.Registry

	state     *prometheus.GaugeVec
	startTime *prometheus.GaugeVec
	processes *prometheus.GaugeVec
	taken     prometheus.Gauge
}

// NewExporter creates an Exporter with its gauges registered.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "smf_service_state",
				Help: "Service state, 1 for the current state and 0 for the others",
			},
			[]string{labelFMRI, labelState},
		),
		startTime: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "smf_service_start_time_seconds",
				Help: "Unix time the service entered its current state",
			},
			[]string{labelFMRI},
		),
		processes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "smf_service_contract_processes",
				Help: "Number of processes in the service's contract",
			},
			[]string{labelFMRI},
		),
		taken: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "smf_snapshot_timestamp_seconds",
			Help: "Unix time the svcs output was captured",
		}),
	}
	e.registry.MustRegister(e.state, e.startTime, e.processes, e.taken)
	return e
}

// Registry exposes the exporter's registry.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Observe replaces the gauges with the records of one snapshot. Start times
// are resolved against taken. Legacy services are skipped.
func (e *Exporter) Observe(taken time.Time, records []svc.Record) error {
	e.state.Reset()
	e.startTime.Reset()
	e.processes.Reset()

	for _, rec := range records {
		if rec.State == svc.StateLegacyRun {
			continue
		}

		started, err := svcdate.Resolve(taken, rec.STime)
		if err != nil {
			return fmt.Errorf("%s: %w", rec.FMRI, err)
		}

		for _, st := range svc.States() {
			if st == svc.StateLegacyRun {
				continue
			}
			v := 0.0
			if st == rec.State {
				v = 1
			}
			e.state.WithLabelValues(rec.FMRI, st.String()).Set(v)
		}
		e.startTime.WithLabelValues(rec.FMRI).Set(float64(started.Unix()))

		if rec.HasContract() && rec.MembersKnown() {
			e.processes.WithLabelValues(rec.FMRI).Set(float64(len(rec.Members)))
		}
	}

	e.taken.Set(float64(taken.Unix()))
	return nil
}

// WriteTextfile writes the current metrics to path for the textfile
// collector. The file is replaced atomically.
func (e *Exporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("write textfile: %w", err)
	}
	return nil
}

// Write writes the current metrics to w in the text exposition format.
func (e *Exporter) Write(w io.Writer) error {
	families, err := e.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
