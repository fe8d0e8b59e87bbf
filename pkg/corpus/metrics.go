package corpus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters of one ingestion run in a private registry,
// written out as a node-exporter textfile when the run ends.
type Metrics struct {
	registry     *prometheus.Registry
	cases        *prometheus.CounterVec
	attributions *prometheus.CounterVec
	records      *prometheus.CounterVec
	warnings     prometheus.Counter
}

// NewMetrics registers the run counters
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "corpus",
				Name:      "cases_total",
				Help:      "Case folders processed, by outcome",
			},
			[]string{"outcome"},
		),
		attributions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "corpus",
				Name:      "attributions_total",
				Help:      "Stored decisions, by ponente attribution result",
			},
			[]string{"result"},
		),
		records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "corpus",
				Name:      "records_total",
				Help:      "Records written, by kind",
			},
			[]string{"kind"},
		),
		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "corpus",
			Name:      "warnings_total",
			Help:      "Best-effort enrichment steps that failed",
		}),
	}
	m.registry.MustRegister(m.cases, m.attributions, m.records, m.warnings)
	return m
}

// Registry exposes the collectors, e.g. for a push gateway
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteToTextfile writes the counters in the Prometheus text format
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) observeSkip(reason SkipReason) {
	m.cases.WithLabelValues(string(reason)).Inc()
}

func (m *Metrics) observeCase(out Outcome, result string) {
	m.cases.WithLabelValues("ingested").Inc()
	m.attributions.WithLabelValues(result).Inc()
	m.warnings.Add(float64(len(out.Warnings)))

	for kind, n := range map[string]int{
		"decision":  out.Records.Decisions,
		"citation":  out.Records.Citations,
		"vote_line": out.Records.VoteLines,
		"title_tag": out.Records.TitleTags,
		"opinion":   out.Records.Opinions,
		"segment":   out.Records.Segments,
	} {
		m.records.WithLabelValues(kind).Add(float64(n))
	}
}
