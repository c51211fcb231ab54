package output

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vburojevic/logstat/internal/domain"
)

const metricNamespace = "logstat"

// NewRegistry returns a registry holding report as counters
func NewRegistry(report *domain.LogReport) (*prometheus.Registry, error) {
	lines := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "lines_total",
		Help:      "Journal lines read, by facility.",
	}, []string{"facility"})
	bytes := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "message_bytes_total",
		Help:      "Bytes of MESSAGE text across all lines.",
	})
	serviceLines := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "service_lines_total",
		Help:      "Journal lines attributed to a systemd unit.",
	}, []string{"unit"})
	servicePriority := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "service_priority_total",
		Help:      "Journal lines per systemd unit and syslog priority.",
	}, []string{"unit", "priority"})
	filtered := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "filtered_lines_total",
		Help:      "Well-formed lines excluded by a filter.",
	})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "rejected_lines_total",
		Help:      "Malformed lines skipped.",
	})

	reg := prometheus.NewRegistry()
	for _, c := range []prometheus.Collector{lines, bytes, serviceLines, servicePriority, filtered, rejected} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	for f, n := range report.Total.Facility {
		lines.WithLabelValues(string(f)).Add(float64(n))
	}
	bytes.Add(float64(report.Total.MessageLength))
	for unit, s := range report.Service {
		serviceLines.WithLabelValues(unit).Add(float64(s.TotalLineCount()))
		for p, n := range s.Priorities {
			servicePriority.WithLabelValues(unit, PriorityName(p)).Add(float64(n))
		}
	}
	filtered.Add(float64(report.Filtered))
	rejected.Add(float64(report.Rejected))
	return reg, nil
}

// WriteTextfile writes report in the Prometheus text exposition format for
// node_exporter's textfile collector. The file is replaced atomically.
func WriteTextfile(path string, report *domain.LogReport) error {
	reg, err := NewRegistry(report)
	if err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}
