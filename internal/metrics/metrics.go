// Package metrics exposes Prometheus counters for the logger's own
// operation: accepted records, dropped records, and rotations. The
// collectors are never wired to an HTTP server or registered by this
// package; MustRegister is the hook for doing so. The root logger
// keeps its Collectors in an unexported field and exposes no accessor,
// so nothing outside it registers them as the module stands.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors groups the counters a logger instance updates as it runs.
type Collectors struct {
	Accepted  prometheus.Counter
	Dropped   *prometheus.CounterVec
	Rotations prometheus.Counter
}

// NewCollectors builds a fresh, unregistered set of collectors.
func NewCollectors() *Collectors {
	return &Collectors{
		Accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cjsonlogger_records_accepted_total",
			Help: "Total log records accepted into the tree.",
		}),
		Dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cjsonlogger_records_dropped_total",
			Help: "Total log records dropped, by reason.",
		}, []string{"reason"}),
		Rotations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cjsonlogger_rotations_total",
			Help: "Total rotations performed.",
		}),
	}
}

// MustRegister registers every collector with reg.
func (c *Collectors) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(c.Accepted, c.Dropped, c.Rotations)
}

// Drop reason labels.
const (
	ReasonThreshold   = "threshold"
	ReasonInactive    = "inactive"
	ReasonTemplateLen = "template_too_long"
)
