package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEditorMetrics() {
	r.EditorEventsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netcanvas_editor_events_total",
			Help: "Total number of editor events by outcome",
		},
		[]string{"event", "outcome"},
	)

	r.DevicesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netcanvas_devices",
			Help: "Number of devices in the topology",
		},
	)

	r.LinksTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netcanvas_links",
			Help: "Number of links in the topology",
		},
	)
}
