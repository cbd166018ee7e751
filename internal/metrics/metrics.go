package metrics

import (
	"time"
)

// RecordEvent counts one handled editor event
func (r *Registry) RecordEvent(event, outcome string) {
	r.EditorEventsTotal.WithLabelValues(event, outcome).Inc()
}

// RecordTopology updates the device and link gauges
func (r *Registry) RecordTopology(devices, links int) {
	r.DevicesTotal.Set(float64(devices))
	r.LinksTotal.Set(float64(links))
}

// RecordHTTPRequest records metrics for an HTTP request
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SetSSEClients records the number of connected event stream clients
func (r *Registry) SetSSEClients(n int) {
	r.SSEClients.Set(float64(n))
}

// AddInFlight adjusts the in-flight request gauge
func (r *Registry) AddInFlight(delta int) {
	r.HTTPRequestsInFlight.Add(float64(delta))
}
