package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts backend calls per endpoint and outcome
	// (ok, transport, status, unsuccessful).
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_upstream_requests_total",
		Help: "Analytics backend requests issued by the dashboard.",
	}, []string{"endpoint", "outcome"})

	// ChartInstances counts chart lifecycle events per slot
	// (created, failed, disposed, stale).
	ChartInstances = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_chart_instances_total",
		Help: "Chart instance lifecycle events by slot.",
	}, []string{"slot", "event"})
)

func ObserveUpstream(endpoint, outcome string) {
	UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

func ObserveChart(slot, event string) {
	ChartInstances.WithLabelValues(slot, event).Inc()
}
