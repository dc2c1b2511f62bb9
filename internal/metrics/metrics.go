package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_notifications_total",
			Help: "Inbound webhook notifications by event and outcome",
		},
		[]string{"event", "outcome"}, // forwarded|filtered|ignored|unauthorized
	)

	ConversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_conversions_total",
			Help: "Outbound conversion deliveries by event name and status",
		},
		[]string{"event_name", "status"}, // sent|failed
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		NotificationsTotal,
		ConversionsTotal,
	)
}
