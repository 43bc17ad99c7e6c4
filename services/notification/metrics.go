package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pizzeria_notifications_total",
	Help: "Notification delivery attempts by channel, type and outcome.",
}, []string{"channel", "type", "status"})
