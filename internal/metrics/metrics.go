package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CalculationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: "bakhtbot_calculations_completed"},
		[]string{"feature"},
	)
	InvalidDates = promauto.NewCounter(
		prometheus.CounterOpts{Name: "bakhtbot_invalid_dates"},
	)
	MembershipCheckErrors = promauto.NewCounter(
		prometheus.CounterOpts{Name: "bakhtbot_membership_check_errors"},
	)
	BroadcastsDelivered = promauto.NewCounter(
		prometheus.CounterOpts{Name: "bakhtbot_broadcasts_delivered"},
	)
	BroadcastsFailed = promauto.NewCounter(
		prometheus.CounterOpts{Name: "bakhtbot_broadcasts_failed"},
	)
)
