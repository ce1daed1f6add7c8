package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portal", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portal", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	BookingAdmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portal", Name: "booking_admissions_total", Help: "Booking admission outcomes (created, duplicate)."},
		[]string{"outcome"},
	)
	AuthFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portal", Name: "auth_failures_total", Help: "Rejected requests by access-control failure kind."},
		[]string{"kind"},
	)
	AvailabilityQueries = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "portal", Name: "availability_queries_total", Help: "Number of availability computations."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(BookingAdmissions)
	reg.MustRegister(AuthFailures)
	reg.MustRegister(AvailabilityQueries)
}
