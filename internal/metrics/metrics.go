package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes recorded by the landing form.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeNetwork   = "network"
	OutcomeInFlight  = "in_flight"
)

var (
	// WaitlistSubmissions counts landing form submits by outcome.
	WaitlistSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risegum_waitlist_submissions_total",
			Help: "Waitlist form submissions separated by outcome.",
		},
		[]string{"outcome"},
	)

	// GatewayRequests counts backend calls made by the gateway.
	GatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risegum_gateway_requests_total",
			Help: "Backend API calls made by the landing gateway separated by operation and result.",
		},
		[]string{"operation", "result"},
	)

	// GatewayDuration observes gateway call latency.
	GatewayDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "risegum_gateway_request_duration_seconds",
			Help:    "Duration of backend API calls made by the landing gateway.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"operation"},
	)

	// ContentFallbacks counts page renders that used the bundled content.
	ContentFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "risegum_content_fallback_total",
			Help: "Landing page renders served from bundled content.",
		},
	)
)

func init() {
	prometheus.MustRegister(WaitlistSubmissions, GatewayRequests, GatewayDuration, ContentFallbacks)
}

// Handler exposes the default registry for gin.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
