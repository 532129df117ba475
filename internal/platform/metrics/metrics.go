package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the board service.
type Metrics struct {
	Logins           prometheus.Counter
	LoginFailures    prometheus.Counter
	ActiveSessions   prometheus.Gauge
	PostsCreated     prometheus.Counter
	RequestsInFlight prometheus.Gauge
}

// New registers the instruments with reg. Tests pass a fresh registry so
// suites can build the full stack repeatedly without duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Logins: factory.NewCounter(prometheus.CounterOpts{
			Name: "pinboard_logins_total",
			Help: "Successful logins.",
		}),
		LoginFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "pinboard_login_failures_total",
			Help: "Login attempts rejected for bad credentials.",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pinboard_active_sessions",
			Help: "Sessions currently issued and not revoked.",
		}),
		PostsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "pinboard_posts_created_total",
			Help: "Posts created on the board.",
		}),
		RequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pinboard_http_requests_in_flight",
			Help: "HTTP requests currently being served.",
		}),
	}
}
