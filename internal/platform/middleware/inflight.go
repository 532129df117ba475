package middleware

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// InFlight tracks the number of requests currently being served.
func InFlight(gauge prometheus.Gauge) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gauge.Inc()
			defer gauge.Dec()
			next.ServeHTTP(w, r)
		})
	}
}
