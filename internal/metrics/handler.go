package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves reg for scraping. A nil registry falls back to the default
// gatherer so process metrics are still exposed.
func Handler(reg *prom.Registry) http.Handler {
	var g prom.Gatherer = prom.DefaultGatherer
	if reg != nil {
		g = reg
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
