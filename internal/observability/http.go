package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	scrapeOnce    sync.Once
	scrapeHandler fiber.Handler
)

// MetricsHandler serves the default registry in OpenMetrics format. The handler counts
// its own scrapes, so it is built once per process.
func MetricsHandler() fiber.Handler {
	scrapeOnce.Do(func() {
		RegisterMetrics()
		handler := promhttp.InstrumentMetricHandler(
			prometheus.DefaultRegisterer,
			promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{EnableOpenMetrics: true}),
		)
		scrapeHandler = adaptor.HTTPHandler(handler)
	})
	return scrapeHandler
}
