package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "akwaba",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "akwaba",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Search metrics
	SearchesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "akwaba",
		Subsystem: "search",
		Name:      "requests_total",
		Help:      "Total trip searches issued upstream",
	})

	StaleSearchesDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "akwaba",
		Subsystem: "search",
		Name:      "stale_responses_discarded_total",
		Help:      "Search responses dropped because a newer search superseded them",
	})

	DepartedRoutesExcluded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "akwaba",
		Subsystem: "search",
		Name:      "departed_routes_excluded_total",
		Help:      "Routes dropped from results because their departure already passed",
	})

	VocabularyCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "akwaba",
		Subsystem: "vocab",
		Name:      "cache_hits_total",
		Help:      "Filter vocabulary cache hits",
	})

	VocabularyCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "akwaba",
		Subsystem: "vocab",
		Name:      "cache_misses_total",
		Help:      "Filter vocabulary cache misses",
	})

	// Booking metrics
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "akwaba",
		Subsystem: "booking",
		Name:      "cancellations_total",
		Help:      "Bookings cancelled through the eligibility window",
	})

	// Session metrics
	LoginsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "akwaba",
		Subsystem: "session",
		Name:      "logins_failed_total",
		Help:      "Login attempts rejected upstream",
	})

	// Upstream client metrics
	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "akwaba",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of calls to the booking platform",
		Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"operation"})

	UpstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "akwaba",
		Subsystem: "upstream",
		Name:      "errors_total",
		Help:      "Failed calls to the booking platform",
	}, []string{"operation"})
)

// Middleware records request count and latency per route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler serves the Prometheus /metrics endpoint through Fiber.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}

// ObserveUpstream records one upstream call.
func ObserveUpstream(operation string, start time.Time, err error) {
	UpstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		UpstreamErrors.WithLabelValues(operation).Inc()
	}
}
