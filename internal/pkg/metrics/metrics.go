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
		Namespace: "locainsight",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "locainsight",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method", "path"})

	// RecommendationsTotal counts recommendation requests by outcome.
	RecommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "locainsight",
		Subsystem: "recommendations",
		Name:      "requests_total",
		Help:      "Recommendation requests by outcome",
	}, []string{"outcome"})

	// ProviderRequestDuration tracks completion latency by provider status.
	ProviderRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "locainsight",
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Language model completion latency in seconds",
		Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
	}, []string{"status"})

	// ProviderTokens counts tokens consumed, split into prompt and completion.
	ProviderTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "locainsight",
		Subsystem: "provider",
		Name:      "tokens_total",
		Help:      "Tokens reported by the language model provider",
	}, []string{"kind"})

	// EventsPublished counts recommendation events by result.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "locainsight",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Recommendation events published to NATS",
	}, []string{"result"})
)

// unmatchedPath labels requests that no registered route handled.
const unmatchedPath = "unmatched"

// routeLabel returns the route pattern for the path label. Raw request
// paths are never used so label cardinality stays bounded.
func routeLabel(routePath, requestPath string) string {
	switch {
	case routePath == "":
		return unmatchedPath
	case routePath == "/" && requestPath != "/":
		// only middleware matched
		return unmatchedPath
	default:
		return routePath
	}
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		path := routeLabel(c.Route().Path, c.Path())
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
