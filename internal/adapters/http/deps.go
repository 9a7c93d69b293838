package http

import (
	"github.com/samirrijal/locainsight/internal/core/usecases"
)

// ConnChecker reports broker connectivity for readiness checks.
type ConnChecker interface {
	IsConnected() bool
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Recommendations *usecases.RecommendationService
	// NATS is optional; nil means event publishing is disabled.
	NATS ConnChecker
	// DocsPath locates the OpenAPI document served at /docs/openapi.yaml.
	DocsPath string
}
