package ports

import (
	"context"

	"github.com/samirrijal/locainsight/internal/core/domain"
)

// CompletionProvider runs a chat completion against a language model.
type CompletionProvider interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (*domain.Completion, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishRecommendation(ctx context.Context, event *domain.RecommendationEvent) error
}
