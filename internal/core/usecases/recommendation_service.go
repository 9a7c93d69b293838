package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samirrijal/locainsight/internal/core/domain"
	"github.com/samirrijal/locainsight/internal/core/ports"
	"github.com/samirrijal/locainsight/internal/pkg/llmjson"
	"github.com/samirrijal/locainsight/internal/pkg/logging"
	"github.com/samirrijal/locainsight/internal/pkg/metrics"
)

var tracer = otel.Tracer("github.com/samirrijal/locainsight/internal/core/usecases")

// RecommendationConfig tunes the completion call.
type RecommendationConfig struct {
	Model            string
	MaxTokens        int
	Temperature      float32
	PresencePenalty  float32
	FrequencyPenalty float32
	// Timeout bounds the provider call. Zero means no deadline.
	Timeout time.Duration
	// CacheMaxAge is the advisory client cache TTL in seconds.
	CacheMaxAge int
}

// DefaultRecommendationConfig mirrors the values the web client was tuned against.
func DefaultRecommendationConfig() RecommendationConfig {
	return RecommendationConfig{
		Model:            "gpt-3.5-turbo",
		MaxTokens:        500,
		Temperature:      0.7,
		PresencePenalty:  0.3,
		FrequencyPenalty: 0.3,
		Timeout:          30 * time.Second,
		CacheMaxAge:      300,
	}
}

// RecommendationService turns a location query into validated place records.
type RecommendationService struct {
	provider ports.CompletionProvider
	events   ports.EventPublisher
	cfg      RecommendationConfig
	now      func() time.Time
}

// NewRecommendationService creates a new RecommendationService. events may be nil.
func NewRecommendationService(provider ports.CompletionProvider, events ports.EventPublisher, cfg RecommendationConfig) *RecommendationService {
	return &RecommendationService{provider: provider, events: events, cfg: cfg, now: time.Now}
}

// CacheMaxAge returns the advisory client cache TTL in seconds.
func (s *RecommendationService) CacheMaxAge() int {
	return s.cfg.CacheMaxAge
}

// Recommend validates q, asks the provider for suggestions and returns the
// validated records. Each call is a single attempt.
func (s *RecommendationService) Recommend(ctx context.Context, q domain.RecommendationQuery) (recs []domain.Recommendation, err error) {
	ctx, span := tracer.Start(ctx, "RecommendationService.Recommend")
	defer func() {
		outcome := Outcome(err)
		metrics.RecommendationsTotal.WithLabelValues(outcome).Inc()
		span.SetAttributes(attribute.String("locainsight.outcome", outcome))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
		span.End()
	}()

	if err := ValidateQuery(q); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	start := s.now()

	completion, err := s.complete(ctx, q)
	if err != nil {
		return nil, err
	}

	payload := llmjson.Extract(completion.Content)
	recs, err = ValidateRecommendations([]byte(payload))
	if err != nil {
		log.Warn("model reply rejected", "error", err, "model", completion.Model)
		log.Debug("rejected model reply", "content", completion.Content)
		return nil, err
	}

	span.SetAttributes(attribute.Int("locainsight.recommendations", len(recs)))
	s.publish(ctx, q, completion, len(recs), s.now().Sub(start))

	return recs, nil
}

func (s *RecommendationService) complete(ctx context.Context, q domain.RecommendationQuery) (*domain.Completion, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := domain.CompletionRequest{
		System:           SystemPrompt,
		User:             BuildUserPrompt(q),
		Model:            s.cfg.Model,
		MaxTokens:        s.cfg.MaxTokens,
		Temperature:      s.cfg.Temperature,
		PresencePenalty:  s.cfg.PresencePenalty,
		FrequencyPenalty: s.cfg.FrequencyPenalty,
	}

	start := time.Now()
	completion, err := s.provider.Complete(ctx, req)
	metrics.ProviderRequestDuration.WithLabelValues(providerStatus(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}
	if completion == nil {
		return nil, errors.New("complete: empty completion")
	}

	metrics.ProviderTokens.WithLabelValues("prompt").Add(float64(completion.PromptTokens))
	metrics.ProviderTokens.WithLabelValues("completion").Add(float64(completion.CompletionTokens))
	return completion, nil
}

func (s *RecommendationService) publish(ctx context.Context, q domain.RecommendationQuery, c *domain.Completion, count int, d time.Duration) {
	if s.events == nil {
		return
	}
	event := &domain.RecommendationEvent{
		ID:          uuid.NewString(),
		Location:    q.Location,
		Preferences: q.Preferences,
		Count:       count,
		Model:       c.Model,
		Duration:    d,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.events.PublishRecommendation(ctx, event); err != nil {
		logging.FromContext(ctx).Warn("publish recommendation event failed", "error", err)
	}
}

// Outcome classifies err into a low-cardinality label.
func Outcome(err error) string {
	var inputErr *domain.InputError
	var genErr *domain.GenerationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &inputErr):
		return "invalid_input"
	case errors.As(err, &genErr):
		return "generation_error"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrProviderAuth):
		return "provider_auth"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}

func providerStatus(err error) string {
	var pErr *domain.ProviderError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &pErr) && pErr.StatusCode != 0:
		return fmt.Sprintf("%d", pErr.StatusCode)
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
