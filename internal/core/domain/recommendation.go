package domain

import "time"

// Recommendation is a single place suggestion returned to the client.
type Recommendation struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// Point returns the record's coordinates when both are present.
func (r Recommendation) Point() *GeoPoint {
	if r.Latitude == nil || r.Longitude == nil {
		return nil
	}
	return &GeoPoint{Lat: *r.Latitude, Lon: *r.Longitude}
}

// RecommendationQuery is the user input that shapes the prompt.
type RecommendationQuery struct {
	Location    string `json:"location"`
	Preferences string `json:"userPreferences,omitempty"`
}

// CompletionRequest is a single chat-completion call against the provider.
type CompletionRequest struct {
	System           string
	User             string
	Model            string
	MaxTokens        int
	Temperature      float32
	PresencePenalty  float32
	FrequencyPenalty float32
}

// Completion is the provider's raw text reply.
type Completion struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// RecommendationEvent is emitted after a successful generation.
type RecommendationEvent struct {
	ID          string        `json:"id"`
	Location    string        `json:"location"`
	Preferences string        `json:"preferences,omitempty"`
	Count       int           `json:"count"`
	Model       string        `json:"model"`
	Duration    time.Duration `json:"duration_ns"`
	CreatedAt   time.Time     `json:"created_at"`
}
