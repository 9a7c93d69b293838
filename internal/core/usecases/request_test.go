package usecases_test

import (
	"errors"
	"testing"

	"github.com/samirrijal/locainsight/internal/core/domain"
	"github.com/samirrijal/locainsight/internal/core/usecases"
)

func TestDecodeRecommendationRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    domain.RecommendationQuery
		wantErr string
	}{
		{name: "location only", body: `{"location":"Bilbao"}`, want: domain.RecommendationQuery{Location: "Bilbao"}},
		{name: "with preferences", body: `{"location":"Bilbao","userPreferences":"pintxos"}`, want: domain.RecommendationQuery{Location: "Bilbao", Preferences: "pintxos"}},
		{name: "empty preferences", body: `{"location":"Bilbao","userPreferences":""}`, want: domain.RecommendationQuery{Location: "Bilbao"}},
		{name: "null preferences", body: `{"location":"Bilbao","userPreferences":null}`, want: domain.RecommendationQuery{Location: "Bilbao"}},
		{name: "location kept verbatim", body: `{"location":"  Bilbao "}`, want: domain.RecommendationQuery{Location: "  Bilbao "}},
		{name: "blank location", body: `{"location":" "}`, wantErr: "Location is required and must be a non-empty string"},
		{name: "null location", body: `{"location":null}`, wantErr: "Location is required and must be a non-empty string"},
		{name: "bool location", body: `{"location":true}`, wantErr: "Location is required and must be a non-empty string"},
		{name: "bool preferences", body: `{"location":"Bilbao","userPreferences":false}`, wantErr: "Preferences must be a string if provided"},
		{name: "zero preferences", body: `{"location":"Bilbao","userPreferences":0}`, wantErr: "Preferences must be a string if provided"},
		{name: "garbage", body: `{location`, wantErr: "Request body must be a JSON object"},
		{name: "null body", body: `null`, wantErr: "Request body must be a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := usecases.DecodeRecommendationRequest([]byte(tt.body))
			if tt.wantErr != "" {
				var inputErr *domain.InputError
				if !errors.As(err, &inputErr) {
					t.Fatalf("expected InputError, got %v", err)
				}
				if inputErr.Message != tt.wantErr {
					t.Errorf("expected %q, got %q", tt.wantErr, inputErr.Message)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
