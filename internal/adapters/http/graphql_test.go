package http_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/samirrijal/locainsight/internal/core/domain"
)

type gqlResponse struct {
	Data struct {
		Recommendations []struct {
			Name      string   `json:"name"`
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
			Point     *struct {
				Lat float64 `json:"lat"`
				Lon float64 `json:"lon"`
			} `json:"point"`
		} `json:"recommendations"`
	} `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

func gqlBody(t *testing.T, query string, vars map[string]any) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

const recommendationsQuery = `query($location: String!, $preferences: String) {
  recommendations(location: $location, preferences: $preferences) {
    name latitude longitude point { lat lon }
  }
}`

func TestGraphQL_Recommendations(t *testing.T) {
	p := replying(validReply)
	app := setupApp(makeDeps(p))

	status, body, _ := postJSON(t, app, "/graphql", gqlBody(t, recommendationsQuery, map[string]any{
		"location":    "Bilbao",
		"preferences": "food",
	}))
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}

	var res gqlResponse
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
	recs := res.Data.Recommendations
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	if recs[0].Point == nil || recs[0].Point.Lat != 43.2687 {
		t.Errorf("expected point for first record, got %+v", recs[0].Point)
	}
	if recs[2].Point != nil || recs[2].Latitude != nil {
		t.Errorf("expected no coordinates for third record, got %+v", recs[2])
	}
}

func TestGraphQL_BlankLocation(t *testing.T) {
	p := replying(validReply)
	app := setupApp(makeDeps(p))

	_, body, _ := postJSON(t, app, "/graphql", gqlBody(t, recommendationsQuery, map[string]any{"location": "  "}))

	var res gqlResponse
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("expected one error, got %+v", res.Errors)
	}
	if res.Errors[0].Extensions["code"] != "bad_request" {
		t.Errorf("expected bad_request code, got %v", res.Errors[0].Extensions)
	}
	if p.calls != 0 {
		t.Errorf("provider must not be called, got %d", p.calls)
	}
}

func TestGraphQL_RateLimited(t *testing.T) {
	app := setupApp(makeDeps(failing(&domain.ProviderError{StatusCode: 429, Err: errors.New("slow down")})))

	_, body, _ := postJSON(t, app, "/graphql", gqlBody(t, recommendationsQuery, map[string]any{"location": "Bilbao"}))

	var res gqlResponse
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Errors) != 1 || res.Errors[0].Extensions["code"] != "rate_limited" {
		t.Fatalf("expected rate_limited error, got %+v", res.Errors)
	}
	if res.Errors[0].Message != "Too many requests. Please try again in a moment." {
		t.Errorf("unexpected message %q", res.Errors[0].Message)
	}
}
