package usecases

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/samirrijal/locainsight/internal/core/domain"
)

const (
	msgInvalidLocation    = "Location is required and must be a non-empty string"
	msgInvalidPreferences = "Preferences must be a string if provided"
	msgInvalidBody        = "Request body must be a JSON object"
)

// DecodeRecommendationRequest checks a raw request body and returns the query
// it carries. Type checks happen on the raw JSON so that a number or object
// in place of a string is rejected rather than coerced.
func DecodeRecommendationRequest(body []byte) (domain.RecommendationQuery, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return domain.RecommendationQuery{}, domain.NewInputError(msgInvalidBody)
	}

	var q domain.RecommendationQuery

	rawLoc, ok := fields["location"]
	if !ok || !isJSONString(rawLoc) {
		return q, domain.NewInputError(msgInvalidLocation)
	}
	if err := json.Unmarshal(rawLoc, &q.Location); err != nil {
		return q, domain.NewInputError(msgInvalidLocation)
	}

	if rawPrefs, ok := fields["userPreferences"]; ok && !isJSONNull(rawPrefs) {
		if !isJSONString(rawPrefs) {
			return q, domain.NewInputError(msgInvalidPreferences)
		}
		if err := json.Unmarshal(rawPrefs, &q.Preferences); err != nil {
			return q, domain.NewInputError(msgInvalidPreferences)
		}
	}

	if err := ValidateQuery(q); err != nil {
		return q, err
	}
	return q, nil
}

// ValidateQuery applies the location rule to an already typed query.
func ValidateQuery(q domain.RecommendationQuery) error {
	if strings.TrimSpace(q.Location) == "" {
		return domain.NewInputError(msgInvalidLocation)
	}
	return nil
}

func isJSONString(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '"'
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
