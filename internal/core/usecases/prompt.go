package usecases

import (
	"fmt"

	"github.com/samirrijal/locainsight/internal/core/domain"
)

// SystemPrompt pins the model to JSON-only output.
const SystemPrompt = "You are a travel assistant that provides only valid JSON results. " +
	"Never include explanatory text outside the JSON structure."

const noPreferences = "No specific preferences provided - suggest popular and interesting locations"

// BuildUserPrompt embeds the query verbatim into the generation instruction.
func BuildUserPrompt(q domain.RecommendationQuery) string {
	prefs := q.Preferences
	if prefs == "" {
		prefs = noPreferences
	}

	return fmt.Sprintf(`You are LocaInsight, a helpful travel guide specializing in personalized navigation and itineraries.
The user is located in or visiting %[1]s and has the following preferences:
%[2]s

Suggest 3-5 interesting locations in or near %[1]s.
Each location MUST include:
1. A specific name (not generic terms like "downtown" or "city center")
2. A detailed but concise description (1-2 sentences about what makes this place special)
3. A complete street address
4. Precise latitude and longitude coordinates

Return ONLY valid JSON data with this exact structure:
[
  {
    "name": "Specific Location Name",
    "description": "Detailed description of the location",
    "address": "Complete street address",
    "latitude": number between -90 and 90,
    "longitude": number between -180 and 180
  }
]`, q.Location, prefs)
}
