package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/locainsight/internal/core/usecases"
)

// RecommendationsHandler serves POST /api/recommendations.
func RecommendationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Recommendations == nil {
			return errInternal(c, msgConfiguration)
		}

		q, err := usecases.DecodeRecommendationRequest(c.Body())
		if err != nil {
			return respondError(c, err)
		}

		recs, err := deps.Recommendations.Recommend(c.UserContext(), q)
		if err != nil {
			return respondError(c, err)
		}

		c.Set(fiber.HeaderCacheControl, fmt.Sprintf("private, max-age=%d", deps.Recommendations.CacheMaxAge()))
		return c.JSON(recs)
	}
}
