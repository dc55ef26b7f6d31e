package middleware

import (
	"time"

	"github.com/fadilmartias/applify/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter limits requests per client IP with a sliding window.
// Generation requests are expensive upstream, so routes pick their own budget.
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	if max <= 0 {
		max = 50
	}
	if expiration <= 0 {
		expiration = 1 * time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		LimitReached: func(c *fiber.Ctx) error {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusTooManyRequests,
				Message: "Zu viele Anfragen, bitte später erneut versuchen",
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
