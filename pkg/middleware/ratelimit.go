package middleware

import (
	"fmt"
	"net/http"
	"time"

	"stock-advisor/pkg/ratelimit"

	"github.com/labstack/echo/v4"
)

// DailyQuota applies the per-identity daily request quota. It must run
// after JWTAuth so the identity is resolved. Denials carry a Retry-After
// pointing at the next UTC midnight; the gate never delays a request.
func DailyQuota(quota *ratelimit.DailyQuota) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFromContext(c)
			if identity == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthenticated"})
			}

			result := quota.CheckAndIncrement(identity, time.Now())
			if !result.Allowed {
				c.Response().Header().Set(echo.HeaderRetryAfter, result.RetryAfter.Format(http.TimeFormat))
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": fmt.Sprintf("Rate limit exceeded (%d requests/day). Please try again tomorrow.", result.Limit),
				})
			}

			return next(c)
		}
	}
}
