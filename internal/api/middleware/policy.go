package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/algo/shoe-inventory/internal/api/metrics"
	"github.com/algo/shoe-inventory/internal/core/domain"
)

// Authorize enforces policy on every request. It must run after Authenticate.
func Authorize(policy *domain.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch policy.Evaluate(c.Request().URL.Path, IdentityFrom(c)) {
			case domain.DenyUnauthenticated:
				metrics.PolicyDenialsTotal.WithLabelValues("401").Inc()
				return domain.ErrUnauthenticated
			case domain.DenyForbidden:
				metrics.PolicyDenialsTotal.WithLabelValues("403").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
