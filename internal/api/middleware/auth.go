package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/algo/shoe-inventory/internal/api/metrics"
	"github.com/algo/shoe-inventory/internal/core/domain"
	"github.com/algo/shoe-inventory/internal/core/ports"
)

const identityKey = "identity"

// Authenticate resolves the request identity. Only a Bearer Authorization
// header counts as a credential; without one the request continues as
// anonymous. A Bearer header with an empty or invalid token stops the request
// with domain.ErrTokenInvalid.
func Authenticate(tokens ports.TokenService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				c.Set(identityKey, domain.Anonymous())
				return next(c)
			}

			if token == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("empty").Inc()
				return domain.ErrTokenInvalid
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				log.Debug().Err(err).Str("path", c.Request().URL.Path).Msg("bearer token rejected")
				return domain.ErrTokenInvalid
			}

			c.Set(identityKey, domain.Identity{
				Kind:      domain.IdentityToken,
				Subject:   claims.Subject,
				Roles:     claims.Roles,
				TokenID:   claims.ID,
				ExpiresAt: claims.ExpiresAt,
			})
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Authenticate, or an anonymous
// identity when the middleware did not run.
func IdentityFrom(c echo.Context) domain.Identity {
	id, ok := c.Get(identityKey).(domain.Identity)
	if !ok {
		return domain.Anonymous()
	}
	return id
}

// bearerToken reports whether header uses the Bearer scheme and returns the
// token that follows it.
func bearerToken(header string) (string, bool) {
	scheme, rest, _ := strings.Cut(strings.TrimSpace(header), " ")
	if !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
