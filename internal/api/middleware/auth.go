package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/api/metrics"
	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

const identityKey = "identity"

type ctxKey struct{}

// Authenticate resolves the bearer token into a domain.Identity and stores
// it on both the echo context and the request context. A missing or
// malformed header fails with domain.ErrUnauthenticated before the verifier
// is consulted; every verifier failure surfaces as domain.ErrInvalidToken.
func Authenticate(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.ErrUnauthenticated
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
			}

			c.Set(identityKey, identity)
			req := c.Request()
			c.SetRequest(req.WithContext(WithIdentity(req.Context(), identity)))
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Authenticate. A missing
// identity means the route was wired without Authenticate and is reported
// as domain.ErrMissingIdentity.
func IdentityFrom(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	if !ok {
		return domain.Identity{}, fmt.Errorf("%w: %s %s", domain.ErrMissingIdentity, c.Request().Method, c.Path())
	}
	return identity, nil
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

// IdentityFromContext is the request-context counterpart of IdentityFrom.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(ctxKey{}).(domain.Identity)
	return identity, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
