package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/roadwatch/roadwatch-api/internal/core/auth"
)

// identityKey is the echo context key holding the resolved auth.Identity.
const identityKey = "identity"

// ResolveIdentity resolves the Authorization header into a tri-state
// identity and stores it in the request context. It never rejects the
// request itself — public routes tolerate anonymous and even invalid
// credentials, and the service layer decides what each state means for
// the specific action.
func ResolveIdentity(resolver *auth.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := resolver.Resolve(c.Request().Header.Get(echo.HeaderAuthorization))
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// Identity returns the identity stored by ResolveIdentity. Routes not
// behind the middleware observe an anonymous identity.
func Identity(c echo.Context) auth.Identity {
	if id, ok := c.Get(identityKey).(auth.Identity); ok {
		return id
	}
	return auth.Anonymous()
}
