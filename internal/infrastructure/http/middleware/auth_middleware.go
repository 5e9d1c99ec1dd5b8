package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/joyability/internal/domain/entities"
)

const (
	// IdentityKey is the echo context key holding *entities.Identity
	IdentityKey = "identity"
	// AccessTokenCookie is the cookie checked when no bearer header is sent
	AccessTokenCookie = "access_token"
)

// SessionValidator resolves an access token to an identity
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*entities.Identity, error)
}

// EchoAuth validates the bearer token (or access_token cookie) and stores the
// identity in the echo context
func EchoAuth(validator SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			identity, err := validator.ValidateSession(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// GetIdentity returns the identity set by EchoAuth
func GetIdentity(c echo.Context) (*entities.Identity, bool) {
	identity, ok := c.Get(IdentityKey).(*entities.Identity)
	return identity, ok && identity != nil
}

// ExtractToken reads the bearer token from the Authorization header, falling
// back to the access_token cookie. Browsers cannot set headers on WebSocket
// upgrades, so the access_token query parameter is accepted there too.
func ExtractToken(r *http.Request) string {
	if authHeader := r.Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		return r.URL.Query().Get(AccessTokenCookie)
	}
	return ""
}
