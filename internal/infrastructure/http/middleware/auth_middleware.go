package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/interview-realtime/pkg/jwt"
)

// Echo context keys set by EchoAuth
const (
	UserIDKey = "user_id"
	ClaimsKey = "claims"
)

// TokenVerifier validates bearer tokens issued elsewhere
type TokenVerifier interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// EchoAuth returns an Echo middleware that validates the bearer token and sets
// "user_id" (string) and "claims" (*jwt.Claims) into Echo context
func EchoAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := verifier.ValidateAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(ClaimsKey, claims)
			c.Set(UserIDKey, claims.UserID.String())

			return next(c)
		}
	}
}

// RequireAdmin rejects callers whose token lacks the admin role.
// It must run after EchoAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if !claims.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

// ClaimsFromContext retrieves the verified claims from the Echo context
func ClaimsFromContext(c echo.Context) (*jwt.Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*jwt.Claims)
	return claims, ok
}

// UserIDFromContext retrieves the authenticated user id from the Echo context
func UserIDFromContext(c echo.Context) (string, bool) {
	userID, ok := c.Get(UserIDKey).(string)
	return userID, ok && userID != ""
}

// ExtractToken reads the bearer token from the Authorization header,
// then the token query parameter (browsers cannot set headers on a WebSocket
// upgrade), then the access_token cookie
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return strings.TrimSpace(parts[1])
		}
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
