package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminAuth validates requests via X-API-Key header OR session cookie.
// The API key path is for programmatic access; the session path is for
// operators signed in through /auth/login. Returns 401 if both fail.
func AdminAuth(apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Check X-API-Key header first (for programmatic access)
			if key := c.Request().Header.Get("X-API-Key"); key != "" && validAPIKey(apiKey, key) {
				return next(c)
			}

			// Check session cookie
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				if sessionID := cookie.Value; sessionID != "" {
					if sess, ok := GetSession(sessionID); ok {
						// Signed-in user travels in the request context,
						// never in package globals
						ctx := WithUser(c.Request().Context(), sess.Email)
						c.SetRequest(c.Request().WithContext(ctx))
						return next(c)
					}
				}
			}

			return echo.NewHTTPError(http.StatusUnauthorized, "Missing or invalid credentials")
		}
	}
}

// validAPIKey compares keys in constant time to avoid timing attacks.
func validAPIKey(want, got string) bool {
	if want == "" || len(want) != len(got) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}
