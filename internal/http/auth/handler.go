package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"relatrix.app/crmserver/internal/apperr"
	"relatrix.app/crmserver/internal/middleware"
	"relatrix.app/crmserver/internal/user"
)

type Handler struct {
	users *user.Service
}

func NewHandler(users *user.Service) *Handler {
	return &Handler{users: users}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues the session cookie. The cookie
// stores only the opaque session ID, never the credentials.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}

	u, err := h.users.Authenticate(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, user.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	sessionID := middleware.CreateSession(u.Email)
	c.SetCookie(sessionCookie(sessionID, int(7*24*time.Hour/time.Second)))

	return c.JSON(http.StatusOK, map[string]string{"name": u.Name, "email": u.Email})
}

// Logout deletes the server-side session and expires the cookie.
func (h *Handler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if sessionID := cookie.Value; sessionID != "" {
			middleware.DeleteSession(sessionID)
		}
	}

	expired := sessionCookie("", -1)
	expired.Expires = time.Unix(0, 0)
	c.SetCookie(expired)

	return c.NoContent(http.StatusNoContent)
}

// Signup registers a new operator credential.
func (h *Handler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}

	u, err := h.users.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case apperr.IsValidation(err):
			status = http.StatusBadRequest
		case apperr.IsDuplicate(err):
			status = http.StatusConflict
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]string{"name": u.Name, "email": u.Email})
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true, // always true behind the reverse proxy
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	}
}
