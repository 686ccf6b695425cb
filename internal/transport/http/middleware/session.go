package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ErlanBelekov/tinyapp/internal/domain"
	"github.com/ErlanBelekov/tinyapp/internal/session"
	"github.com/gin-gonic/gin"
)

type userFinder interface {
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

// Session decodes the session cookie once per request. For a valid token
// whose user still exists it sets "userID" and "user" in the gin context and
// the user id in the request context. Anything else leaves the request
// anonymous; a bad or expired cookie is also cleared.
func Session(mgr *session.Manager, users userFinder, cookie session.CookieOptions, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "session_middleware")

	return func(c *gin.Context) {
		raw, err := c.Cookie(session.CookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		s, err := mgr.Parse(raw)
		if err != nil {
			session.ClearCookie(c.Writer, cookie)
			c.Next()
			return
		}

		user, err := users.CurrentUser(c.Request.Context(), s.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				session.ClearCookie(c.Writer, cookie)
			} else {
				logger.ErrorContext(c.Request.Context(), "load session user", "error", err)
			}
			c.Next()
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", user)
		c.Request = c.Request.WithContext(session.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}
