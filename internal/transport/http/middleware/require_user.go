package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errLoginRequired = "You must be logged in to do that."

// RequireUser runs after Session and rejects anonymous requests with 403.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userID") == "" {
			c.String(http.StatusForbidden, errLoginRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}
