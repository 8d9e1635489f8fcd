package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/findash/internal/guard"
)

// SessionRequired rejects view hooks while no session is held. The body
// points the client at the login route, mirroring the route guard.
func SessionRequired(src guard.SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if src == nil || !src.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "not authenticated",
				"login": guard.LoginPath,
			})
			return
		}
		c.Next()
	}
}
