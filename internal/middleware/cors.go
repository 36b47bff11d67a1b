package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS handles cross-origin requests from the web dashboard. The allow-list
// comes from server config; an empty list allows any origin, which suits
// local development. The header set is fixed to what the API actually
// accepts: bearer tokens, JSON bodies, and multipart CSV uploads.
func CORS(allowOrigins []string) gin.HandlerFunc {
	const (
		allowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
		allowHeaders = "Origin, Content-Type, Accept, Authorization, " + HeaderXRequestID
		maxAge       = "86400"
	)
	exposeHeaders := "Content-Length, Content-Type, " + HeaderXRequestID

	allowAny := len(allowOrigins) == 0
	allowed := make(map[string]struct{}, len(allowOrigins))
	for _, o := range allowOrigins {
		if o == "*" {
			allowAny = true
			continue
		}
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			_, ok := allowed[origin]
			if allowAny || ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Methods", allowMethods)
				c.Header("Access-Control-Allow-Headers", allowHeaders)
				c.Header("Access-Control-Expose-Headers", exposeHeaders)
				c.Header("Access-Control-Max-Age", maxAge)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
