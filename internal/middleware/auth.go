package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/leadmessenger/outreach-api/internal/handler"
	"github.com/leadmessenger/outreach-api/internal/model"
	"github.com/leadmessenger/outreach-api/internal/service/auth"
)

const (
	claimsCacheTTL     = 5 * time.Minute
	claimsCacheCleanup = 10 * time.Minute
)

type AuthMiddleware struct {
	authService *auth.Service
	claims      *cache.Cache
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		claims:      cache.New(claimsCacheTTL, claimsCacheCleanup),
	}
}

// cacheTTL bounds how long validated claims may be cached. An entry never
// outlives the token's own expiry.
func cacheTTL(expiresAt time.Time) time.Duration {
	ttl := time.Until(expiresAt)
	if ttl > claimsCacheTTL {
		ttl = claimsCacheTTL
	}
	return ttl
}

// Authenticate verifies the bearer token and sets the owner ID in context.
// Validated claims are cached keyed by token to skip repeat signature checks.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}
		token := parts[1]

		var claims *model.TokenClaims
		if cached, ok := m.claims.Get(token); ok {
			claims = cached.(*model.TokenClaims)
		} else {
			validated, err := m.authService.ValidateToken(c.Request.Context(), token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
				c.Abort()
				return
			}
			claims = validated
			if ttl := cacheTTL(claims.ExpiresAt); ttl > 0 {
				m.claims.Set(token, claims, ttl)
			}
		}

		c.Set(handler.ContextOwnerID, claims.UserID)
		c.Next()
	}
}
