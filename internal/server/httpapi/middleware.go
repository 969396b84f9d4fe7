package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vaultbox/vaultbox/internal/server/auth"
	"github.com/vaultbox/vaultbox/internal/server/ratelimit"
)

// accountIDKey is the gin context key under which the authenticated account
// ID is stored.
const accountIDKey = "accountID"

// authMiddleware validates the bearer token and stores the account ID in
// the request context. Missing, malformed, and invalid tokens are all
// answered with the same 401 body.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		accountID, err := auth.GetAccountIDFromToken(token, s.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(accountIDKey, accountID)
		c.Next()
	}
}

// accountID returns the authenticated account ID set by authMiddleware.
func accountID(c *gin.Context) string {
	return c.GetString(accountIDKey)
}

// rateLimitMiddleware throttles per client IP. A limiter backend failure
// fails open: redemption keeps working when Redis is down.
func (s *Server) rateLimitMiddleware(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			s.logger.Warn(c.Request.Context(), "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

// requestLogMiddleware logs one line per request with method, path, status
// and latency.
func (s *Server) requestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
