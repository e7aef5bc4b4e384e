// Middleware adapted from the teacher's internal/handler/handler.go
// logRequest/recovery chain (timing + status capture, panic recovery) onto
// gin, and from original_source's api_key_auth.rs/jwt_auth.rs for the
// hybrid auth gate.
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/koopa0/shortener/internal/auth"
	"go.uber.org/zap"
)

const loggerKey = "httpapi.logger"

func loggerFrom(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}

// requestLogger emits one structured access log line per request, matching
// the fields the teacher's logRequest middleware captured (method, path,
// status, duration, client IP).
func requestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(loggerKey, base)
		start := time.Now()

		c.Next()

		base.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// recovery turns a panic in a handler into a 500 response instead of
// crashing the process, matching the teacher's recovery middleware.
func recovery(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				base.Error("panic recovered", zap.Any("error", r), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{ErrCode: "INTERNAL", ErrInfo: "internal server error"})
			}
		}()
		c.Next()
	}
}

const userKey = "httpapi.user"

// adminAuth implements SPEC_FULL.md §4.8's dual-scheme gate: a static
// X-API-KEY header, or an Authorization: Bearer <jwt> not revoked.
func adminAuth(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gate.CheckAPIKey(c.GetHeader("X-API-KEY")) {
			c.Set(userKey, gate.Username())
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if username, err := gate.CheckBearer(token); err == nil {
				c.Set(userKey, username)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{ErrCode: "UNAUTHORIZED", ErrInfo: "authentication required"})
	}
}

func currentUser(c *gin.Context) string {
	if v, ok := c.Get(userKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
