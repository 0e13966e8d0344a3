package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"github.com/michealzs/storemicroservice/internal/infrastructure/logger"
)

// ScopeKeyContextKey is the gin context key for the resolved cart scope
const ScopeKeyContextKey = "cart_scope"

// SessionKeyHeader carries the anonymous session key. The server issues
// one on first contact and echoes it back; clients must replay it to
// keep their cart.
const SessionKeyHeader = "X-Session-Key"

// CartScope resolves who owns the cart for this request: the
// authenticated user when a valid token was parsed upstream, otherwise
// the anonymous session key. Guests without a key get a fresh one in the
// response header.
func CartScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userIDStr := GetJWTUserID(c); userIDStr != "" {
			if userID, err := uuid.Parse(userIDStr); err == nil {
				c.Set(ScopeKeyContextKey, store.UserScope(userID))
				c.Next()
				return
			}
		}

		sessionKey := strings.TrimSpace(c.GetHeader(SessionKeyHeader))
		if sessionKey == "" {
			sessionKey = newSessionKey()
		}
		c.Writer.Header().Set(SessionKeyHeader, sessionKey)
		c.Set(ScopeKeyContextKey, store.SessionScope(sessionKey))

		ctx, _ := logger.WithSessionKey(c.Request.Context(), logger.FromContext(c.Request.Context()), sessionKey)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetCartScope returns the resolved cart scope for this request
func GetCartScope(c *gin.Context) (store.ScopeKey, bool) {
	value, exists := c.Get(ScopeKeyContextKey)
	if !exists {
		return store.ScopeKey{}, false
	}
	scope, ok := value.(store.ScopeKey)
	return scope, ok && !scope.IsZero()
}

// newSessionKey mints an opaque session key for an anonymous shopper
func newSessionKey() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
