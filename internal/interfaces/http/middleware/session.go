package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/eventnexus/backend/internal/domain/identity"
	"github.com/eventnexus/backend/internal/infrastructure/auth"
	"github.com/eventnexus/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Session context keys
const (
	SessionUserKey   = "session_user"
	SessionUserIDKey = "session_user_id"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "
)

// SessionAuth validates the identity-provider session token and loads the
// local user record into the request context. Requests without a valid token
// and matching user get 401.
func SessionAuth(verifier *auth.TokenVerifier, users identity.UserRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Missing token")
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			code := dto.ErrCodeTokenInvalid
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrCodeTokenExpired
			}
			abortUnauthorized(c, code, "Token validation failed")
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.Subject)
		if err != nil {
			// Valid token for a user we never synced; the provider webhook
			// may be lagging.
			logger.Warn("session token for unknown user", zap.String("subject", claims.Subject))
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Unknown user")
			return
		}

		c.Set(SessionUserKey, user)
		c.Set(SessionUserIDKey, user.ID)
		c.Next()
	}
}

// GetSessionUser returns the authenticated user loaded by SessionAuth, or
// nil outside an authenticated request.
func GetSessionUser(c *gin.Context) *identity.User {
	if v, exists := c.Get(SessionUserKey); exists {
		if user, ok := v.(*identity.User); ok {
			return user
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := c.GetString("request_id")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, requestID))
}
