package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenHeader is the request header clients send their auth token in
const TokenHeader = "x-auth-token"

// TokenVerifier returns the user ID a token was issued for
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// NewJWTMiddleware rejects requests without a valid auth token and sets
// userID for the handlers after it. The token payload is trusted as is,
// the user isn't looked up again.
func NewJWTMiddleware(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString("requestID")

		tokenStr := c.GetHeader(TokenHeader)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "No token, permission denied",
				"requestID": requestID,
			})
			return
		}

		userID, err := v.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Token is not valid",
				"requestID": requestID,
			})

			zap.L().Debug("Rejected auth token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
