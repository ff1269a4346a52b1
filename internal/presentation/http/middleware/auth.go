package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/billing-console/internal/presentation/http/dto/response"
	"github.com/sangkips/billing-console/pkg/auth"
	"github.com/sangkips/billing-console/pkg/logger"
)

// Context keys set by AuthMiddleware.
const (
	OperatorKey  = "operator"
	SessionIDKey = "session_id"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			logger.FromContext(c.Request.Context()).Debug("rejected session token", zap.Error(err))
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(OperatorKey, claims.Operator)
		c.Set(SessionIDKey, claims.ID)
		ctx := logger.WithContext(c.Request.Context(), zap.String("operator", claims.Operator))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetOperator returns the authenticated operator, or "".
func GetOperator(c *gin.Context) string {
	return c.GetString(OperatorKey)
}
