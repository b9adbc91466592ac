package middleware

import (
	"net/http"
	"strings"

	"eventplanner/internal/policy"
	"eventplanner/internal/shared/config"
	"eventplanner/internal/shared/utils/response"
	"eventplanner/internal/users"
	"eventplanner/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Context keys set by JWTAuthWithConfig
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
)

const requestIDHeader = "X-Request-ID"

// JWTAuthWithConfig creates a JWT authentication middleware with config
func JWTAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "authorization header format must be Bearer {token}")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), "invalid or expired token", c.ClientIP())
			response.Abort(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "invalid token claims")
			return
		}
		if tokenType, _ := claims["type"].(string); tokenType != "access" {
			response.Abort(c, http.StatusUnauthorized, "invalid token type")
			return
		}

		userID, _ := claims["user_id"].(string)
		rawRole, _ := claims["role"].(string)
		role, err := users.ParseRole(rawRole)
		if _, idErr := uuid.Parse(userID); idErr != nil || err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid token subject")
			return
		}

		email, _ := claims["email"].(string)
		c.Set(ContextUserID, userID)
		c.Set(ContextUserEmail, email)
		c.Set(ContextUserRole, string(role))

		c.Next()
	}
}

// CurrentPrincipal reads the authenticated principal from the context
func CurrentPrincipal(c *gin.Context) (policy.Principal, bool) {
	id, err := uuid.Parse(c.GetString(ContextUserID))
	if err != nil {
		return policy.Principal{}, false
	}
	role, err := users.ParseRole(c.GetString(ContextUserRole))
	if err != nil {
		return policy.Principal{}, false
	}
	return policy.Principal{ID: id, Role: role}, true
}

// RequireRoles middleware checks if user has any of the required roles
func RequireRoles(requiredRoles ...users.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "user role not found in context")
			return
		}

		for _, role := range requiredRoles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		response.Abort(c, http.StatusForbidden, "Insufficient permissions")
	}
}

// RequestID propagates or assigns an X-Request-ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(logger.RequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}
