package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"swiftpay/internal/shared/apperror"
	"swiftpay/internal/shared/contextutil"
	"swiftpay/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token and resolves the acting operator.
// Every state-changing service call downstream takes this actor id explicitly;
// there is no implicit session user anywhere in the engine.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "Token not found")
			return
		}

		claims, err := parseClaims(tokenString)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		actorID, ok := claims["user_id"].(string)
		if !ok || actorID == "" {
			abortUnauthorized(c, "User ID not found in token")
			return
		}
		role, _ := claims["role"].(string)

		c.Set("user_id", actorID)
		c.Set("actor_id", actorID)
		c.Set("role", role)
		c.Request = c.Request.WithContext(contextutil.WithActorID(c.Request.Context(), actorID))

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && token != "" {
		return token
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

func parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		if err != nil && strings.Contains(err.Error(), "expired") {
			return nil, fmt.Errorf("Token has expired")
		}
		return nil, fmt.Errorf("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("Invalid token claims")
	}
	return claims, nil
}

func abortUnauthorized(c *gin.Context, message string) {
	response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, message, nil)
	c.Abort()
}

// RoleMiddleware gates a route to the named roles. It assumes AuthMiddleware
// already ran and populated the role key.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role, _ := c.Get("role")
		roleName, _ := role.(string)
		if _, ok := allowed[roleName]; !ok {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, apperror.ErrForbidden.Message, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
