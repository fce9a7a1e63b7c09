package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ContextUserID is the gin context key holding the authenticated user id.
	ContextUserID = "userID"
	// ContextUserEmail is the gin context key holding the authenticated email.
	ContextUserEmail = "userEmail"
)

// AuthMiddleware validates the Bearer JWT and puts the user identity
// into the gin context for downstream handlers.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}
		token := parts[1]

		claims := jwt.MapClaims{}
		parsedToken, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil || !parsedToken.Valid {
			c.JSON(401, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// Only access tokens may authenticate requests
		if tokenType, _ := claims["type"].(string); tokenType != "access" {
			c.JSON(401, gin.H{"error": "invalid token type"})
			c.Abort()
			return
		}

		// JSON numbers decode as float64
		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			c.JSON(401, gin.H{"error": "invalid user ID in token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, int64(userIDFloat))
		if email, ok := claims["email"].(string); ok {
			c.Set(ContextUserEmail, email)
		}

		c.Next()
	}
}
