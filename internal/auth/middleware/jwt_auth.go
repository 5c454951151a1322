package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/screenforge/screenforge-backend/internal/auth"
)

// JWT validates HS256 tokens signed with secret, as issued by Supabase Auth or Clerk JWT templates.
// The email claim is required; name falls back to user_metadata.full_name.
func JWT(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			unauthorized(c, "missing authorization token")
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				unauthorized(c, "token has expired")
				return
			}
			unauthorized(c, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			unauthorized(c, "invalid token claims")
			return
		}

		email, _ := claims["email"].(string)
		if strings.TrimSpace(email) == "" {
			unauthorized(c, "token has no email claim")
			return
		}
		sub, _ := claims["sub"].(string)

		auth.SetIdentity(c, auth.Identity{UID: sub, Email: email, Name: claimName(claims)})
		c.Next()
	}
}

func claimName(claims jwt.MapClaims) string {
	if n, ok := claims["name"].(string); ok && n != "" {
		return n
	}
	if meta, ok := claims["user_metadata"].(map[string]any); ok {
		if n, ok := meta["full_name"].(string); ok {
			return n
		}
	}
	return ""
}
