package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/atish-2023/Ecommerce-Website/internal/modules/users"
	"github.com/atish-2023/Ecommerce-Website/internal/shared/apperr"
)

const CtxKeyUserID = "user_id"

// RequireAuth validates a Bearer token and stores the user ID on the context.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			Fail(c, apperr.UnauthorizedErr("Missing token"))
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			Fail(c, apperr.UnauthorizedErr("Invalid token format"))
			return
		}

		claims := &users.Claims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(t *jwt.Token) (any, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			Fail(c, apperr.UnauthorizedErr("Invalid token"))
			return
		}

		c.Set(CtxKeyUserID, claims.UserID)
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) (string, bool) {
	if v, ok := c.Get(CtxKeyUserID); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}
