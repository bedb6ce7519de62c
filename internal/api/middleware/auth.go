package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"mindlyst/internal/user"
	"mindlyst/pkg/response"
)

// Auth resolves the caller from the session cookie, falling back to a
// Bearer JWT for API clients that do not hold cookies. On success the
// caller's id is stored under "user_id" in the gin context.
func Auth(sessions *user.SessionRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(user.SessionCookie); err == nil && token != "" {
			session, err := sessions.Get(c.Request.Context(), token)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": response.MsgInternal})
				c.Abort()
				return
			}
			if session != nil {
				c.Set("user_id", session.UserID)
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err == nil && token.Valid {
				if claims, ok := token.Claims.(jwt.MapClaims); ok {
					if userID, ok := claims["user_id"].(string); ok && userID != "" {
						c.Set("user_id", userID)
						c.Next()
						return
					}
				}
			}
		}

		c.JSON(http.StatusUnauthorized, gin.H{"error": response.MsgUnauthenticated})
		c.Abort()
	}
}
