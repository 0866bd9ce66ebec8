package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	UserIDKey   = "userId"
	UserTypeKey = "userType"
	ClaimsKey   = "claims"
)

// UserAuth validates the bearer token and stores its claims in the context.
func UserAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := Logger(c)

		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			log.Info("auth rejected: missing token")
			abort(c, http.StatusUnauthorized, "missing token")
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Info("auth rejected: invalid token format")
			abort(c, http.StatusUnauthorized, "invalid token")
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			log.Info("auth rejected: token validation failed", zap.Error(err))
			abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		userID, _ := claims["userId"].(string)
		if strings.TrimSpace(userID) == "" {
			log.Info("auth rejected: userId claim missing")
			abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		userType, _ := claims["type"].(string)
		c.Set(UserIDKey, userID)
		c.Set(UserTypeKey, userType)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
