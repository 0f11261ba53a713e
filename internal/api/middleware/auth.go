package middleware

import (
	"errors"
	"net/http"
	"strings"

	"apittk/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	// AuthCookieName — ім'я cookie з access-токеном.
	AuthCookieName = "access_token"
	// currentUserKey — ключ контексту gin, під яким лежить *models.User.
	currentUserKey = "currentUser"
)

// UserResolver резолвить особу з claims токена. Реалізується сховищем.
type UserResolver interface {
	GetUserByEmail(email string) (*models.User, error)
}

// RequireAuth перевіряє JWT (cookie, заголовок Bearer або query-параметр
// token — останній потрібен WebSocket-клієнтам) і кладе користувача в
// контекст запиту. Без валідного токена запит відхиляється з 401.
func RequireAuth(store UserResolver, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}

		email, err := parseSubject(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		user, err := store.GetUserByEmail(email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}

// SetCurrentUser кладе користувача в контекст запиту. Окрім RequireAuth,
// використовується тестами хендлерів.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser дістає автентифікованого користувача з контексту запиту.
// Викликається лише після RequireAuth.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// extractToken шукає токен у cookie, заголовку Authorization та query.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return c.Query("token")
}

// parseSubject валідує підпис HS256 і повертає claim sub (email).
func parseSubject(tokenString, secret string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("missing subject claim")
	}
	return sub, nil
}
