package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"mughal/internal/config"
	"mughal/internal/models"
)

// UserKey is the gin context key holding the authenticated *models.User.
const UserKey = "user"

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// JWTClaims represents the claims in the JWT
type JWTClaims struct {
	UserID string      `json:"user_id"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// SessionChecker reports whether a session is currently open.
type SessionChecker interface {
	SessionActive(ctx context.Context) (bool, error)
}

// GenerateToken generates a session token for a user, valid for the
// configured JWT_EXPIRES_IN.
func GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(config.Get().JWTExpirationDur)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "mughal-api",
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// ParseToken validates a session token and returns its claims.
func ParseToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("invalid role in session token")
	}
	return claims, nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		gin.H{"error": gin.H{"code": "UNAUTHORIZED", "message": message}})
}

// AuthMiddleware verifies the bearer token and sets the user in the context.
// When sessions is non-nil, tokens are refused after logout.
func AuthMiddleware(sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		if sessions != nil {
			active, err := sessions.SessionActive(c.Request.Context())
			if err != nil {
				_ = c.Error(err)
				c.Abort()
				return
			}
			if !active {
				abortUnauthorized(c, "Session has ended")
				return
			}
		}

		c.Set(UserKey, &models.User{ID: claims.UserID, Name: claims.Name, Role: claims.Role})
		c.Next()
	}
}

// RequireRole lets the request through only when the authenticated user has
// one of roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(UserKey)
		user, _ := v.(*models.User)
		if !ok || user == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			gin.H{"error": gin.H{"code": "FORBIDDEN", "message": "Your role cannot access this area"}})
	}
}

// Role groups used when mounting routes.
var (
	AllRoles     = []models.Role{models.RoleAdmin, models.RoleCashier, models.RoleSalesman}
	CounterRoles = []models.Role{models.RoleAdmin, models.RoleCashier}
	StockRoles   = []models.Role{models.RoleAdmin, models.RoleSalesman}
	AdminOnly    = []models.Role{models.RoleAdmin}
)
