package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"miniblog/internal/model"
	"miniblog/internal/policy"
	"miniblog/internal/repository"
	"miniblog/internal/token"
)

const userContextKey = "user"

type AuthMiddleware struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
}

func NewAuthMiddleware(userRepo repository.UserRepository, tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{userRepo: userRepo, tokens: tokens}
}

// RequireAuth rejects requests without a valid bearer token. The user is
// loaded from the store so that role changes take effect immediately, and
// stashed in the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "authorization required"})
			c.Abort()
			return
		}

		user, ok := m.resolveUser(c, tokenString)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// OptionalAuth resolves the caller when a valid token is presented but lets
// anonymous requests through. Used on public listing routes where elevated
// callers see more.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if user, ok := m.resolveUser(c, tokenString); ok {
				c.Set(userContextKey, user)
			}
		}
		c.Next()
	}
}

// RequireRole enforces the role floor of an operation. It runs before any
// body parsing, so an underprivileged caller is refused regardless of
// payload.
func (m *AuthMiddleware) RequireRole(min policy.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "authorization required"})
			c.Abort()
			return
		}

		if !policy.Role(user.Role.Name).AtLeast(min) {
			c.JSON(http.StatusForbidden, gin.H{"msg": "insufficient role"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole(policy.RoleAdmin)
}

func (m *AuthMiddleware) resolveUser(c *gin.Context, tokenString string) (*model.User, bool) {
	userID, _, err := m.tokens.Verify(tokenString)
	if err != nil {
		return nil, false
	}

	user, err := m.userRepo.FindByID(c.Request.Context(), userID)
	if err != nil || !user.Active {
		return nil, false
	}

	return user, true
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
