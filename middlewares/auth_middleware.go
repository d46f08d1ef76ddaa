package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smartmenu/models"
	"smartmenu/utils"
)

const identityKey = "current_user"

// Identity is the read-only view of the authenticated user exposed to
// handlers for the duration of the request.
type Identity struct {
	ID       uint
	Username string
	Email    string
	Role     models.Role
}

// Authenticate resolves the bearer token, if any, into an Identity on
// the request context. It never rejects the request itself: a missing
// or invalid token just leaves the request anonymous, and the
// endpoint-level RequireAuth/RequireRole checks decide whether that
// matters.
func Authenticate(tm *utils.TokenManager, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		username, err := tm.Validate(tokenString)
		if err != nil {
			utils.InfoLogger.Printf("Rejected bearer token (%v), continuing unauthenticated", err)
			c.Next()
			return
		}

		var user models.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			utils.InfoLogger.Printf("Token subject %q not found, continuing unauthenticated", username)
			c.Next()
			return
		}

		c.Set(identityKey, &Identity{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		})
		c.Next()
	}
}

// CurrentIdentity returns the authenticated identity for this request,
// or nil when the request is anonymous.
func CurrentIdentity(c *gin.Context) *Identity {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := v.(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// RequireAuth aborts with 401 when the request carries no identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the identity's role is one of the
// allowed roles. Admin passes every check.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
			c.Abort()
			return
		}

		if identity.Role == models.RoleAdmin {
			c.Next()
			return
		}

		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, errors.New("insufficient role"))
		c.Abort()
	}
}
