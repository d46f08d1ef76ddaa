package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smartmenu/models"
	"smartmenu/utils"
)

// WebSocketAuth authenticates websocket upgrades. Browsers cannot set
// an Authorization header on a websocket handshake, so the token rides
// in the query string instead.
func WebSocketAuth(tm *utils.TokenManager, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		username, err := tm.Validate(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		var user models.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
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
